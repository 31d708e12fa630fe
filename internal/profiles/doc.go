// Package profiles owns named git identities and their optional hosting
// credentials.
//
// Store persists the collection as one versioned JSON document and migrates
// documents written before credentials carried tokens. Manager performs
// lookups, insertion, removal and the interactive flows through an injected
// prompt.Prompter.
package profiles
