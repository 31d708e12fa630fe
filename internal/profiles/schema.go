package profiles

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const (
	storeSchemaLocationConstant       = "profiles.schema.json"
	schemaCompilationTemplateConstant = "compile profile store schema: %w"
)

//go:embed schema/profiles.schema.json
var storeSchemaDocument []byte

var (
	compiledStoreSchema      *jsonschema.Schema
	compiledStoreSchemaError error
	compileStoreSchemaOnce   sync.Once
)

func storeSchema() (*jsonschema.Schema, error) {
	compileStoreSchemaOnce.Do(func() {
		schemaDocument, decodeError := jsonschema.UnmarshalJSON(bytes.NewReader(storeSchemaDocument))
		if decodeError != nil {
			compiledStoreSchemaError = fmt.Errorf(schemaCompilationTemplateConstant, decodeError)
			return
		}

		compiler := jsonschema.NewCompiler()
		if resourceError := compiler.AddResource(storeSchemaLocationConstant, schemaDocument); resourceError != nil {
			compiledStoreSchemaError = fmt.Errorf(schemaCompilationTemplateConstant, resourceError)
			return
		}

		compiledStoreSchema, compiledStoreSchemaError = compiler.Compile(storeSchemaLocationConstant)
		if compiledStoreSchemaError != nil {
			compiledStoreSchemaError = fmt.Errorf(schemaCompilationTemplateConstant, compiledStoreSchemaError)
		}
	})
	return compiledStoreSchema, compiledStoreSchemaError
}

// validateStoreDocument checks raw store bytes against the embedded schema.
func validateStoreDocument(contents []byte) error {
	schema, schemaError := storeSchema()
	if schemaError != nil {
		return schemaError
	}

	instance, decodeError := jsonschema.UnmarshalJSON(bytes.NewReader(contents))
	if decodeError != nil {
		return decodeError
	}
	return schema.Validate(instance)
}
