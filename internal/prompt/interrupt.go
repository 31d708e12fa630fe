package prompt

import (
	"os"
	"os/signal"

	"golang.org/x/term"
)

// readPasswordRestoringTerminal reads a hidden line from fileDescriptor. An
// interrupt received while echo is off restores the saved terminal state
// before the signal is delivered again with its default disposition.
func readPasswordRestoringTerminal(fileDescriptor int) ([]byte, error) {
	savedState, stateError := term.GetState(fileDescriptor)
	if stateError != nil {
		return nil, stateError
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	stopWatching := watchInterrupt(
		signals,
		func() error { return term.Restore(fileDescriptor, savedState) },
		func(received os.Signal) {
			signal.Stop(signals)
			redeliverSignal(received)
		},
	)
	defer func() {
		signal.Stop(signals)
		stopWatching()
	}()

	return term.ReadPassword(fileDescriptor)
}

// watchInterrupt calls restore and then interrupted for the first signal
// received before the returned stop function runs.
func watchInterrupt(signals <-chan os.Signal, restore func() error, interrupted func(os.Signal)) (stop func()) {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		select {
		case received := <-signals:
			_ = restore()
			interrupted(received)
		case <-done:
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}

func redeliverSignal(received os.Signal) {
	process, findError := os.FindProcess(os.Getpid())
	if findError != nil {
		return
	}
	_ = process.Signal(received)
}
