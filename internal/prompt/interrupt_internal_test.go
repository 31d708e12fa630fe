package prompt

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatchInterruptRestoresBeforeRedelivery(testInstance *testing.T) {
	signals := make(chan os.Signal, 1)
	events := make(chan string, 2)
	delivered := make(chan os.Signal, 1)

	stop := watchInterrupt(
		signals,
		func() error {
			events <- "restored"
			return nil
		},
		func(received os.Signal) {
			events <- "interrupted"
			delivered <- received
		},
	)

	signals <- os.Interrupt
	select {
	case received := <-delivered:
		require.Equal(testInstance, os.Interrupt, received)
	case <-time.After(time.Second):
		testInstance.Fatal("interrupt was not handled")
	}
	stop()

	require.Equal(testInstance, "restored", <-events)
	require.Equal(testInstance, "interrupted", <-events)
}

func TestWatchInterruptStopWithoutSignal(testInstance *testing.T) {
	restoreCalls := 0
	interruptCalls := 0

	stop := watchInterrupt(
		make(chan os.Signal),
		func() error {
			restoreCalls++
			return nil
		},
		func(os.Signal) { interruptCalls++ },
	)
	stop()

	require.Zero(testInstance, restoreCalls)
	require.Zero(testInstance, interruptCalls)
}
