// -----------------------------------------------------------------------
// Safe Goroutine - Panic-protected goroutine wrappers
// -----------------------------------------------------------------------

package common

import (
	"context"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"
)

// SafeGo runs fn in a goroutine with panic recovery. A panic is logged
// with its stack and the service keeps running.
func SafeGo(logger arbor.ILogger, name string, fn func()) {
	go func() {
		defer logRecovered(logger, name)
		fn()
	}()
}

// SafeGoWithContext is SafeGo for goroutines tied to a context: if the
// context is already cancelled the function never starts.
func SafeGoWithContext(ctx context.Context, logger arbor.ILogger, name string, fn func()) {
	go func() {
		defer logRecovered(logger, name)

		select {
		case <-ctx.Done():
			return
		default:
		}

		fn()
	}()
}

func logRecovered(logger arbor.ILogger, name string) {
	r := recover()
	if r == nil {
		return
	}

	stack := GetStackTrace()
	if logger == nil {
		fmt.Fprintf(os.Stderr, "panic in goroutine %s: %v\n%s\n", name, r, stack)
		return
	}

	logger.Error().
		Str("goroutine", name).
		Str("panic", fmt.Sprint(r)).
		Str("stack", stack).
		Msg("Recovered panic in background goroutine")
}
