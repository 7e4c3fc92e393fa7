package common

import (
	"fmt"

	"github.com/ternarybob/arbor"
)

// SafeGo runs fn in a goroutine; a panic is logged instead of taking the process down.
func SafeGo(logger arbor.ILogger, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("goroutine", name).
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", GetStackTrace()).
					Msg("Recovered from panic in goroutine")
			}
		}()
		fn()
	}()
}
