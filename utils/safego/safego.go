package safego

import (
	"os"
	"runtime/debug"
	"strings"

	"github.com/lakesync/lakesync/logger"
)

// Run starts f in a new goroutine with a panic handler attached.
func Run(f func()) {
	go func() {
		defer Recovery(false)
		f()
	}()
}

// Recovery logs a recovered panic with its stack trace; when exit is set the
// process terminates with a non-zero code.
func Recovery(exit bool) {
	if err := recover(); err != nil {
		logger.Error(err)
		for _, str := range strings.Split(string(debug.Stack()), "\n") {
			logger.Error(strings.ReplaceAll(str, "\t", ""))
		}
		if exit {
			os.Exit(1)
		}
	}
}

// Insert writes value into ch, absorbing the panic of a concurrently closed
// channel. Reports whether the write landed.
func Insert[T any](ch chan<- T, value T) bool {
	safeInsert := false
	func() {
		defer Recovery(false)
		ch <- value
		safeInsert = true
	}()

	return safeInsert
}

// Close closes ch without panicking on double close.
func Close[T any](ch chan T) {
	Run(func() {
		close(ch)
	})
}
