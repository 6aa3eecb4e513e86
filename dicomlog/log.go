// Package dicomlog provides a level-gated diagnostic sink for the reader.
//
// Non-fatal parse conditions (truncation, undefined length, unrecognized
// transfer syntax) are reported here rather than via an error return, since
// the reader is a total function that never fails outright.
package dicomlog

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// level sets log verbosity. The larger the value, the more verbose. Setting it
// to -1 disables logging completely.
var level = int32(0)

// SetLevel sets log verbosity. The larger the value, the more verbose. Setting
// it to -1 disables logging completely. Thread safe.
func SetLevel(l int) {
	atomic.StoreInt32(&level, int32(l))
}

// Level returns the current log level. The larger the value, the more
// verbose. Thread safe.
func Level() int {
	return int(atomic.LoadInt32(&level))
}

// Handler receives every diagnostic passed to Vprintf, regardless of the
// current Level. Embedders (viewers, anonymizers, PACS clients) register one
// via SetHandler to capture warnings structurally instead of scraping stderr.
type Handler func(level int, msg string)

var (
	handlerMu sync.RWMutex
	handler   Handler
)

// SetHandler installs f as the diagnostic callback. Passing nil removes it,
// reverting to logrus-only output.
func SetHandler(f Handler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	handler = f
}

// Vprintf is shorthand for "if level <= Level() { log.Printf(...) }", and
// additionally forwards every call to the registered Handler (if any),
// independent of the level gate, so a callback never silently misses a
// diagnostic the way the stderr writer does when verbosity is lowered.
func Vprintf(l int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	handlerMu.RLock()
	h := handler
	handlerMu.RUnlock()
	if h != nil {
		h(l, msg)
	}

	if Level() >= l {
		logrus.Print(msg)
	}
}
