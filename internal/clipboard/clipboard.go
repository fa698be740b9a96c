// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/anmolrajas/portfolio/internal/logger"
)

var (
	mu          sync.Mutex
	initialized bool
)

type writer interface {
	init() error
	write(text string)
	read() string
}

type systemBackend struct{}

func (systemBackend) init() error       { return clipboard.Init() }
func (systemBackend) write(text string) { clipboard.Write(clipboard.FmtText, []byte(text)) }
func (systemBackend) read() string      { return string(clipboard.Read(clipboard.FmtText)) }

// active is swapped out in tests so the real clipboard is untouched.
var active writer = systemBackend{}

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	if err := active.init(); err != nil {
		logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	initialized = true
	return nil
}

// WriteText places text on the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return err
	}
	active.write(text)
	logger.WithComponent("clipboard").Debug("copied text", "bytes", len(text))
	return nil
}

// ReadText reads text from the clipboard.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return "", err
	}
	return active.read(), nil
}
