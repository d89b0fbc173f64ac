package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warning", "error"
}

// maxConsoleMessages caps how many messages a single render keeps
const maxConsoleMessages = 100

// RenderLogger implements core.Logger for one render request. Messages are
// forwarded to the server logger tagged with the render id and kept so they
// can be returned to the client.
type RenderLogger struct {
	renderID string
	base     core.Logger

	mu       sync.Mutex
	messages []ConsoleMessage
	dropped  int
}

// NewRenderLogger creates a logger for a specific render
func NewRenderLogger(renderID string, base core.Logger) *RenderLogger {
	if base == nil {
		base = core.NopLogger{}
	}
	return &RenderLogger{renderID: renderID, base: base}
}

func (rl *RenderLogger) record(level, format string, args ...interface{}) string {
	message := fmt.Sprintf(format, args...)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.messages) >= maxConsoleMessages {
		rl.dropped++
		return message
	}
	rl.messages = append(rl.messages, ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	})
	return message
}

// Printf implements core.Logger interface
func (rl *RenderLogger) Printf(format string, args ...interface{}) {
	rl.Infof(format, args...)
}

func (rl *RenderLogger) Debugf(format string, args ...interface{}) {
	rl.base.Debugf("[%s] %s", rl.renderID, rl.record("debug", format, args...))
}

func (rl *RenderLogger) Infof(format string, args ...interface{}) {
	rl.base.Infof("[%s] %s", rl.renderID, rl.record("info", format, args...))
}

func (rl *RenderLogger) Warnf(format string, args ...interface{}) {
	rl.base.Warnf("[%s] %s", rl.renderID, rl.record("warning", format, args...))
}

func (rl *RenderLogger) Errorf(format string, args ...interface{}) {
	rl.base.Errorf("[%s] %s", rl.renderID, rl.record("error", format, args...))
}

// Messages returns a copy of the recorded messages
func (rl *RenderLogger) Messages() []ConsoleMessage {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	out := make([]ConsoleMessage, len(rl.messages))
	copy(out, rl.messages)
	return out
}

// Dropped returns how many messages were not kept because the buffer was full
func (rl *RenderLogger) Dropped() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.dropped
}
