package server

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

func TestRenderLogger_BasicLogging(t *testing.T) {
	logger := NewRenderLogger("test-render-123", nil)

	logger.Printf("%s", "Test log message")

	messages := logger.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(messages))
	}
	msg := messages[0]
	if msg.Message != "Test log message" {
		t.Errorf("Expected message 'Test log message', got '%s'", msg.Message)
	}
	if msg.Level != "info" {
		t.Errorf("Expected level 'info', got '%s'", msg.Level)
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
	}
}

func TestRenderLogger_Levels(t *testing.T) {
	logger := NewRenderLogger("test-render-456", nil)

	logger.Debugf("d")
	logger.Infof("i")
	logger.Warnf("w")
	logger.Errorf("e")

	expected := []string{"debug", "info", "warning", "error"}
	messages := logger.Messages()
	if len(messages) != len(expected) {
		t.Fatalf("Expected %d messages, got %d", len(expected), len(messages))
	}
	for i, level := range expected {
		if messages[i].Level != level {
			t.Errorf("Message %d: expected level '%s', got '%s'", i, level, messages[i].Level)
		}
	}
}

func TestRenderLogger_BufferFull(t *testing.T) {
	logger := NewRenderLogger("test-render-789", nil)

	for i := 0; i < maxConsoleMessages+5; i++ {
		logger.Infof("Message %d", i)
	}

	if got := len(logger.Messages()); got != maxConsoleMessages {
		t.Errorf("Expected %d kept messages, got %d", maxConsoleMessages, got)
	}
	if logger.Dropped() != 5 {
		t.Errorf("Expected 5 dropped messages, got %d", logger.Dropped())
	}
}

func TestRenderLogger_ForwardsWithRenderID(t *testing.T) {
	var out, errOut bytes.Buffer
	base := core.NewLoggerTo(&out, &errOut, "web", false)
	logger := NewRenderLogger("abc", base)

	logger.Infof("Loading %s with %d spheres", "three-spheres", 4)
	logger.Errorf("boom")

	if !strings.Contains(out.String(), "[abc] Loading three-spheres with 4 spheres") {
		t.Errorf("Expected forwarded info line, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "[abc] boom") {
		t.Errorf("Expected forwarded error line, got %q", errOut.String())
	}
}

func TestRenderLogger_MessagesIsCopy(t *testing.T) {
	logger := NewRenderLogger("copy", nil)
	logger.Infof("first")

	messages := logger.Messages()
	messages[0].Message = fmt.Sprintf("changed %d", 1)

	if logger.Messages()[0].Message != "first" {
		t.Error("Messages should return a copy")
	}
}
