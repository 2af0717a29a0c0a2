package telemetry

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWrapZapForwardsToSugaredLogger(t *testing.T) {
	core, recorded := observer.New(zap.InfoLevel)
	logger := WrapZap(zap.New(core).Sugar())
	logger.Printf("hello %s", "world")

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].Message; got != "hello world" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestWrapZapNilLogger(t *testing.T) {
	logger := WrapZap(nil)
	logger.Printf("ignored %d", 1)
}
