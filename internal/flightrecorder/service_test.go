package flightrecorder_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/saulgabriel7/athlete-core/internal/flightrecorder"
	"github.com/saulgabriel7/athlete-core/internal/testhelpers"
)

func TestService_StartStop(t *testing.T) {
	traceDir := t.TempDir()

	service, err := flightrecorder.New(flightrecorder.Config{
		Logger:          testhelpers.NewLogger(testhelpers.NewWriter(t)),
		TracesDirectory: traceDir,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()

	if err = service.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	service.Stop(ctx)
}

func TestService_CaptureSlowTrace(t *testing.T) {
	traceDir := t.TempDir()

	service, err := flightrecorder.New(flightrecorder.Config{
		Logger:          testhelpers.NewLogger(testhelpers.NewWriter(t)),
		TracesDirectory: traceDir,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if err = service.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer service.Stop(ctx)

	service.CaptureSlowTrace(ctx)

	entries, err := os.ReadDir(traceDir)
	if err != nil {
		t.Fatalf("failed to read trace directory: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one trace file to be created")
	}

	filename := entries[0].Name()
	if !strings.HasPrefix(filename, "slow-") {
		t.Errorf("expected filename to start with 'slow-', got %s", filename)
	}
	if !strings.HasSuffix(filename, ".trace") {
		t.Errorf("expected filename to end with '.trace', got %s", filename)
	}
}

func TestService_CooldownPreventsCapture(t *testing.T) {
	traceDir := t.TempDir()

	service, err := flightrecorder.New(flightrecorder.Config{
		Logger:          testhelpers.NewLogger(testhelpers.NewWriter(t)),
		TracesDirectory: traceDir,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	if err = service.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer service.Stop(ctx)

	service.CaptureSlowTrace(ctx)
	service.CaptureSlowTrace(ctx)

	entries, err := os.ReadDir(traceDir)
	if err != nil {
		t.Fatalf("failed to read trace directory: %v", err)
	}
	if len(entries) > 1 {
		t.Error("expected cooldown to prevent rapid successive captures")
	}
}
