package validator

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRunCleanExit(t *testing.T) {
	cfg := Config{Command: []string{"sh", "-c", "true #"}}
	res, err := Run(context.Background(), cfg, "ignored.lumos")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.HasError {
		t.Fatalf("clean exit reported as error")
	}
}

func TestRunNonZeroExitCapturesOutput(t *testing.T) {
	cfg := Config{Command: []string{"sh", "-c", "echo 'Error: expected `;`' >&2; exit 1 #"}}
	res, err := Run(context.Background(), cfg, "ignored.lumos")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !res.HasError {
		t.Fatalf("non-zero exit not reported")
	}
	if !strings.Contains(res.Output, "Error: expected `;`") {
		t.Fatalf("stderr not captured: %q", res.Output)
	}
}

func TestRunTimeoutDegradesToError(t *testing.T) {
	cfg := Config{
		Command: []string{"sh", "-c", "sleep 5 #"},
		Timeout: 50 * time.Millisecond,
	}
	res, err := Run(context.Background(), cfg, "ignored.lumos")
	if err != nil {
		t.Fatalf("timeout must not surface as a hard error: %v", err)
	}
	if !res.HasError {
		t.Fatalf("timeout not reported as error")
	}
}

func TestRunMissingBinary(t *testing.T) {
	cfg := Config{Command: []string{"definitely-not-a-real-binary-xyz"}}
	if _, err := Run(context.Background(), cfg, "ignored.lumos"); err == nil {
		t.Fatalf("expected a start error for a missing binary")
	}
}
