// Package validator invokes the external schema compiler and captures its
// error output. The compiler is a black box: a timeout and a non-zero exit
// are treated identically as "has error text to parse", and output without
// recognizable markers simply produces no diagnostic downstream.
package validator

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Config describes how to invoke the compiler. The schema file path is
// appended to Command.
type Config struct {
	Command []string
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if len(c.Command) == 0 {
		c.Command = []string{"lumos-compiler", "check"}
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	return c
}

// Result captures one validation run.
type Result struct {
	// Output is the combined stdout+stderr text.
	Output string
	// HasError is true when the run did not end with a clean exit.
	HasError bool
}

// Run executes the compiler against path. An error is returned only when the
// command could not be started at all; every completed run, however it
// exited, yields a Result.
func Run(ctx context.Context, cfg Config, path string) (Result, error) {
	cfg = cfg.withDefaults()

	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	args := append(append([]string(nil), cfg.Command[1:]...), path)
	cmd := exec.CommandContext(runCtx, cfg.Command[0], args...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if err == nil {
		return Result{Output: buf.String()}, nil
	}

	var exitErr *exec.ExitError
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) || errors.As(err, &exitErr) {
		return Result{Output: buf.String(), HasError: true}, nil
	}
	return Result{}, err
}
