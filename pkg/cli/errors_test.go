package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "srid",
		Message: "must not be negative",
	}

	expected := "invalid srid: must not be negative"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("field", "message")
	if err.Field != "field" {
		t.Errorf("Field = %q, want %q", err.Field, "field")
	}
	if err.Message != "message" {
		t.Errorf("Message = %q, want %q", err.Message, "message")
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("unhandled Stroke parameter \"stroke-foobar\"")
	err := &CommandError{
		Command: "convert",
		Err:     underlyingErr,
	}

	expected := `convert: unhandled Stroke parameter "stroke-foobar"`
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestNewCommandError(t *testing.T) {
	if err := NewCommandError("convert", nil); err != nil {
		t.Errorf("NewCommandError(nil) = %v, want nil", err)
	}

	underlyingErr := errors.New("test")
	err := NewCommandError("convert", underlyingErr)

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("NewCommandError() = %T, want *CommandError", err)
	}
	if cmdErr.Command != "convert" {
		t.Errorf("Command = %q, want %q", cmdErr.Command, "convert")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"failure", errors.New("boom"), ExitFailure},
		{"config", NewConfigError("srid", "bad"), ExitFailure},
		{"interrupted", fmt.Errorf("watch: %w", context.Canceled), ExitInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
