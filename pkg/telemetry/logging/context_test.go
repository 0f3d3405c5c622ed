package logging

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestContextKeys(t *testing.T) {
	ctx := context.Background()

	if got := GetRunID(ctx); got != "" {
		t.Errorf("GetRunID() on empty context = %q, want empty", got)
	}

	ctx = WithRunID(ctx, "run-123")
	if got := GetRunID(ctx); got != "run-123" {
		t.Errorf("GetRunID() = %q, want %q", got, "run-123")
	}

	ctx = WithDocument(ctx, "styles/roads.sld")
	if got := GetDocument(ctx); got != "styles/roads.sld" {
		t.Errorf("GetDocument() = %q, want %q", got, "styles/roads.sld")
	}
}

func TestExtractContextFields(t *testing.T) {
	if fields := extractContextFields(context.Background()); len(fields) != 0 {
		t.Errorf("extractContextFields() = %v, want empty", fields)
	}

	ctx := WithDocument(WithRunID(context.Background(), "r"), "d.sld")
	fields := extractContextFields(ctx)
	want := []any{"run_id", "r", "document", "d.sld"}
	if len(fields) != len(want) {
		t.Fatalf("extractContextFields() = %v, want %v", fields, want)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("fields[%d] = %v, want %v", i, fields[i], want[i])
		}
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == b {
		t.Errorf("NewRunID() returned duplicate %q", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("NewRunID() = %q is not a UUID: %v", a, err)
	}
}
