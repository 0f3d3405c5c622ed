package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mercator-hq/sld2mapnik/pkg/cli"
)

// waitForFile polls path until it contains want.
func waitForFile(t *testing.T, path, want string) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && strings.Contains(string(data), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("%s never contained %q", path, want)
}

func TestWatchTargetOutputFor(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "styles")
	if err := os.Mkdir(in, 0o755); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "build")

	target, err := newWatchTarget(in, out)
	if err != nil {
		t.Fatalf("newWatchTarget() error = %v", err)
	}
	if !target.dir {
		t.Fatal("expected directory mode")
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output directory not created: %v", err)
	}

	got := target.outputFor(filepath.Join(in, "nested", "roads.sld"))
	if want := filepath.Join(out, "roads.xml"); got != want {
		t.Errorf("outputFor() = %q, want %q", got, want)
	}
}

func TestWatchTargetRejectsNestedOutput(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		out  string
	}{
		{"same directory", dir},
		{"subdirectory", filepath.Join(dir, "build")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newWatchTarget(dir, tt.out)

			var cfgErr *cli.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestWatchTargetDocuments(t *testing.T) {
	dir := t.TempDir()
	copyTestdata(t, "roads.sld", dir)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".git", "hidden.sld"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	target, err := newWatchTarget(dir, filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}

	docs, err := target.documents([]string{".sld", ".xml"})
	if err != nil {
		t.Fatalf("documents() error = %v", err)
	}
	if len(docs) != 1 || filepath.Base(docs[0]) != "roads.sld" {
		t.Errorf("documents() = %v, want only roads.sld", docs)
	}
}

func TestWatchRequiresOutput(t *testing.T) {
	_, _, err := executeCommand(t, "", "watch", "testdata/roads.sld")
	if err == nil {
		t.Fatal("expected an error without --output")
	}
}

func TestWatchConvertsOnChange(t *testing.T) {
	dir := t.TempDir()
	in := copyTestdata(t, "roads.sld", dir)
	out := filepath.Join(t.TempDir(), "roads.xml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, _, err := executeCommandContext(t, ctx, "", "watch", in, "-o", out, "--debounce", "20ms")
		done <- err
	}()

	// Initial conversion.
	waitForFile(t, out, "rgb(51,102,153)")

	data, err := os.ReadFile(in)
	if err != nil {
		t.Fatal(err)
	}
	changed := strings.Replace(string(data), "#336699", "#ff0000", 1)

	// The watcher is registered after the initial conversion, so keep
	// rewriting until the change is picked up.
	deadline := time.Now().Add(5 * time.Second)
	for {
		if err := os.WriteFile(in, []byte(changed), 0o644); err != nil {
			t.Fatal(err)
		}
		if got, _ := os.ReadFile(out); strings.Contains(string(got), "rgb(255,0,0)") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("output was not regenerated after the change")
		}
		time.Sleep(100 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}
