package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/sld2mapnik/pkg/cli"
)

func TestConvertToStdout(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "convert", "testdata/roads.sld")
	if err != nil {
		t.Fatalf("convert returned error: %v", err)
	}

	for _, want := range []string{
		`<Style name="roads 0">`,
		`<StyleName>roads 0</StyleName>`,
		`<Filter>[pop] &gt; 1000000</Filter>`,
		`<MaxScaleDenominator>50000</MaxScaleDenominator>`,
		`stroke="rgb(51,102,153)"`,
		`<ElseFilter></ElseFilter>`,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output is missing %s\n%s", want, stdout)
		}
	}
}

func TestConvertFromStdin(t *testing.T) {
	data, err := os.ReadFile("testdata/roads.sld")
	if err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand(t, string(data), "convert", "-")
	if err != nil {
		t.Fatalf("convert returned error: %v", err)
	}
	if !strings.Contains(stdout, `<Style name="roads 0">`) {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestConvertHexColorsAndSRID(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "convert", "testdata/roads.sld", "--hex-colors", "--srid", "3857")
	if err != nil {
		t.Fatalf("convert returned error: %v", err)
	}
	if !strings.Contains(stdout, `stroke="#336699"`) {
		t.Errorf("expected hex stroke color:\n%s", stdout)
	}
	if !strings.Contains(stdout, `srs="+init=epsg:3857"`) {
		t.Errorf("expected EPSG:3857 srs:\n%s", stdout)
	}

	// Flags from the previous run must not leak into this one.
	stdout, _, err = executeCommand(t, "", "convert", "testdata/roads.sld")
	if err != nil {
		t.Fatalf("convert returned error: %v", err)
	}
	if strings.Contains(stdout, "#336699") || strings.Contains(stdout, "epsg:3857") {
		t.Errorf("flags leaked between runs:\n%s", stdout)
	}
}

func TestConvertToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "roads.xml")

	stdout, _, err := executeCommand(t, "", "convert", "testdata/roads.sld", "-o", out)
	if err != nil {
		t.Fatalf("convert returned error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout, got %q", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if !strings.Contains(string(data), `<Style name="roads 0">`) {
		t.Errorf("unexpected output file:\n%s", data)
	}
}

func TestConvertWithDatasource(t *testing.T) {
	dir := t.TempDir()
	shp := filepath.Join(dir, "roads.shp")
	if err := os.WriteFile(shp, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand(t, "", "convert", "testdata/roads.sld", shp)
	if err != nil {
		t.Fatalf("convert returned error: %v", err)
	}
	if !strings.Contains(stdout, `<Parameter name="type">shape</Parameter>`) {
		t.Errorf("expected a shape datasource:\n%s", stdout)
	}
}

func TestConvertConflictingDatasource(t *testing.T) {
	_, _, err := executeCommand(t, "", "convert", "testdata/roads.sld", "a.shp", "-d", "b.shp")

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if cfgErr.Field != "datasource" {
		t.Errorf("Field = %q, want %q", cfgErr.Field, "datasource")
	}
}

func TestConvertNegativeSRID(t *testing.T) {
	_, _, err := executeCommand(t, "", "convert", "testdata/roads.sld", "--srid", "-1")

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestConvertFailureWritesNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "broken.xml")

	stdout, _, err := executeCommand(t, "", "convert", "testdata/broken.sld", "-o", out)
	if err == nil {
		t.Fatal("expected an error for an unknown stroke parameter")
	}
	if !strings.Contains(err.Error(), `unhandled Stroke parameter "stroke-foobar"`) {
		t.Errorf("unexpected error: %v", err)
	}
	if cli.ExitCode(err) != cli.ExitFailure {
		t.Errorf("ExitCode() = %d, want %d", cli.ExitCode(err), cli.ExitFailure)
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout, got %q", stdout)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file should not exist, stat error = %v", err)
	}
}

func TestConvertMissingInput(t *testing.T) {
	_, _, err := executeCommand(t, "", "convert", "testdata/missing.sld")
	if err == nil {
		t.Fatal("expected an error for a missing input file")
	}

	var cmdErr *cli.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected CommandError, got %T", err)
	}
	if cmdErr.Command != "convert" {
		t.Errorf("Command = %q, want %q", cmdErr.Command, "convert")
	}
}

func TestConvertMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sld2mapnik.prom")

	if _, _, err := executeCommand(t, "", "convert", "testdata/roads.sld", "--metrics-file", path); err != nil {
		t.Fatalf("convert returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{
		`sld2mapnik_convert_conversions_total{status="success"} 1`,
		`sld2mapnik_convert_layers_total 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics file is missing %s\n%s", want, data)
		}
	}
}

func TestConvertVerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "", "convert", "testdata/roads.sld", "-v")
	if err != nil {
		t.Fatalf("convert returned error: %v", err)
	}
	if !strings.Contains(stderr, "conversion complete") {
		t.Errorf("expected a completion log line on stderr, got %q", stderr)
	}
	if strings.Contains(stdout, "conversion complete") {
		t.Error("log lines must not be written to stdout")
	}
}
