package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestInspectText(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "inspect", "testdata/roads.sld")
	if err != nil {
		t.Fatalf("inspect returned error: %v", err)
	}

	for _, want := range []string{
		"Layers (1):",
		"  roads\n",
		"    styles: roads 0\n",
		"    rule highways\n",
		"      filter: [pop] > 1000000\n",
		"      scale: * - 50000\n",
		"      else\n",
		"      symbolizers: LineSymbolizer\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("report is missing %q\n%s", want, stdout)
		}
	}
}

func TestInspectJSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "inspect", "testdata/roads.sld", "--format", "json", "--srid", "4326")
	if err != nil {
		t.Fatalf("inspect returned error: %v", err)
	}

	if !strings.Contains(stdout, `"filter": "[pop] > 1000000"`) {
		t.Errorf("filter should be written unescaped:\n%s", stdout)
	}

	var report inspectReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}

	if report.SRS != "+init=epsg:4326" {
		t.Errorf("SRS = %q, want %q", report.SRS, "+init=epsg:4326")
	}
	if len(report.Styles) != 1 || len(report.Styles[0].Rules) != 2 {
		t.Fatalf("unexpected styles: %+v", report.Styles)
	}

	rules := report.Styles[0].Rules
	if rules[0].Filter != "[pop] > 1000000" {
		t.Errorf("Filter = %q, want %q", rules[0].Filter, "[pop] > 1000000")
	}
	if rules[0].MaxScale == nil || *rules[0].MaxScale != 50000 {
		t.Errorf("MaxScale = %v, want 50000", rules[0].MaxScale)
	}
	if !rules[1].Else {
		t.Error("second rule should be an else rule")
	}
}

func TestInspectInvalidFormat(t *testing.T) {
	_, _, err := executeCommand(t, "", "inspect", "testdata/roads.sld", "--format", "yaml")
	if err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestInspectTranslationError(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "inspect", "testdata/broken.sld")
	if err == nil {
		t.Fatal("expected an error for an unknown stroke parameter")
	}
	if stdout != "" {
		t.Errorf("expected nothing on stdout, got %q", stdout)
	}
}
