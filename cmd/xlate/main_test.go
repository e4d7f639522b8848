package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestColorEnabled(t *testing.T) {
	cases := []struct {
		value string
		tty   bool
		want  bool
	}{
		{"auto", true, true},
		{"auto", false, false},
		{"on", false, true},
		{"off", true, false},
	}
	for _, tc := range cases {
		got, err := colorEnabled(tc.value, tc.tty)
		if err != nil || got != tc.want {
			t.Fatalf("colorEnabled(%q, %v) = %v, %v", tc.value, tc.tty, got, err)
		}
	}
	if _, err := colorEnabled("sometimes", true); err == nil {
		t.Fatalf("expected error for invalid value")
	}
}

func TestReadUIMode(t *testing.T) {
	if mode, err := readUIMode(" ON "); err != nil || mode != uiModeOn {
		t.Fatalf("readUIMode = %q, %v", mode, err)
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Fatalf("expected error")
	}
	if shouldUseTUI(uiModeOff, false) || !shouldUseTUI(uiModeOn, true) {
		t.Fatalf("explicit modes must win")
	}
	if shouldUseTUI(uiModeAuto, true) {
		t.Fatalf("auto mode must stay off for structured output")
	}
}

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "1.2.3"}
	if err := renderVersionJSON(&buf, info, versionOptions{showHash: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Tool != "xlate" || payload.Version != "1.2.3" || payload.GitCommit != "unknown" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestSampleThenResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.xbm")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"sample", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("sample: %v\n%s", err, out.String())
	}

	out.Reset()
	rootCmd.SetArgs([]string{"rename", "--ui=off", "--color=off", "--format=json", "--config", "", path})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("rename: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), `"ComExCircle"`) {
		t.Fatalf("rename output missing ComExCircle:\n%s", out.String())
	}
}
