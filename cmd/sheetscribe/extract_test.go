package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runExtractCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	outputPath, pretty, extractMode = "", false, "all"

	var out bytes.Buffer
	extractCmd.SetIn(strings.NewReader(stdin))
	extractCmd.SetOut(&out)
	extractCmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	extractCmd.SetArgs(args)
	err := extractCmd.Execute()
	return out.String(), err
}

func TestExtractFromStdin(t *testing.T) {
	got, err := runExtractCommand(t, "Totals:\n```\nA  1\n```\n", "--mode", "tables")
	if err != nil {
		t.Fatalf("extract error = %v", err)
	}
	if !strings.Contains(got, `"title":"Totals"`) {
		t.Errorf("extract output = %s, expected the Totals table", got)
	}
}

func TestExtractFromFileToOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "reply.txt")
	out := filepath.Join(dir, "out.json")
	if err := os.WriteFile(in, []byte("COLUMN: Total\nFORMULA: =A1+B1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := runExtractCommand(t, "", in, "-o", out, "--pretty"); err != nil {
		t.Fatalf("extract error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"header": "Total"`) {
		t.Errorf("output file = %s, expected the Total suggestion", data)
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"nothing found", "plain prose", nil},
		{"bad mode", "x", []string{"--mode", "cells"}},
		{"missing file", "", []string{"/does/not/exist.txt"}},
	}

	for _, tt := range tests {
		if _, err := runExtractCommand(t, tt.stdin, tt.args...); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
}
