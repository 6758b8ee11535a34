package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testRegistry = `#+TITLE: Calendario

* Feriados
** Día de la Memoria (Argentina)
   <2024-03-25 Mon>
** Viernes Santo
   <2024-03-29 Fri>
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	configPath = ""

	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeRegistry(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feriados.org")
	if err := os.WriteFile(path, []byte(testRegistry), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerate(t *testing.T) {
	registry := writeRegistry(t)

	stdout, _, err := runCLI(t, "generate",
		"--days", "monday,friday",
		"--from", "2024-03-18",
		"--to", "2024-04-02",
		"--registry", registry)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}

	for _, want := range []string{"Marzo", "Abril", "Día de la Memoria", "Viernes Santo", "Lunes"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "(Argentina)") {
		t.Errorf("parenthetical should be stripped:\n%s", stdout)
	}
}

func TestGenerate_OutputFile(t *testing.T) {
	registry := writeRegistry(t)
	output := filepath.Join(t.TempDir(), "out", "schedule.csv")

	stdout, _, err := runCLI(t, "generate",
		"--days", "mon",
		"--from", "2024-03-18",
		"--to", "2024-04-02",
		"--format", "csv",
		"--registry", registry,
		"--output", output)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty when writing to a file", stdout)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d CSV lines, want header plus 3 rows:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[2], "2024-03-25") || !strings.Contains(lines[2], "Día de la Memoria") {
		t.Errorf("holiday row = %q", lines[2])
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing range", []string{"generate", "--days", "mon"}},
		{"bad from", []string{"generate", "--days", "mon", "--from", "yesterday", "--to", "2024-04-01"}},
		{"no weekdays", []string{"generate", "--days", "someday", "--from", "2024-03-01", "--to", "2024-04-01"}},
		{"unknown format", []string{"generate", "--days", "mon", "--from", "2024-03-01", "--to", "2024-04-01", "--format", "xlsx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, tt.args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestGenerate_UnreadableRegistry(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.org")

	stdout, stderr, err := runCLI(t, "generate",
		"--days", "mon",
		"--from", "2024-03-18",
		"--to", "2024-03-26",
		"--registry", missing)
	if err != nil {
		t.Fatalf("generate error = %v", err)
	}
	if !strings.Contains(stderr, "holiday lookup failed for 2 date(s)") {
		t.Errorf("stderr = %q, want unresolved summary", stderr)
	}
	if !strings.Contains(stdout, "Lunes") {
		t.Errorf("stdout = %q, want rows still rendered", stdout)
	}
}

func TestHolidays(t *testing.T) {
	registry := writeRegistry(t)

	stdout, _, err := runCLI(t, "holidays", "list", "--registry", registry)
	if err != nil {
		t.Fatalf("holidays list error = %v", err)
	}
	if !strings.Contains(stdout, "(2)") || !strings.Contains(stdout, "2024-03-29") {
		t.Errorf("holidays list output:\n%s", stdout)
	}

	stdout, _, err = runCLI(t, "holidays", "check", "2024-03-25", "--registry", registry)
	if err != nil {
		t.Fatalf("holidays check error = %v", err)
	}
	if strings.TrimSpace(stdout) != "2024-03-25: Día de la Memoria" {
		t.Errorf("holidays check = %q", stdout)
	}

	stdout, _, err = runCLI(t, "holidays", "check", "2024-03-26", "--registry", registry)
	if err != nil {
		t.Fatalf("holidays check error = %v", err)
	}
	if strings.TrimSpace(stdout) != "2024-03-26: not-holiday" {
		t.Errorf("holidays check = %q", stdout)
	}
}
