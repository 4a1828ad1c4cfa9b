package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readStartupError(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, StartupErrorFile))
	if err != nil {
		t.Fatalf("failed to read %s: %v", StartupErrorFile, err)
	}
	return string(data)
}

func TestWriteStartupErrorFile_CreatesFileWithError(t *testing.T) {
	dir := t.TempDir()
	WriteStartupErrorFile(dir, fmt.Errorf("failed to parse monitor config: invalid character '}'"))

	content := readStartupError(t, dir)
	if !strings.Contains(content, "invalid character '}'") {
		t.Errorf("expected error message in file, got:\n%s", content)
	}
	if !strings.Contains(content, "SiliconStats STARTUP ERROR") {
		t.Errorf("expected STARTUP ERROR label in file, got:\n%s", content)
	}
}

func TestWriteStartupErrorFile_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log", "SiliconStats")
	WriteStartupErrorFile(dir, fmt.Errorf("test error"))

	if content := readStartupError(t, dir); !strings.Contains(content, "test error") {
		t.Errorf("expected error message, got: %s", content)
	}
}

func TestWriteStartupErrorFile_OverwritesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	WriteStartupErrorFile(dir, fmt.Errorf("first error"))
	WriteStartupErrorFile(dir, fmt.Errorf("second error"))

	content := readStartupError(t, dir)
	if strings.Contains(content, "first error") {
		t.Error("expected first error to be overwritten")
	}
	if !strings.Contains(content, "second error") {
		t.Errorf("expected second error in file, got: %s", content)
	}
}

func TestReportStartupError_WritesFile(t *testing.T) {
	dir := t.TempDir()
	ReportStartupError(dir, nil)
	readStartupError(t, dir)
}
