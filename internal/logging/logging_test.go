package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestSetup_ReturnsJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&buf)

	l.Info("poll completed", slog.Int("readings", 40), slog.String("region", "us"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON log output, got error: %v\nraw output: %s", err, buf.String())
	}
	if entry["msg"] != "poll completed" {
		t.Errorf("msg = %q, want %q", entry["msg"], "poll completed")
	}
	if entry["readings"] != float64(40) {
		t.Errorf("readings = %v, want 40", entry["readings"])
	}
	if entry["region"] != "us" {
		t.Errorf("region = %v, want us", entry["region"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected 'time' field in JSON log output")
	}
}

func TestSetup_DropsDebug(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf).Debug("noise")
	if buf.Len() != 0 {
		t.Fatalf("debug output = %q, want none", buf.String())
	}
}

func TestOpenFile_CreatesDirAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "dexdash", "dexdash.log")

	for i := 0; i < 2; i++ {
		l, f, err := OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile() error = %v", err)
		}
		l.Warn("session rejected")
		if err := f.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("line %d not JSON: %v", lines, err)
		}
		if entry["level"] != "WARN" {
			t.Errorf("level = %v, want WARN", entry["level"])
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("lines = %d, want 2", lines)
	}
}

func TestOpenFile_EmptyPathDiscards(t *testing.T) {
	l, f, err := OpenFile("")
	if err != nil {
		t.Fatalf("OpenFile(\"\") error = %v", err)
	}
	if f != nil {
		t.Fatalf("file = %v, want nil", f)
	}
	l.Info("dropped")
}
