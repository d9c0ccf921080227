package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitDisabled(t *testing.T) {
	closeFn, err := Init(Options{})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer closeFn()
	if L.Enabled(t.Context(), -4) {
		t.Fatalf("disabled logger should not accept debug records")
	}
}

func TestInitStderr(t *testing.T) {
	var out bytes.Buffer
	closeFn, err := Init(Options{Enabled: true, Stderr: &out})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer closeFn()

	L.Debug("buddy: split", "class", 7)
	if !strings.Contains(out.String(), "class=7") {
		t.Fatalf("expected debug record, got %q", out.String())
	}
}

func TestInitLogDir(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "buddyctl-"+"2000-01-01"+logSuffix)
	if err := os.WriteFile(old, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	keep := filepath.Join(dir, "unrelated.txt")
	if err := os.WriteFile(keep, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	closeFn, err := Init(Options{Enabled: true, Name: "buddyctl", LogDir: dir})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	L.Info("pool ready", "size", 1024)
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("old log should have been removed, stat err = %v", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("unrelated file removed: %v", err)
	}

	today := filepath.Join(dir, "buddyctl-"+time.Now().Format("2006-01-02")+logSuffix)
	data, err := os.ReadFile(today)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"size":1024`) {
		t.Fatalf("expected JSON record, got %q", data)
	}
	if _, err := Init(Options{}); err != nil {
		t.Fatalf("reset: %v", err)
	}
}
