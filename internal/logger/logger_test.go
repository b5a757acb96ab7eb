package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogFilePathDefaultsUnderWorkdir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	got, err := logFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	realTmp, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("eval tmp dir failed: %v", err)
	}
	realDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("eval log dir failed: %v", err)
	}
	if realDir != filepath.Join(realTmp, defaultDir) {
		t.Fatalf("unexpected log dir: %s", realDir)
	}
	if filepath.Base(got) != defaultFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
}

func TestReleaseModeWritesFile(t *testing.T) {
	tmpDir := t.TempDir()
	l := New("release", Options{Dir: tmpDir, Filename: "release.log"})
	l.Info("order_created")
	_ = l.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	if !strings.Contains(string(content), "order_created") {
		t.Fatalf("expected message in log file, got=%s", content)
	}
}

func TestDebugModeSkipsFile(t *testing.T) {
	tmpDir := t.TempDir()
	l := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	l.Info("debug_event")
	_ = l.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestInitReplacesGlobal(t *testing.T) {
	var buf bytes.Buffer
	mu.Lock()
	prev := current
	current = NewWriter(&buf)
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		current = prev
		mu.Unlock()
	})

	Warnw("cart_persist_failed", "user_id", "9876543210")
	Sync()
	out := buf.String()
	if !strings.Contains(out, `"message":"cart_persist_failed"`) || !strings.Contains(out, `"user_id":"9876543210"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}
