package plugin

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writeScriptPlugin creates a plugin backed by a shell script.
func writeScriptPlugin(t *testing.T, script string) *Plugin {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script plugins are not supported on windows")
	}

	dir := t.TempDir()
	execPath := filepath.Join(dir, "run.sh")
	if err := os.WriteFile(execPath, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}

	return &Plugin{
		Manifest:   Manifest{Name: "test", Executable: "run.sh"},
		Path:       dir,
		Executable: execPath,
	}
}

func TestExecutor_Execute(t *testing.T) {
	p := writeScriptPlugin(t, `cat > /dev/null; echo '{"success": true, "data": {"shown": 1}}'`)

	e := NewExecutor(5 * time.Second)
	resp, err := e.Execute(p, &Request{
		Action:   "send",
		Gesture:  "metal",
		Previous: "none",
		Source:   "live",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !resp.Success {
		t.Error("expected success response")
	}
}

func TestExecutor_ForwardsRequest(t *testing.T) {
	// The plugin echoes its stdin back inside the data field.
	p := writeScriptPlugin(t, `input=$(cat); printf '{"success": true, "data": %s}' "$input"`)

	e := NewExecutor(5 * time.Second)
	resp, err := e.Execute(p, &Request{Action: "send", Gesture: "peace", Source: "forced"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(string(resp.Data), `"gesture":"peace"`) {
		t.Errorf("request not forwarded to plugin, data = %s", resp.Data)
	}
}

func TestExecutor_Timeout(t *testing.T) {
	p := writeScriptPlugin(t, `sleep 5`)

	e := NewExecutor(100 * time.Millisecond)
	_, err := e.Execute(p, &Request{Action: "send", Gesture: "fist"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestExecutor_BadOutput(t *testing.T) {
	p := writeScriptPlugin(t, `cat > /dev/null; echo 'not json'`)

	e := NewExecutor(5 * time.Second)
	if _, err := e.Execute(p, &Request{Action: "send", Gesture: "open"}); err == nil {
		t.Error("expected parse error for non-JSON plugin output")
	}
}
