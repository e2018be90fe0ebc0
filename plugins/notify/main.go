// Package main provides a desktop notification plugin.
// It shows a notification when a bound gesture fires, using notify-send on
// Linux and AppleScript on macOS.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action   string          `json:"action"`
	Gesture  string          `json:"gesture"`
	Previous string          `json:"previous"`
	Source   string          `json:"source"`
	Config   json.RawMessage `json:"config"`
}

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NotifyConfig defines the per-binding configuration.
type NotifyConfig struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func main() {
	// Read request from stdin
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	switch req.Action {
	case "send":
		if err := handleSend(&req); err != nil {
			writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
			return
		}
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	writeSuccessResponse()
}

// handleSend shows a desktop notification for the gesture transition.
func handleSend(req *Request) error {
	cfg := NotifyConfig{
		Title:   "Mudra",
		Message: fmt.Sprintf("Gesture: %s (was %s)", req.Gesture, req.Previous),
	}
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		if cfg.Title == "" {
			cfg.Title = "Mudra"
		}
		if cfg.Message == "" {
			cfg.Message = fmt.Sprintf("Gesture: %s (was %s)", req.Gesture, req.Previous)
		}
	}

	return notify(cfg.Title, cfg.Message)
}

// notify dispatches the notification using the platform's native mechanism.
func notify(title, message string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
		cmd = exec.Command("osascript", "-e", script)
	default:
		cmd = exec.Command("notify-send", title, message)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, string(output))
	}
	return nil
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	resp := Response{
		Success: false,
		Error:   errMsg,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	resp := Response{
		Success: true,
	}
	json.NewEncoder(os.Stdout).Encode(resp)
}
