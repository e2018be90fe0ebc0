// Package plugin provides discovery and execution of external plugins that
// react to gesture transitions in the Mudra visualizer.
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Request represents a gesture transition sent to a plugin for execution.
type Request struct {
	Action   string          `json:"action"`
	Gesture  string          `json:"gesture"`
	Previous string          `json:"previous"`
	Source   string          `json:"source"` // "live" or "forced"
	Config   json.RawMessage `json:"config"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
