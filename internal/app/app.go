// Package app wires the Mudra pipeline together: camera capture, motion
// gating, hand detection, gesture classification, the particle field, and
// plugin action execution.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/field"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the detection frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the detection frame rate during active tracking.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without motion before dropping back to idle.
	IdleTimeoutMs = 2000
	// DefaultSimRate is the simulation step rate in frames per second.
	DefaultSimRate = 60
)

// Publisher receives particle frames from the simulation loop.
// *server.ParticlesHandler implements it.
type Publisher interface {
	Publish(positions, colors []float32)
}

// Config holds configuration options for the application.
type Config struct {
	Store         *store.Store
	PluginDir     string
	CameraID      int
	MotionThresh  float64
	ParticleCount int
	Seed          int64
	SimRate       int
}

// App orchestrates detection, classification, and the particle simulation.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	classifier *gesture.Classifier
	field      *field.Field
	pluginMgr  *plugin.Manager
	pluginExec *plugin.Executor
	publisher  Publisher

	enabled   bool
	detecting bool
	mu        sync.RWMutex
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// New creates a new App instance with the given configuration. Persisted
// settings override config defaults where present.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}
	if config.SimRate <= 0 {
		config.SimRate = DefaultSimRate
	}

	particleCount := config.ParticleCount
	if particleCount <= 0 {
		particleCount = field.DefaultParticleCount
	}
	if config.Store != nil {
		particleCount = config.Store.Settings().GetInt(store.SettingParticleCount, particleCount)
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		classifier: gesture.NewClassifier(),
		field:      field.New(particleCount, seed),
		pluginMgr:  plugin.NewManager(config.PluginDir),
		pluginExec: plugin.NewExecutor(5 * time.Second),
		enabled:    false,
		stopCh:     nil,
	}

	if config.Store != nil {
		if text, err := config.Store.Settings().Get(store.SettingPeaceText); err == nil {
			a.field.SetText(text)
		}
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture detection. The particle simulation
// keeps running either way.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the camera. Tests use this to feed recorded frames.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// SetPublisher sets the sink for simulation frames.
func (a *App) SetPublisher(p Publisher) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.publisher = p
}

// DiscoverPlugins scans the plugin directory and loads available plugins.
func (a *App) DiscoverPlugins() error {
	return a.pluginMgr.Discover()
}

// Start begins the simulation loop, and the detection pipeline when the
// camera is available. A missing camera is not fatal: forced gestures can
// still drive the field.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}
	stopCh := make(chan struct{})
	a.stopCh = stopCh

	a.wg.Add(1)
	go a.runSimulation(stopCh)

	if err := a.camera.Open(); err != nil {
		log.Printf("Camera unavailable (%v), running without live detection", err)
	} else {
		a.camera.SetFPS(IdleFPS)
		a.detecting = true
		a.wg.Add(1)
		go a.runDetection(stopCh)
	}

	log.Println("Pipeline started")
	return nil
}

// Stop halts both loops and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	a.detecting = false
	a.mu.Unlock()

	a.wg.Wait()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Pipeline stopped")
}

// State implements server.Engine.
func (a *App) State() server.EngineState {
	g, anchor := a.classifier.Current()
	_, _, forced := a.classifier.Override()

	return server.EngineState{
		Gesture:       g,
		Anchor:        anchor,
		ParticleCount: a.field.Len(),
		Text:          a.field.Text(),
		Forced:        forced,
		Enabled:       a.IsEnabled(),
	}
}

// ForceGesture pins the classifier to g for the override window.
func (a *App) ForceGesture(g gesture.Gesture) error {
	a.classifier.Force(g, gesture.DefaultOverrideDuration)
	return nil
}

// ClearForce cancels a pending override.
func (a *App) ClearForce() {
	a.classifier.ClearOverride()
}

// SetText replaces the peace formation's glyph text and persists it.
func (a *App) SetText(text string) {
	a.field.SetText(text)
	if a.config.Store != nil {
		if err := a.config.Store.Settings().Set(store.SettingPeaceText, text); err != nil {
			log.Printf("Failed to persist peace text: %v", err)
		}
	}
}

// Resize rebuilds the particle field with count particles and persists the
// new count.
func (a *App) Resize(count int) error {
	a.field.Resize(count)
	if a.config.Store != nil {
		if err := a.config.Store.Settings().SetInt(store.SettingParticleCount, count); err != nil {
			log.Printf("Failed to persist particle count: %v", err)
		}
	}
	return nil
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Classifier returns the gesture classifier.
func (a *App) Classifier() *gesture.Classifier {
	return a.classifier
}

// Field returns the particle field.
func (a *App) Field() *field.Field {
	return a.field
}

// PluginManager returns the plugin manager.
func (a *App) PluginManager() *plugin.Manager {
	return a.pluginMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

func (a *App) isDetecting() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detecting
}
