package app

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/plugin"
	"github.com/ayusman/mudra/internal/store"
)

// runDetection is the camera-side loop. It reads frames, gates detection on
// motion, and feeds the classifier.
//
// Pipeline logic:
//  1. Start in idle mode (IdleFPS)
//  2. On motion detected, switch to active mode (ActiveFPS)
//  3. In active mode run hand detection and classify every frame,
//     including frames with no hand so the classifier can revert to None
//  4. After 2s without motion, switch back to idle mode
func (a *App) runDetection(stopCh <-chan struct{}) {
	defer a.wg.Done()

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			d := a.Detector()
			if !activeMode || d == nil {
				frame.Close()
				continue
			}

			hands, err := d.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			if len(hands) == 0 {
				a.classifier.Classify(nil)
				continue
			}

			a.classifier.Classify(&hands[0])
		}
	}
}

// runSimulation is the render-side loop. It steps the particle field at the
// configured rate using the classifier's current gesture and anchor, detects
// gesture transitions, and publishes position/color frames.
func (a *App) runSimulation(stopCh <-chan struct{}) {
	defer a.wg.Done()

	interval := time.Second / time.Duration(a.config.SimRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	last := gesture.None

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			var g gesture.Gesture
			var anchor gesture.Anchor

			if a.isDetecting() {
				g, anchor = a.classifier.Current()
			} else {
				// No detection loop is running, so this loop drives the
				// classifier's frame clock (override expiry in particular).
				g, anchor = a.classifier.Classify(nil)
			}

			if g != last {
				a.handleTransition(last, g)
				last = g
			}

			elapsed := time.Since(start).Seconds()
			a.field.Step(g, anchor, elapsed)

			a.mu.RLock()
			pub := a.publisher
			a.mu.RUnlock()

			if pub != nil {
				positions, colors := a.field.Snapshot()
				pub.Publish(positions, colors)
			}
		}
	}
}

// handleTransition records a gesture transition in the event log and runs
// any plugin actions bound to the new gesture.
func (a *App) handleTransition(from, to gesture.Gesture) {
	source := store.SourceLive
	if og, _, ok := a.classifier.Override(); ok && og == to {
		source = store.SourceForced
	}

	log.Printf("Gesture transition: %s -> %s (%s)", from, to, source)

	if a.config.Store != nil {
		err := a.config.Store.Events().Insert(&store.Event{
			ID:          uuid.New().String(),
			FromGesture: string(from),
			ToGesture:   string(to),
			Source:      source,
		})
		if err != nil {
			log.Printf("Failed to record transition: %v", err)
		}
	}

	a.executeActions(from, to, source)
}

// executeActions runs every enabled action binding for the gesture. Plugins
// run concurrently; failures are logged and never block the pipeline.
func (a *App) executeActions(from, to gesture.Gesture, source store.EventSource) {
	if a.config.Store == nil {
		return
	}

	actions, err := a.config.Store.Actions().ListByGesture(string(to))
	if err != nil {
		log.Printf("Failed to load action bindings: %v", err)
		return
	}

	for _, action := range actions {
		p, err := a.pluginMgr.Get(action.PluginName)
		if err != nil {
			log.Printf("Plugin %q not found for action %s", action.PluginName, action.ID)
			continue
		}

		req := &plugin.Request{
			Action:   action.ActionName,
			Gesture:  string(to),
			Previous: string(from),
			Source:   string(source),
			Config:   json.RawMessage(action.Config),
		}

		go func(p *plugin.Plugin, req *plugin.Request) {
			resp, err := a.pluginExec.Execute(p, req)
			if err != nil {
				log.Printf("Plugin %s failed: %v", p.Manifest.Name, err)
				return
			}
			if !resp.Success {
				log.Printf("Plugin %s reported error: %s", p.Manifest.Name, resp.Error)
			}
		}(p, req)
	}
}
