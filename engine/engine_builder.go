package engine

import (
	"github.com/Carmen-Shannon/cine-go/engine/input"
	"github.com/Carmen-Shannon/cine-go/engine/renderer"
	"github.com/Carmen-Shannon/cine-go/engine/rig"
	"github.com/Carmen-Shannon/cine-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables frame statistics output.
//
// Parameters:
//   - enabled: if true, enables frame statistics logging
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets a custom configured window for the engine to use rather
// than allowing the engine to create one with defaults.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRig sets the camera rig the frame loop advances each frame.
//
// Parameters:
//   - r: a pre-configured Rig instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRig(r rig.Rig) EngineBuilderOption {
	return func(e *engine) {
		e.rig = r
	}
}

// WithInputHandler sets a custom input handler. When omitted the engine
// creates one bound to its rig.
//
// Parameters:
//   - h: a pre-configured Handler instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithInputHandler(h input.Handler) EngineBuilderOption {
	return func(e *engine) {
		e.input = h
	}
}

// WithRenderer sets the renderer driven by the frame loop. Without one the
// engine still advances input and cameras, which suits logic-only runs.
//
// Parameters:
//   - r: a pre-configured Renderer instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}
