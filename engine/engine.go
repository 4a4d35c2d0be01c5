package engine

import (
	"log"
	"time"

	"github.com/Carmen-Shannon/cine-go/engine/input"
	"github.com/Carmen-Shannon/cine-go/engine/profiler"
	"github.com/Carmen-Shannon/cine-go/engine/renderer"
	"github.com/Carmen-Shannon/cine-go/engine/rig"
	"github.com/Carmen-Shannon/cine-go/engine/window"
)

// engine implements the Engine interface.
// Drives the whole frame on the window thread: input, camera animation,
// rendering. Camera state is only ever touched from this single loop, so a
// frame sees a consistent pose from input handling through the draw.
type engine struct {
	window   window.Window
	rig      rig.Rig
	input    input.Handler
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(deltaTime float32)

	lastFrame time.Time
}

// Engine is the main entry point: it wires the window, the input handler,
// the camera rig, and the renderer into a single-threaded frame loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Rig returns the camera rig driven by the frame loop.
	//
	// Returns:
	//   - rig.Rig: the rig instance
	Rig() rig.Rig

	// Input returns the input handler wired to the window's callbacks.
	//
	// Returns:
	//   - input.Handler: the input handler
	Input() input.Handler

	// EnableProfiler enables frame statistics output to the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics output.
	DisableProfiler()

	// SetFrameCallback registers a function called once per frame after
	// input and camera updates, before rendering. Use it for demo logic
	// such as enqueueing animation commands.
	//
	// Parameters:
	//   - callback: function receiving the frame delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// Run starts the frame loop. Blocks until the window closes, then
	// releases the renderer's GPU resources.
	Run()

	// Quit closes the window, ending the frame loop.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine. A window is created with defaults when none
// is supplied; likewise the rig and the input handler. The renderer is
// optional so logic-only setups can run without a GPU.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		e.window = window.NewWindow()
	}
	if e.rig == nil {
		e.rig = rig.NewRig()
	}
	if e.input == nil {
		e.input = input.NewHandler(input.WithRig(e.rig))
	}

	e.window.SetKeyDownCallback(func(key int) {
		e.input.KeyDown(key)
	})
	e.window.SetKeyUpCallback(func(key int) {
		e.input.KeyUp(key)
	})
	e.window.SetMouseMoveCallback(func(x, y float64) {
		e.input.MouseMove(x, y)
	})
	e.window.SetScrollCallback(func(delta float64) {
		e.input.Scroll(delta)
	})
	e.window.SetResizeCallback(func(width, height int) {
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
	})

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Rig() rig.Rig {
	return e.rig
}

func (e *engine) Input() input.Handler {
	return e.input
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

func (e *engine) Run() {
	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()
	if e.renderer != nil {
		e.renderer.Release()
	}
}

func (e *engine) Quit() {
	if err := e.window.Close(); err != nil {
		log.Printf("engine: close window: %v", err)
	}
}

// frame runs one iteration of the loop: delta time, held-key movement, the
// demo callback, camera advancement for every rig camera, then the draw.
func (e *engine) frame() {
	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	e.input.Update(dt)

	if e.frameCallback != nil {
		e.frameCallback(dt)
	}

	view := e.rig.UpdateAll()

	if e.renderer != nil {
		proj := e.rig.ProjectionMatrix(float32(e.window.Width()), float32(e.window.Height()))
		if err := e.renderer.RenderFrame(view, proj); err != nil {
			log.Printf("engine: render frame: %v", err)
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}
