package input

import (
	"sync"

	"github.com/Carmen-Shannon/cine-go/common"
	"github.com/Carmen-Shannon/cine-go/engine/camera"
	"github.com/Carmen-Shannon/cine-go/engine/rig"
)

type handlerImpl struct {
	mu *sync.Mutex

	rig rig.Rig

	held            map[int]bool
	releaseBindings map[int][]func()

	firstMouse     bool
	lastX          float64
	lastY          float64
	constrainPitch bool
}

// Handler is the per-window input state: which keys are held, what runs on
// key release, and where the mouse was last frame. One handler per window;
// nothing here is global. Key callbacks feed KeyDown/KeyUp, the cursor
// callback feeds MouseMove, and the frame loop calls Update with the frame
// delta to apply continuous movement to the rig's active camera.
type Handler interface {
	// KeyDown records a key press.
	//
	// Parameters:
	//   - key: the key code (see common key code constants)
	KeyDown(key int)

	// KeyUp records a key release and fires any release bindings for the
	// key, in registration order.
	//
	// Parameters:
	//   - key: the key code
	KeyUp(key int)

	// IsDown reports whether a key is currently held.
	//
	// Parameters:
	//   - key: the key code
	//
	// Returns:
	//   - bool: true while the key is held
	IsDown(key int) bool

	// BindRelease registers a function to run when the key is released.
	// Multiple bindings on one key run in registration order. Release
	// triggering matches how the original demo bindings behave: an action
	// fires once per press, on the way up.
	//
	// Parameters:
	//   - key: the key code
	//   - fn: the function to run on release
	BindRelease(key int, fn func())

	// MouseMove consumes an absolute cursor position and applies the delta
	// from the previous position to the active camera's look direction. The
	// first position after creation (or ResetMouse) only seeds the previous
	// position, so cursor capture does not cause a view jump.
	//
	// Parameters:
	//   - x: cursor x position
	//   - y: cursor y position (screen coordinates, y down)
	MouseMove(x, y float64)

	// ResetMouse discards the stored cursor position so the next MouseMove
	// only seeds state. Call when the cursor is recaptured.
	ResetMouse()

	// Scroll applies a scroll delta to the active camera's zoom.
	//
	// Parameters:
	//   - dy: scroll delta
	Scroll(dy float64)

	// Update applies held movement keys (W/A/S/D) to the active camera,
	// scaled by the frame delta. Call once per frame.
	//
	// Parameters:
	//   - dt: frame delta time in seconds
	Update(dt float32)
}

var _ Handler = &handlerImpl{}

// NewHandler creates a Handler bound to a rig's active camera.
//
// Parameters:
//   - options: functional options to configure the handler
//
// Returns:
//   - Handler: the newly created handler
func NewHandler(options ...HandlerBuilderOption) Handler {
	h := &handlerImpl{
		mu:              &sync.Mutex{},
		held:            make(map[int]bool),
		releaseBindings: make(map[int][]func()),
		firstMouse:      true,
		constrainPitch:  true,
	}
	for _, option := range options {
		option(h)
	}
	return h
}

func (h *handlerImpl) KeyDown(key int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.held[key] = true
}

func (h *handlerImpl) KeyUp(key int) {
	h.mu.Lock()
	delete(h.held, key)
	bindings := h.releaseBindings[key]
	h.mu.Unlock()

	// run outside the lock so a binding may call back into the handler
	for _, fn := range bindings {
		fn()
	}
}

func (h *handlerImpl) IsDown(key int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.held[key]
}

func (h *handlerImpl) BindRelease(key int, fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.releaseBindings[key] = append(h.releaseBindings[key], fn)
}

func (h *handlerImpl) MouseMove(x, y float64) {
	h.mu.Lock()
	if h.firstMouse {
		h.lastX, h.lastY = x, y
		h.firstMouse = false
		h.mu.Unlock()
		return
	}
	dx := float32(x - h.lastX)
	dy := float32(h.lastY - y) // screen y grows downward, pitch up is positive
	h.lastX, h.lastY = x, y
	cam := h.activeCamera()
	constrain := h.constrainPitch
	h.mu.Unlock()

	if cam != nil {
		cam.ProcessMouseMovement(dx, dy, constrain)
	}
}

func (h *handlerImpl) ResetMouse() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.firstMouse = true
}

func (h *handlerImpl) Scroll(dy float64) {
	h.mu.Lock()
	cam := h.activeCamera()
	h.mu.Unlock()
	if cam != nil {
		cam.ProcessMouseScroll(float32(dy))
	}
}

func (h *handlerImpl) Update(dt float32) {
	h.mu.Lock()
	cam := h.activeCamera()
	forward := h.held[common.KeyW]
	backward := h.held[common.KeyS]
	left := h.held[common.KeyA]
	right := h.held[common.KeyD]
	h.mu.Unlock()

	if cam == nil {
		return
	}
	if forward {
		cam.ProcessKeyboard(camera.MoveForward, dt)
	}
	if backward {
		cam.ProcessKeyboard(camera.MoveBackward, dt)
	}
	if left {
		cam.ProcessKeyboard(camera.MoveLeft, dt)
	}
	if right {
		cam.ProcessKeyboard(camera.MoveRight, dt)
	}
}

// activeCamera resolves the current camera. Caller must hold the mutex.
func (h *handlerImpl) activeCamera() camera.Camera {
	if h.rig == nil {
		return nil
	}
	return h.rig.Active()
}
