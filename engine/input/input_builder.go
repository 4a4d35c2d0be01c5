package input

import "github.com/Carmen-Shannon/cine-go/engine/rig"

type HandlerBuilderOption func(*handlerImpl)

// WithRig binds the handler to a rig; movement, mouse look, and scroll all
// target the rig's active camera at the moment they fire.
//
// Parameters:
//   - r: the rig to bind
//
// Returns:
//   - HandlerBuilderOption: a function that binds the rig
func WithRig(r rig.Rig) HandlerBuilderOption {
	return func(h *handlerImpl) {
		h.rig = r
	}
}

// WithConstrainPitch controls whether mouse look clamps pitch to ±89
// degrees. Defaults to true.
//
// Parameters:
//   - constrain: clamp pitch when true
//
// Returns:
//   - HandlerBuilderOption: a function that sets the pitch constraint
func WithConstrainPitch(constrain bool) HandlerBuilderOption {
	return func(h *handlerImpl) {
		h.constrainPitch = constrain
	}
}
