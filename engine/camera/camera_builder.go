package camera

import "github.com/Carmen-Shannon/cine-go/common"

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's starting world-space position.
//
// Parameters:
//   - pos: the starting position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(pos common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = pos
	}
}

// WithWorldUp sets the world up vector the camera re-orthogonalizes against.
//
// Parameters:
//   - up: the world up vector (typically 0,1,0)
//
// Returns:
//   - CameraBuilderOption: a function that sets the world up vector
func WithWorldUp(up common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.worldUp = up
	}
}

// WithYaw sets the camera's starting yaw in degrees.
//
// Parameters:
//   - yaw: yaw angle in degrees (-90 faces -Z)
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's yaw
func WithYaw(yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
	}
}

// WithPitch sets the camera's starting pitch in degrees.
//
// Parameters:
//   - pitch: pitch angle in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pitch
func WithPitch(pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pitch = pitch
	}
}

// WithZoom sets the camera's starting field of view in degrees.
//
// Parameters:
//   - zoom: vertical field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = zoom
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithSpeed sets the keyboard movement speed in units per second.
//
// Parameters:
//   - speed: movement speed
//
// Returns:
//   - CameraBuilderOption: a function that sets the movement speed
func WithSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.speed = speed
	}
}

// WithSensitivity sets the mouse look sensitivity.
//
// Parameters:
//   - sensitivity: degrees of rotation per mouse delta unit
//
// Returns:
//   - CameraBuilderOption: a function that sets the mouse sensitivity
func WithSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.sensitivity = sensitivity
	}
}

// WithClock injects the monotonic time source queued animations progress
// against. Tests use this to drive animations deterministically.
//
// Parameters:
//   - clock: a function returning seconds
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's clock
func WithClock(clock Clock) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.clock = clock
	}
}
