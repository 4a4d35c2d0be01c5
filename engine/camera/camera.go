package camera

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/cine-go/common"
	"github.com/chewxy/math32"
)

// Default pose and input tuning values. A yaw of -90 degrees points the
// camera down the negative Z axis.
const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45.0

	defaultNear float32 = 0.1
	defaultFar  float32 = 100.0

	minZoom  float32 = 1.0
	maxZoom  float32 = 45.0
	maxPitch float32 = 89.0

	degenerateSq float32 = 1e-12
)

// ErrInvalidDuration is returned by enqueue operations when the requested
// duration is negative. A zero duration is valid and applies on first sample.
var ErrInvalidDuration = errors.New("camera: invalid duration")

// Movement identifies a direct keyboard displacement direction.
type Movement int

const (
	MoveForward Movement = iota
	MoveBackward
	MoveLeft
	MoveRight
)

// Clock is a monotonic time source returning seconds. Cameras sample it once
// per ViewMatrix call; tests inject a fake to drive animations precisely.
type Clock func() float64

type cameraImpl struct {
	mu *sync.Mutex

	position common.Vec3
	front    common.Vec3
	up       common.Vec3
	right    common.Vec3
	worldUp  common.Vec3

	yaw   float32
	pitch float32

	speed       float32
	sensitivity float32
	zoom        float32
	near        float32
	far         float32

	lanes [laneCount]lane
	clock Clock

	viewMatrix [16]float32
}

// Camera is a single virtual camera: a pose (position + orthonormal basis)
// advanced each frame by six independent queues of timed animation commands,
// plus direct keyboard/mouse handlers that bypass the queues.
//
// A camera instance is safe for concurrent use, but the expected pattern is
// one goroutine driving ViewMatrix once per frame; queued commands measure
// progress against the camera's clock, so calling ViewMatrix more often than
// once per frame only wastes work.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vec3: the current position
	Position() common.Vec3

	// Front returns the camera's forward direction (unit length).
	//
	// Returns:
	//   - common.Vec3: the current forward vector
	Front() common.Vec3

	// Up returns the camera's up direction (unit length).
	//
	// Returns:
	//   - common.Vec3: the current up vector
	Up() common.Vec3

	// Right returns the camera's right direction (unit length).
	//
	// Returns:
	//   - common.Vec3: the current right vector
	Right() common.Vec3

	// Yaw returns the camera's yaw angle in degrees.
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// Pitch returns the camera's pitch angle in degrees.
	//
	// Returns:
	//   - float32: pitch in degrees
	Pitch() float32

	// Zoom returns the camera's vertical field of view in degrees.
	//
	// Returns:
	//   - float32: field of view in degrees, within [1, 45]
	Zoom() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetPosition moves the camera to the given world-space position without
	// touching orientation or queued animations.
	//
	// Parameters:
	//   - pos: the new position
	SetPosition(pos common.Vec3)

	// ViewMatrix samples the clock once, advances every animation lane in the
	// fixed priority order (B-spline, Bézier, translate, rotate-about-point,
	// rotate-about-axis, look-at), and returns the look-at matrix built from
	// the resulting pose (column-major). Call once per frame.
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns a perspective projection matrix for the given
	// viewport size (column-major). Pure: no animation state is touched.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix(width, height float32) [16]float32

	// LookAt queues a timed reorientation toward target. The forward vector
	// is interpolated from the pose at dequeue time to the direction of
	// target; if the camera already sits at target when the command
	// activates, it ends immediately with no motion.
	//
	// Parameters:
	//   - target: world-space point to face
	//   - duration: animation length in seconds (0 applies instantly)
	//
	// Returns:
	//   - error: ErrInvalidDuration if duration is negative
	LookAt(target common.Vec3, duration float64) error

	// Translate queues a timed linear move from the position at dequeue time
	// to target.
	//
	// Parameters:
	//   - target: world-space destination
	//   - duration: animation length in seconds (0 applies instantly)
	//
	// Returns:
	//   - error: ErrInvalidDuration if duration is negative
	Translate(target common.Vec3, duration float64) error

	// RotateAroundPoint queues a timed orbit of the camera position about
	// pivot. The orbit plane is chosen at dequeue time from the current
	// forward vector and the direction toward the pivot; the camera stays
	// aimed at the pivot while it orbits.
	//
	// Parameters:
	//   - pivot: world-space point to orbit
	//   - angle: total sweep in degrees
	//   - duration: animation length in seconds (0 applies instantly)
	//
	// Returns:
	//   - error: ErrInvalidDuration if duration is negative
	RotateAroundPoint(pivot common.Vec3, angle float32, duration float64) error

	// RotateAroundAxis queues a timed in-place spin: the orientation rotates
	// by angle about the given axis while the position stays fixed at its
	// dequeue-time value.
	//
	// Parameters:
	//   - axis: rotation axis (need not be unit length)
	//   - angle: total rotation in degrees
	//   - duration: animation length in seconds (0 applies instantly)
	//
	// Returns:
	//   - error: ErrInvalidDuration if duration is negative
	RotateAroundAxis(axis common.Vec3, angle float32, duration float64) error

	// BSplinePath queues a timed move along a clamped Catmull-Rom spline
	// through the four control points. The path starts exactly at p0 and
	// ends exactly at p3.
	//
	// Parameters:
	//   - p0, p1, p2, p3: spline control points
	//   - duration: animation length in seconds (0 applies instantly)
	//
	// Returns:
	//   - error: ErrInvalidDuration if duration is negative
	BSplinePath(p0, p1, p2, p3 common.Vec3, duration float64) error

	// BezierPath queues a timed move along the cubic Bézier curve defined by
	// the four control points. The path starts exactly at p0 and ends
	// exactly at p3.
	//
	// Parameters:
	//   - p0, p1, p2, p3: Bézier control points
	//   - duration: animation length in seconds (0 applies instantly)
	//
	// Returns:
	//   - error: ErrInvalidDuration if duration is negative
	BezierPath(p0, p1, p2, p3 common.Vec3, duration float64) error

	// Idle reports whether every lane is drained: no active command and no
	// queued commands of any kind.
	//
	// Returns:
	//   - bool: true when no animation is active or pending
	Idle() bool

	// Pending returns the total number of commands that have not finished:
	// active commands plus queued ones, across all lanes.
	//
	// Returns:
	//   - int: outstanding command count
	Pending() int

	// ProcessKeyboard displaces the position immediately along the forward or
	// right axis, scaled by the movement speed and the frame delta. Bypasses
	// the animation queues.
	//
	// Parameters:
	//   - direction: which axis to move along
	//   - dt: frame delta time in seconds
	ProcessKeyboard(direction Movement, dt float32)

	// ProcessMouseMovement accumulates yaw/pitch from sensitivity-scaled
	// mouse deltas and recomputes the basis vectors. When constrainPitch is
	// true the pitch is clamped to [-89, 89] degrees.
	//
	// Parameters:
	//   - dx: horizontal mouse delta
	//   - dy: vertical mouse delta (positive = look up)
	//   - constrainPitch: clamp pitch to avoid flipping over the poles
	ProcessMouseMovement(dx, dy float32, constrainPitch bool)

	// ProcessMouseScroll narrows or widens the field of view by the scroll
	// delta, clamped to [1, 45] degrees.
	//
	// Parameters:
	//   - dy: scroll delta (positive narrows the field of view)
	ProcessMouseScroll(dy float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at the origin facing -Z with the classic fly-cam
// defaults. Pose, tuning, and the clock are adjusted via builder options; the
// default clock is wall time measured from camera creation.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		worldUp:     common.Vec3{Y: 1},
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		speed:       DefaultSpeed,
		sensitivity: DefaultSensitivity,
		zoom:        DefaultZoom,
		near:        defaultNear,
		far:         defaultFar,
	}
	for _, option := range options {
		option(c)
	}
	if c.clock == nil {
		epoch := time.Now()
		c.clock = func() float64 {
			return time.Since(epoch).Seconds()
		}
	}
	c.updateVectors()
	return c
}

func (c *cameraImpl) Position() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Front() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front
}

func (c *cameraImpl) Up() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Right() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right
}

func (c *cameraImpl) Yaw() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch
}

func (c *cameraImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetPosition(pos common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = pos
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.clock()
	c.processLanes(now)
	common.LookAt(c.viewMatrix[:], c.position, c.position.Add(c.front), c.up)
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix(width, height float32) [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = width / height
	}
	var proj [16]float32
	common.Perspective(proj[:], common.DegToRad(c.zoom), aspect, c.near, c.far)
	return proj
}

func (c *cameraImpl) LookAt(target common.Vec3, duration float64) error {
	return c.enqueue(kindLookAt, &command{target: target, duration: duration})
}

func (c *cameraImpl) Translate(target common.Vec3, duration float64) error {
	return c.enqueue(kindTranslate, &command{target: target, duration: duration})
}

func (c *cameraImpl) RotateAroundPoint(pivot common.Vec3, angle float32, duration float64) error {
	return c.enqueue(kindRotatePoint, &command{target: pivot, angle: angle, duration: duration})
}

func (c *cameraImpl) RotateAroundAxis(axis common.Vec3, angle float32, duration float64) error {
	return c.enqueue(kindRotateAxis, &command{axis: axis, angle: angle, duration: duration})
}

func (c *cameraImpl) BSplinePath(p0, p1, p2, p3 common.Vec3, duration float64) error {
	return c.enqueue(kindBSpline, &command{points: [4]common.Vec3{p0, p1, p2, p3}, duration: duration})
}

func (c *cameraImpl) BezierPath(p0, p1, p2, p3 common.Vec3, duration float64) error {
	return c.enqueue(kindBezier, &command{points: [4]common.Vec3{p0, p1, p2, p3}, duration: duration})
}

func (c *cameraImpl) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lanes {
		if !c.lanes[i].idle() {
			return false
		}
	}
	return true
}

func (c *cameraImpl) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for i := range c.lanes {
		n += c.lanes[i].pending()
	}
	return n
}

func (c *cameraImpl) ProcessKeyboard(direction Movement, dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	velocity := c.speed * dt
	switch direction {
	case MoveForward:
		c.position = c.position.Add(c.front.Scale(velocity))
	case MoveBackward:
		c.position = c.position.Sub(c.front.Scale(velocity))
	case MoveLeft:
		c.position = c.position.Sub(c.right.Scale(velocity))
	case MoveRight:
		c.position = c.position.Add(c.right.Scale(velocity))
	}
}

func (c *cameraImpl) ProcessMouseMovement(dx, dy float32, constrainPitch bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.yaw += dx * c.sensitivity
	c.pitch += dy * c.sensitivity
	if constrainPitch {
		if c.pitch > maxPitch {
			c.pitch = maxPitch
		}
		if c.pitch < -maxPitch {
			c.pitch = -maxPitch
		}
	}
	c.updateVectors()
}

func (c *cameraImpl) ProcessMouseScroll(dy float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom -= dy
	if c.zoom < minZoom {
		c.zoom = minZoom
	}
	if c.zoom > maxZoom {
		c.zoom = maxZoom
	}
}

// enqueue validates the duration and appends the command to its lane's queue.
// No pose state changes until the command is dequeued by processLanes.
func (c *cameraImpl) enqueue(kind animationKind, cmd *command) error {
	if cmd.duration < 0 {
		return fmt.Errorf("%w: %v seconds", ErrInvalidDuration, cmd.duration)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lanes[kind].push(cmd)
	return nil
}

// updateVectors recomputes front from yaw/pitch and re-orthogonalizes the
// basis against the world up vector. Caller must hold the mutex.
func (c *cameraImpl) updateVectors() {
	yaw := common.DegToRad(c.yaw)
	pitch := common.DegToRad(c.pitch)
	c.front = common.Vec3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
	c.orthonormalize()
}

// orthonormalize rebuilds right/up from front and the world up vector. When
// front is parallel to world up the previous right vector is kept so the
// basis never collapses. Caller must hold the mutex.
func (c *cameraImpl) orthonormalize() {
	right := c.front.Cross(c.worldUp)
	if right.Dot(right) >= degenerateSq {
		c.right = right.Normalize()
	}
	c.up = c.right.Cross(c.front).Normalize()
}

// syncAngles re-derives yaw/pitch from the forward vector so mouse input
// after a queued orientation change continues from where the animation left
// the camera. Caller must hold the mutex.
func (c *cameraImpl) syncAngles() {
	y := c.front.Y
	if y > 1 {
		y = 1
	}
	if y < -1 {
		y = -1
	}
	c.pitch = common.RadToDeg(math32.Asin(y))
	c.yaw = common.RadToDeg(math32.Atan2(c.front.Z, c.front.X))
}
