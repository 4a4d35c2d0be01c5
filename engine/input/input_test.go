package input

import (
	"testing"

	"github.com/Carmen-Shannon/cine-go/common"
	"github.com/Carmen-Shannon/cine-go/engine/camera"
	"github.com/Carmen-Shannon/cine-go/engine/rig"
	"github.com/stretchr/testify/assert"
)

func newTestRig() (rig.Rig, camera.Camera) {
	clock := func() float64 { return 0 }
	cam := camera.NewCamera(camera.WithClock(clock))
	return rig.NewRig(rig.WithCamera(cam), rig.WithWorkers(1)), cam
}

func TestHeldKeysMoveActiveCamera(t *testing.T) {
	r, cam := newTestRig()
	h := NewHandler(WithRig(r))

	h.KeyDown(common.KeyW)
	assert.True(t, h.IsDown(common.KeyW))

	h.Update(1)
	assert.True(t, cam.Position().ApproxEqual(common.V3(0, 0, -camera.DefaultSpeed), 1e-5),
		"got %v", cam.Position())

	h.KeyUp(common.KeyW)
	assert.False(t, h.IsDown(common.KeyW))
	h.Update(1)
	assert.True(t, cam.Position().ApproxEqual(common.V3(0, 0, -camera.DefaultSpeed), 1e-5),
		"released key must not keep moving")
}

func TestOpposingKeysCancel(t *testing.T) {
	r, cam := newTestRig()
	h := NewHandler(WithRig(r))

	h.KeyDown(common.KeyW)
	h.KeyDown(common.KeyS)
	h.KeyDown(common.KeyA)
	h.KeyDown(common.KeyD)
	h.Update(0.5)

	assert.True(t, cam.Position().ApproxEqual(common.Vec3{}, 1e-5), "got %v", cam.Position())
}

func TestReleaseBindingsFireOnKeyUp(t *testing.T) {
	r, _ := newTestRig()
	h := NewHandler(WithRig(r))

	var order []int
	h.BindRelease(common.KeyTab, func() { order = append(order, 1) })
	h.BindRelease(common.KeyTab, func() { order = append(order, 2) })

	h.KeyDown(common.KeyTab)
	assert.Empty(t, order, "bindings fire on release, not press")

	h.KeyUp(common.KeyTab)
	assert.Equal(t, []int{1, 2}, order, "bindings run in registration order")
}

func TestReleaseBindingMayCallBackIntoHandler(t *testing.T) {
	r, _ := newTestRig()
	h := NewHandler(WithRig(r))

	h.BindRelease(common.KeyEnter, func() { h.ResetMouse() })
	h.KeyDown(common.KeyEnter)
	h.KeyUp(common.KeyEnter) // must not deadlock
}

func TestFirstMouseMoveOnlySeeds(t *testing.T) {
	r, cam := newTestRig()
	h := NewHandler(WithRig(r))
	yawBefore := cam.Yaw()

	h.MouseMove(400, 300)
	assert.Equal(t, yawBefore, cam.Yaw(), "first position must not jump the view")

	h.MouseMove(410, 300)
	assert.InDelta(t, float64(yawBefore+10*camera.DefaultSensitivity), float64(cam.Yaw()), 1e-4)
}

func TestMouseMoveInvertsScreenY(t *testing.T) {
	r, cam := newTestRig()
	h := NewHandler(WithRig(r))

	h.MouseMove(0, 100)
	h.MouseMove(0, 90) // cursor moved up the screen
	assert.Greater(t, cam.Pitch(), float32(0), "upward cursor motion pitches up")
}

func TestResetMouseSuppressesNextDelta(t *testing.T) {
	r, cam := newTestRig()
	h := NewHandler(WithRig(r))

	h.MouseMove(0, 0)
	h.ResetMouse()
	h.MouseMove(500, 500)
	assert.Equal(t, camera.DefaultYaw, cam.Yaw(), "recapture must not jump the view")
}

func TestScrollZoomsActiveCamera(t *testing.T) {
	r, cam := newTestRig()
	h := NewHandler(WithRig(r))

	h.Scroll(5)
	assert.Equal(t, float32(40), cam.Zoom())
}

func TestHandlerWithoutRigIsInert(t *testing.T) {
	h := NewHandler()
	h.KeyDown(common.KeyW)
	h.Update(1)
	h.MouseMove(1, 1)
	h.MouseMove(2, 2)
	h.Scroll(1)
}
