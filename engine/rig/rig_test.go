package rig

import (
	"testing"

	"github.com/Carmen-Shannon/cine-go/common"
	"github.com/Carmen-Shannon/cine-go/engine/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now float64
}

func (f *fakeClock) read() float64 { return f.now }

func TestNewRigAlwaysHasActiveCamera(t *testing.T) {
	r := NewRig(WithSpawnOptions(camera.WithPosition(common.V3(0, 5, 3))))

	assert.Equal(t, 1, r.Count())
	assert.Equal(t, 0, r.ActiveIndex())
	require.NotNil(t, r.Active())
	assert.Equal(t, common.V3(0, 5, 3), r.Active().Position())
}

func TestSpawnUsesDefaultOptions(t *testing.T) {
	r := NewRig(WithSpawnOptions(camera.WithPosition(common.V3(1, 2, 3))))

	cam, idx := r.Spawn()
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, common.V3(1, 2, 3), cam.Position())
}

func TestCycleWrapsAround(t *testing.T) {
	r := NewRig()
	r.Spawn()
	r.Spawn()

	assert.Equal(t, 1, r.Cycle())
	assert.Equal(t, 2, r.Cycle())
	assert.Equal(t, 0, r.Cycle(), "wraps back to the first camera")
}

func TestSetActiveRejectsOutOfRange(t *testing.T) {
	r := NewRig()

	assert.Error(t, r.SetActive(-1))
	assert.Error(t, r.SetActive(1))
	assert.NoError(t, r.SetActive(0))

	_, err := r.Camera(5)
	assert.Error(t, err)
}

func TestUpdateAllAdvancesEveryCamera(t *testing.T) {
	clk := &fakeClock{}
	camA := camera.NewCamera(camera.WithClock(clk.read))
	camB := camera.NewCamera(camera.WithClock(clk.read), camera.WithPosition(common.V3(0, 0, 10)))
	r := NewRig(WithCamera(camA), WithCamera(camB), WithWorkers(2))

	require.NoError(t, camA.Translate(common.V3(4, 0, 0), 2))
	require.NoError(t, camB.Translate(common.V3(0, 0, 0), 2))
	r.UpdateAll() // activates both at t=0

	clk.now = 1
	view := r.UpdateAll()

	assert.True(t, camA.Position().ApproxEqual(common.V3(2, 0, 0), 1e-5),
		"active camera advanced, got %v", camA.Position())
	assert.True(t, camB.Position().ApproxEqual(common.V3(0, 0, 5), 1e-5),
		"background camera advanced too, got %v", camB.Position())

	// returned matrix belongs to the active camera: its translation column
	// carries the active camera's position
	assert.InDelta(t, -2, float64(view[12]), 1e-4)
}

func TestActivePoseSnapshot(t *testing.T) {
	r := NewRig(WithSpawnOptions(
		camera.WithPosition(common.V3(0, 5, 3)),
		camera.WithZoom(30),
	))

	pose := r.ActivePose()
	assert.Equal(t, common.V3(0, 5, 3), pose.Position)
	assert.Equal(t, float32(30), pose.Zoom)
	assert.Contains(t, pose.String(), "pos=(0.00, 5.00, 3.00)")
}

func TestProjectionMatrixDelegatesToActive(t *testing.T) {
	r := NewRig()
	proj := r.ProjectionMatrix(800, 600)
	assert.InDelta(t, -1, float64(proj[11]), 1e-6)
	assert.NotZero(t, proj[0])
}
