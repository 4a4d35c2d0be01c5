package rig

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/cine-go/common"
	"github.com/Carmen-Shannon/cine-go/engine/camera"
)

// Pose is a read-only snapshot of one camera's pose, taken under the rig
// lock. Used for logging and HUD display.
type Pose struct {
	Position common.Vec3
	Front    common.Vec3
	Up       common.Vec3
	Yaw      float32
	Pitch    float32
	Zoom     float32
}

// String formats the pose the way the on-screen debug overlay prints it.
func (p Pose) String() string {
	return fmt.Sprintf("pos=(%.2f, %.2f, %.2f) front=(%.2f, %.2f, %.2f) yaw=%.1f pitch=%.1f zoom=%.1f",
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Front.X, p.Front.Y, p.Front.Z,
		p.Yaw, p.Pitch, p.Zoom)
}

type rigImpl struct {
	mu *sync.Mutex

	cameras []camera.Camera
	active  int

	// spawnOptions configure every camera created by Spawn, so all spawned
	// cameras share one default rig configuration.
	spawnOptions []camera.CameraBuilderOption

	// updatePool runs per-camera animation advancement in parallel. Each
	// camera is one task, so an individual camera instance never sees
	// concurrent lane processing.
	updatePool worker.DynamicWorkerPool
	workers    int
}

// Rig owns an ordered set of cameras and tracks which one is active. Input
// handlers talk to the active camera; UpdateAll advances every camera each
// frame so background cameras keep animating while off screen.
type Rig interface {
	// Add appends an existing camera to the rig.
	//
	// Parameters:
	//   - cam: the camera to add
	//
	// Returns:
	//   - int: the new camera's index
	Add(cam camera.Camera) int

	// Spawn creates a camera from the rig's default options, appends it, and
	// returns it with its index.
	//
	// Returns:
	//   - camera.Camera: the newly created camera
	//   - int: the new camera's index
	Spawn() (camera.Camera, int)

	// Count returns the number of cameras in the rig.
	//
	// Returns:
	//   - int: camera count
	Count() int

	// Active returns the currently selected camera.
	//
	// Returns:
	//   - camera.Camera: the active camera
	Active() camera.Camera

	// ActiveIndex returns the index of the currently selected camera.
	//
	// Returns:
	//   - int: the active camera's index
	ActiveIndex() int

	// SetActive selects the camera at the given index.
	//
	// Parameters:
	//   - index: the camera index to select
	//
	// Returns:
	//   - error: if index is out of range
	SetActive(index int) error

	// Cycle selects the next camera, wrapping to the first after the last.
	//
	// Returns:
	//   - int: the newly active camera's index
	Cycle() int

	// Camera returns the camera at the given index.
	//
	// Parameters:
	//   - index: the camera index
	//
	// Returns:
	//   - camera.Camera: the camera at index
	//   - error: if index is out of range
	Camera(index int) (camera.Camera, error)

	// ActivePose returns a snapshot of the active camera's pose.
	//
	// Returns:
	//   - Pose: the active camera's pose
	ActivePose() Pose

	// UpdateAll advances every camera's animation lanes once, in parallel on
	// the rig's worker pool, and returns the active camera's view matrix.
	// Call once per frame.
	//
	// Returns:
	//   - [16]float32: the active camera's view matrix (column-major)
	UpdateAll() [16]float32

	// ProjectionMatrix returns the active camera's projection matrix for the
	// given viewport size.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	//
	// Returns:
	//   - [16]float32: the projection matrix (column-major)
	ProjectionMatrix(width, height float32) [16]float32
}

var _ Rig = &rigImpl{}

// NewRig creates a Rig with one camera built from the default options, so
// Active is always valid.
//
// Parameters:
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the newly created rig
func NewRig(options ...RigBuilderOption) Rig {
	r := &rigImpl{
		mu:      &sync.Mutex{},
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(r)
	}
	// Queue size of 64 covers any plausible camera count with headroom.
	r.updatePool = worker.NewDynamicWorkerPool(r.workers, 64, 1*time.Second)
	if len(r.cameras) == 0 {
		r.cameras = append(r.cameras, camera.NewCamera(r.spawnOptions...))
	}
	return r
}

func (r *rigImpl) Add(cam camera.Camera) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cameras = append(r.cameras, cam)
	return len(r.cameras) - 1
}

func (r *rigImpl) Spawn() (camera.Camera, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cam := camera.NewCamera(r.spawnOptions...)
	r.cameras = append(r.cameras, cam)
	return cam, len(r.cameras) - 1
}

func (r *rigImpl) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cameras)
}

func (r *rigImpl) Active() camera.Camera {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cameras[r.active]
}

func (r *rigImpl) ActiveIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *rigImpl) SetActive(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.cameras) {
		return fmt.Errorf("rig: camera index %d out of range [0, %d)", index, len(r.cameras))
	}
	r.active = index
	return nil
}

func (r *rigImpl) Cycle() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = (r.active + 1) % len(r.cameras)
	return r.active
}

func (r *rigImpl) Camera(index int) (camera.Camera, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.cameras) {
		return nil, fmt.Errorf("rig: camera index %d out of range [0, %d)", index, len(r.cameras))
	}
	return r.cameras[index], nil
}

func (r *rigImpl) ActivePose() Pose {
	r.mu.Lock()
	cam := r.cameras[r.active]
	r.mu.Unlock()
	return Pose{
		Position: cam.Position(),
		Front:    cam.Front(),
		Up:       cam.Up(),
		Yaw:      cam.Yaw(),
		Pitch:    cam.Pitch(),
		Zoom:     cam.Zoom(),
	}
}

func (r *rigImpl) UpdateAll() [16]float32 {
	r.mu.Lock()
	cams := make([]camera.Camera, len(r.cameras))
	copy(cams, r.cameras)
	active := r.active
	r.mu.Unlock()

	// One task per camera; a WaitGroup provides the per-frame barrier since
	// pool.Wait() blocks until workers idle-exit, which is unsuitable for
	// frame-rate workloads.
	var wg sync.WaitGroup
	views := make([][16]float32, len(cams))
	for i, cam := range cams {
		wg.Add(1)
		idx := i
		c := cam
		r.updatePool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				views[idx] = c.ViewMatrix()
				return nil, nil
			},
		})
	}
	wg.Wait()
	return views[active]
}

func (r *rigImpl) ProjectionMatrix(width, height float32) [16]float32 {
	return r.Active().ProjectionMatrix(width, height)
}
