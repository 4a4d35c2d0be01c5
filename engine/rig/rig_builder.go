package rig

import "github.com/Carmen-Shannon/cine-go/engine/camera"

type RigBuilderOption func(*rigImpl)

// WithCamera adds a pre-built camera to the rig. The first camera added
// becomes the active one.
//
// Parameters:
//   - cam: the camera to add
//
// Returns:
//   - RigBuilderOption: a function that adds the camera
func WithCamera(cam camera.Camera) RigBuilderOption {
	return func(r *rigImpl) {
		r.cameras = append(r.cameras, cam)
	}
}

// WithSpawnOptions sets the camera options used for every camera the rig
// creates itself, including the implicit first camera when none is supplied.
//
// Parameters:
//   - options: camera builder options applied to spawned cameras
//
// Returns:
//   - RigBuilderOption: a function that sets the spawn options
func WithSpawnOptions(options ...camera.CameraBuilderOption) RigBuilderOption {
	return func(r *rigImpl) {
		r.spawnOptions = options
	}
}

// WithWorkers sets the number of pooled workers used by UpdateAll. Defaults
// to the CPU count minus one.
//
// Parameters:
//   - n: worker count (values below 1 are ignored)
//
// Returns:
//   - RigBuilderOption: a function that sets the worker count
func WithWorkers(n int) RigBuilderOption {
	return func(r *rigImpl) {
		if n >= 1 {
			r.workers = n
		}
	}
}
