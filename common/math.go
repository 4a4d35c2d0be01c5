package common

import "github.com/chewxy/math32"

// DegToRad converts an angle in degrees to radians.
func DegToRad(deg float32) float32 {
	return deg * (math32.Pi / 180)
}

// RadToDeg converts an angle in radians to degrees.
func RadToDeg(rad float32) float32 {
	return rad * (180 / math32.Pi)
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space convention with depth in [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
// Degenerate inputs (eye == center, or up parallel to the view direction)
// fall back to unit axes instead of producing NaNs.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eye, center, up Vec3) {
	z := eye.Sub(center)
	if z.Dot(z) == 0 {
		z = Vec3{Z: 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Dot(x) == 0 {
		x = Vec3{X: 1}
	}
	x = x.Normalize()

	y := z.Cross(x)

	out[0], out[4], out[8], out[12] = x.X, x.Y, x.Z, -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y.X, y.Y, y.Z, -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z.X, z.Y, z.Z, -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// AxisAngle builds a rotation matrix for a rotation of angle radians about the
// given axis, stored column-major. The axis is normalized internally; a
// degenerate axis yields the identity matrix.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - axis: rotation axis (need not be unit length)
//   - angle: rotation angle in radians
func AxisAngle(out []float32, axis Vec3, angle float32) {
	if axis.Dot(axis) < 1e-12 {
		Identity(out)
		return
	}
	a := axis.Normalize()
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	t := 1 - c

	out[0] = t*a.X*a.X + c
	out[1] = t*a.X*a.Y + s*a.Z
	out[2] = t*a.X*a.Z - s*a.Y
	out[3] = 0

	out[4] = t*a.X*a.Y - s*a.Z
	out[5] = t*a.Y*a.Y + c
	out[6] = t*a.Y*a.Z + s*a.X
	out[7] = 0

	out[8] = t*a.X*a.Z + s*a.Y
	out[9] = t*a.Y*a.Z - s*a.X
	out[10] = t*a.Z*a.Z + c
	out[11] = 0

	out[12] = 0
	out[13] = 0
	out[14] = 0
	out[15] = 1
}

// TransformPoint applies a 4x4 column-major matrix to a point (w = 1).
//
// Parameters:
//   - m: the transform matrix (16 elements, column-major)
//   - v: the point to transform
//
// Returns:
//   - Vec3: the transformed point
func TransformPoint(m []float32, v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

// ModelMatrix constructs a 4x4 model matrix from position, a rotation of
// rotY radians about the Y axis, and a uniform scale. Column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - pos: translation in world space
//   - rotY: rotation angle in radians around the Y axis
//   - scale: uniform scale factor
func ModelMatrix(out []float32, pos Vec3, rotY, scale float32) {
	c := math32.Cos(rotY)
	s := math32.Sin(rotY)

	out[0] = c * scale
	out[1] = 0
	out[2] = -s * scale
	out[3] = 0

	out[4] = 0
	out[5] = scale
	out[6] = 0
	out[7] = 0

	out[8] = s * scale
	out[9] = 0
	out[10] = c * scale
	out[11] = 0

	out[12] = pos.X
	out[13] = pos.Y
	out[14] = pos.Z
	out[15] = 1
}
