package camera

import (
	"testing"

	"github.com/Carmen-Shannon/cine-go/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pathPoints = [4]common.Vec3{
	common.V3(0, 0, 0),
	common.V3(2, 4, 0),
	common.V3(6, 4, -2),
	common.V3(8, 0, -4),
}

func TestBezierPointEndpoints(t *testing.T) {
	assert.Equal(t, pathPoints[0], bezierPoint(pathPoints, 0))
	assertVec3Near(t, pathPoints[3], bezierPoint(pathPoints, 1), 1e-5)
}

func TestBezierPointMidpoint(t *testing.T) {
	// B(1/2) = (p0 + 3p1 + 3p2 + p3) / 8
	want := pathPoints[0].
		Add(pathPoints[1].Scale(3)).
		Add(pathPoints[2].Scale(3)).
		Add(pathPoints[3]).
		Scale(1.0 / 8.0)
	assertVec3Near(t, want, bezierPoint(pathPoints, 0.5), 1e-5)
}

func TestCatmullRomPathEndpoints(t *testing.T) {
	assert.Equal(t, pathPoints[0], catmullRomPath(pathPoints, 0))
	assertVec3Near(t, pathPoints[3], catmullRomPath(pathPoints, 0.999999), 1e-3)
}

func TestCatmullRomPathContinuousAtKnots(t *testing.T) {
	const eps = 1e-4
	for _, knot := range []float32{1.0 / 3.0, 2.0 / 3.0} {
		before := catmullRomPath(pathPoints, knot-eps)
		after := catmullRomPath(pathPoints, knot+eps)
		assertVec3Near(t, before, after, 1e-2, "no jump at knot %v", knot)
	}
}

func TestCatmullRomPathInterpolatesInnerPoints(t *testing.T) {
	// the clamped tuples make the sub-interval boundaries land on p1 and p2
	assertVec3Near(t, pathPoints[1], catmullRomPath(pathPoints, 1.0/3.0), 1e-4)
	assertVec3Near(t, pathPoints[2], catmullRomPath(pathPoints, 2.0/3.0), 1e-4)
}

func TestBSplinePathThroughCamera(t *testing.T) {
	clk := &fakeClock{}
	cam := newTestCamera(clk, WithPosition(common.V3(-1, -1, -1)))

	require.NoError(t, cam.BSplinePath(pathPoints[0], pathPoints[1], pathPoints[2], pathPoints[3], 3))
	cam.ViewMatrix()
	assert.Equal(t, pathPoints[0], cam.Position(), "path starts exactly at p0")

	clk.now = 1
	cam.ViewMatrix()
	assertVec3Near(t, pathPoints[1], cam.Position(), 1e-4, "first knot at one third")

	clk.now = 3
	cam.ViewMatrix()
	assert.Equal(t, pathPoints[3], cam.Position(), "exact snap to p3")
	assert.True(t, cam.Idle())
}

func TestBezierPathThroughCamera(t *testing.T) {
	clk := &fakeClock{}
	cam := newTestCamera(clk, WithPosition(common.V3(-1, -1, -1)))

	require.NoError(t, cam.BezierPath(pathPoints[0], pathPoints[1], pathPoints[2], pathPoints[3], 4))
	cam.ViewMatrix()
	assert.Equal(t, pathPoints[0], cam.Position(), "curve starts exactly at p0")

	clk.now = 2
	cam.ViewMatrix()
	inner := cam.Position()
	assert.NotEqual(t, pathPoints[0], inner)
	assert.NotEqual(t, pathPoints[3], inner)

	clk.now = 4
	cam.ViewMatrix()
	assert.Equal(t, pathPoints[3], cam.Position(), "exact snap to p3")
	assert.True(t, cam.Idle())
}
