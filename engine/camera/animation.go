package camera

import "github.com/Carmen-Shannon/cine-go/common"

// processLanes advances every lane once at the given clock value, in the
// fixed priority order defined by the animationKind constants. Each lane
// dequeues its next command when the current one has ended, computes the
// clamped progress, and writes the interpolated pose. Caller must hold the
// mutex.
func (c *cameraImpl) processLanes(now float64) {
	for kind := animationKind(0); kind < laneCount; kind++ {
		l := &c.lanes[kind]
		cmd := l.current
		if cmd == nil || cmd.ended {
			cmd = l.pop()
			if cmd == nil {
				continue
			}
			l.current = cmd
			c.activate(kind, cmd, now)
			if cmd.ended {
				continue
			}
		}
		pct := cmd.percentage(now)
		if pct >= 1 {
			cmd.ended = true
		}
		c.step(kind, cmd, pct)
	}
}

// activate stamps a freshly dequeued command with absolute start/end times
// and captures the pose snapshots its kind interpolates from. A look-at
// whose target coincides with the current position ends here, before any
// motion. Caller must hold the mutex.
func (c *cameraImpl) activate(kind animationKind, cmd *command, now float64) {
	cmd.start = now
	cmd.end = now + cmd.duration
	cmd.fromPos = c.position
	cmd.fromFront = c.front
	cmd.fromUp = c.up

	switch kind {
	case kindLookAt:
		dir := cmd.target.Sub(c.position)
		if dir.Dot(dir) < degenerateSq {
			cmd.ended = true
			return
		}
		cmd.aimFront = dir.Normalize()
	case kindRotatePoint:
		newFront := cmd.target.Sub(c.position)
		if newFront.Dot(newFront) < degenerateSq {
			newFront = c.front
		} else {
			newFront = newFront.Normalize()
		}
		planeUp := c.front.Cross(newFront)
		if planeUp.Dot(planeUp) < degenerateSq {
			// already facing the pivot (or facing directly away): orbit in
			// the horizontal plane
			planeUp = c.worldUp
		}
		planeUp = planeUp.Normalize()
		if planeUp.Y < 0 {
			planeUp = planeUp.Scale(-1)
		}
		cmd.planeUp = planeUp
	}
}

// step writes the pose for the command's kind at the given clamped progress.
// Completed commands (pct == 1) snap to their exact final value instead of
// evaluating the interpolant, so there is never float drift at the endpoint.
// Caller must hold the mutex.
func (c *cameraImpl) step(kind animationKind, cmd *command, pct float32) {
	switch kind {
	case kindBSpline:
		if pct >= 1 {
			c.position = cmd.points[3]
		} else {
			c.position = catmullRomPath(cmd.points, pct)
		}
	case kindBezier:
		if pct >= 1 {
			c.position = cmd.points[3]
		} else {
			c.position = bezierPoint(cmd.points, pct)
		}
	case kindTranslate:
		if pct >= 1 {
			c.position = cmd.target
		} else {
			c.position = cmd.fromPos.Lerp(cmd.target, pct)
		}
	case kindRotatePoint:
		c.stepRotatePoint(cmd, pct)
	case kindRotateAxis:
		c.stepRotateAxis(cmd, pct)
	case kindLookAt:
		if pct >= 1 {
			c.front = cmd.aimFront
		} else {
			blended := cmd.fromFront.Lerp(cmd.aimFront, pct)
			if blended.Dot(blended) < degenerateSq {
				// antiparallel directions cancel at the midpoint; swing
				// through a perpendicular so front never collapses to zero
				blended = perpendicular(cmd.fromFront)
			}
			c.front = blended.Normalize()
		}
		c.orthonormalize()
		c.syncAngles()
	}
}

// perpendicular returns a vector orthogonal to v, crossing against whichever
// world axis v is least aligned with.
func perpendicular(v common.Vec3) common.Vec3 {
	axis := common.Vec3{Y: 1}
	if v.Y > 0.99 || v.Y < -0.99 {
		axis = common.Vec3{X: 1}
	}
	return v.Cross(axis)
}

// stepRotatePoint orbits the dequeue-time position about the pivot by the
// swept fraction of the total angle, rotating in the plane chosen at
// activation, and keeps the camera aimed at the pivot.
func (c *cameraImpl) stepRotatePoint(cmd *command, pct float32) {
	var rot [16]float32
	common.AxisAngle(rot[:], cmd.planeUp, common.DegToRad(cmd.angle)*pct)
	arm := cmd.fromPos.Sub(cmd.target)
	c.position = cmd.target.Add(common.TransformPoint(rot[:], arm))

	aim := cmd.target.Sub(c.position)
	if aim.Dot(aim) >= degenerateSq {
		c.front = aim.Normalize()
	}
	c.orthonormalize()
	c.syncAngles()
}

// stepRotateAxis spins the camera in place: the orientation captured at
// dequeue is rotated by the swept fraction of the total angle about the
// fixed axis while the position stays at its dequeue-time value. The rotated
// basis is derived as rotated-point-minus-rotated-origin so the axis does
// not need to pass through the camera.
func (c *cameraImpl) stepRotateAxis(cmd *command, pct float32) {
	var rot [16]float32
	common.AxisAngle(rot[:], cmd.axis, common.DegToRad(cmd.angle)*pct)

	origin := common.TransformPoint(rot[:], cmd.fromPos)
	frontPt := common.TransformPoint(rot[:], cmd.fromPos.Add(cmd.fromFront))
	upPt := common.TransformPoint(rot[:], cmd.fromPos.Add(cmd.fromUp))

	c.front = frontPt.Sub(origin).Normalize()
	c.up = upPt.Sub(origin).Normalize()
	c.right = c.front.Cross(c.up).Normalize()
	c.position = cmd.fromPos
	c.syncAngles()
}

// bezierPoint evaluates the cubic Bézier curve through the four control
// points at t using the Bernstein basis.
func bezierPoint(p [4]common.Vec3, t float32) common.Vec3 {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return p[0].Scale(b0).
		Add(p[1].Scale(b1)).
		Add(p[2].Scale(b2)).
		Add(p[3].Scale(b3))
}

// catmullRomPath evaluates a clamped Catmull-Rom spline through the four
// control points at t in [0,1). The range splits into three equal
// sub-intervals whose control tuples repeat the first and last point, so the
// path starts exactly at p[0], ends exactly at p[3], and stays continuous at
// the internal boundaries (the segments share knots).
func catmullRomPath(p [4]common.Vec3, t float32) common.Vec3 {
	switch {
	case t < 1.0/3.0:
		return catmullRom(p[0], p[0], p[1], p[2], t*3)
	case t < 2.0/3.0:
		return catmullRom(p[0], p[1], p[2], p[3], t*3-1)
	default:
		return catmullRom(p[1], p[2], p[3], p[3], t*3-2)
	}
}

// catmullRom evaluates one Catmull-Rom segment from p1 (t=0) to p2 (t=1)
// with p0/p3 shaping the tangents.
func catmullRom(p0, p1, p2, p3 common.Vec3, t float32) common.Vec3 {
	t2 := t * t
	t3 := t2 * t
	return p1.Scale(2).
		Add(p2.Sub(p0).Scale(t)).
		Add(p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3).Scale(t2)).
		Add(p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3).Scale(t3)).
		Scale(0.5)
}
