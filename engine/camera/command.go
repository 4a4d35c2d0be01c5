package camera

import "github.com/Carmen-Shannon/cine-go/common"

// animationKind indexes a lane. The declaration order is the per-frame
// processing priority: path kinds first, look-at last, so a look-at queued
// alongside a path reorients relative to the already-moved position.
type animationKind int

const (
	kindBSpline animationKind = iota
	kindBezier
	kindTranslate
	kindRotatePoint
	kindRotateAxis
	kindLookAt

	laneCount
)

// command is one queued animation. The caller-supplied fields (target, axis,
// angle, points, duration) are set at enqueue time and never change; the
// timing fields and pose snapshots are stamped when the command is dequeued
// and becomes its lane's active command.
type command struct {
	target common.Vec3    // translate/look-at target, or orbit pivot
	axis   common.Vec3    // rotate-about-axis axis
	angle  float32        // total sweep in degrees
	points [4]common.Vec3 // spline/Bézier control points

	duration float64 // seconds, held until dequeue
	start    float64 // clock value at dequeue
	end      float64 // start + duration
	ended    bool

	// pose snapshots captured at dequeue
	fromPos   common.Vec3
	fromFront common.Vec3
	fromUp    common.Vec3
	planeUp   common.Vec3 // orbit axis chosen at dequeue (rotate-about-point)
	aimFront  common.Vec3 // unit direction toward the look-at target
}

// percentage returns the command's clamped progress in [0,1] at the given
// clock value. A non-positive span counts as already complete, which is what
// makes zero-duration commands apply on their first sample.
func (cmd *command) percentage(now float64) float32 {
	span := cmd.end - cmd.start
	if span <= 0 {
		return 1
	}
	pct := (now - cmd.start) / span
	if pct <= 0 {
		return 0
	}
	if pct >= 1 {
		return 1
	}
	return float32(pct)
}

// lane is one animation kind's FIFO queue plus its single active command.
// Commands of the same kind run strictly in submission order; lanes of
// different kinds progress independently against the same pose.
type lane struct {
	queue   []*command
	current *command
}

func (l *lane) push(cmd *command) {
	l.queue = append(l.queue, cmd)
}

// pop removes and returns the queue head, or nil when the queue is empty.
func (l *lane) pop() *command {
	if len(l.queue) == 0 {
		return nil
	}
	cmd := l.queue[0]
	l.queue = l.queue[1:]
	return cmd
}

func (l *lane) idle() bool {
	return (l.current == nil || l.current.ended) && len(l.queue) == 0
}

func (l *lane) pending() int {
	n := len(l.queue)
	if l.current != nil && !l.current.ended {
		n++
	}
	return n
}
