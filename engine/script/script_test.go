package script

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/cine-go/common"
	"github.com/Carmen-Shannon/cine-go/engine/camera"
	"github.com/Carmen-Shannon/cine-go/engine/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flythrough = `
name: flythrough
cues:
  - camera: 0
    kind: translate
    target: [5, 5, 5]
    duration: 8
  - camera: 0
    kind: look_at
    target: [0, 10, -10]
    duration: 5
  - camera: 1
    kind: bezier
    points: [[0, 0, 0], [2, 4, 0], [6, 4, -2], [8, 0, -4]]
    duration: 5
  - camera: 1
    kind: rotate_point
    pivot: [0, 10, 10]
    angle: 180
    duration: 8
`

func TestParseCueSheet(t *testing.T) {
	sheet, err := Parse([]byte(flythrough))
	require.NoError(t, err)

	assert.Equal(t, "flythrough", sheet.Name)
	require.Len(t, sheet.Cues, 4)
	assert.Equal(t, KindTranslate, sheet.Cues[0].Kind)
	assert.Equal(t, []float32{5, 5, 5}, sheet.Cues[0].Target)
	assert.Equal(t, 1, sheet.Cues[2].Camera)
	assert.Equal(t, float32(180), sheet.Cues[3].Angle)
}

func TestParseRejectsInvalidCues(t *testing.T) {
	cases := map[string]string{
		"unknown_kind": `
cues:
  - kind: teleport
    duration: 1
`,
		"missing_kind": `
cues:
  - duration: 1
`,
		"bad_target": `
cues:
  - kind: translate
    target: [1, 2]
    duration: 1
`,
		"wrong_point_count": `
cues:
  - kind: bspline
    points: [[0, 0, 0], [1, 1, 1]]
    duration: 1
`,
		"negative_duration": `
cues:
  - kind: translate
    target: [1, 2, 3]
    duration: -4
`,
		"negative_camera": `
cues:
  - camera: -1
    kind: translate
    target: [1, 2, 3]
    duration: 1
`,
		"malformed_yaml": `cues: [`,
	}
	for name, src := range cases {
		_, err := Parse([]byte(src))
		assert.Error(t, err, name)
	}
}

func TestApplyEnqueuesOntoRig(t *testing.T) {
	now := 0.0
	clock := func() float64 { return now }
	camA := camera.NewCamera(camera.WithClock(clock))
	camB := camera.NewCamera(camera.WithClock(clock))
	r := rig.NewRig(rig.WithCamera(camA), rig.WithCamera(camB), rig.WithWorkers(1))

	sheet, err := Parse([]byte(flythrough))
	require.NoError(t, err)
	require.NoError(t, sheet.Apply(r))

	assert.Equal(t, 2, camA.Pending())
	assert.Equal(t, 2, camB.Pending())

	r.UpdateAll()
	now = 4
	r.UpdateAll()
	assert.True(t, camA.Position().ApproxEqual(common.V3(2.5, 2.5, 2.5), 1e-5),
		"translate cue progressing, got %v", camA.Position())
}

func TestApplyRejectsMissingCamera(t *testing.T) {
	r := rig.NewRig(rig.WithWorkers(1)) // single camera at index 0
	sheet := &CueSheet{Cues: []Cue{{
		Camera:   3,
		Kind:     KindTranslate,
		Target:   []float32{1, 2, 3},
		Duration: 1,
	}}}

	err := sheet.Apply(r)
	assert.ErrorContains(t, err, "out of range")
}

func TestApplyValidatesHandBuiltCues(t *testing.T) {
	r := rig.NewRig(rig.WithWorkers(1))
	sheet := &CueSheet{Cues: []Cue{{Kind: KindBezier, Duration: 1}}}

	err := sheet.Apply(r)
	assert.ErrorContains(t, err, "control points")
}

func TestLoadReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flythrough.yaml")
	require.NoError(t, os.WriteFile(path, []byte(flythrough), 0o644))

	sheet, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, sheet.Cues, 4)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestWatcherReportsCueSheetChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(flythrough), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for cue sheet write")
	}
}

func TestWatcherCloseWithBacklog(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)

	// More distinct sheets than the Events buffer holds, never drained, so
	// the delivery goroutine ends up blocked mid-send when Close arrives.
	for i := 0; i < 20; i++ {
		name := filepath.Join(dir, fmt.Sprintf("scene_%02d.yaml", i))
		require.NoError(t, os.WriteFile(name, []byte(flythrough), 0o644))
	}
	time.Sleep(500 * time.Millisecond)

	require.NoError(t, w.Close())

	done := make(chan struct{})
	go func() {
		for range w.Events {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Events not closed after Close")
	}
}

func TestPruneDebounce(t *testing.T) {
	now := time.Now()
	last := map[string]time.Time{
		"stale.yaml": now.Add(-2 * debounce),
		"fresh.yaml": now.Add(-debounce / 2),
	}

	pruneDebounce(last, now)

	assert.NotContains(t, last, "stale.yaml")
	assert.Contains(t, last, "fresh.yaml")
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event for %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}
