package renderer

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestBoxMeshShape(t *testing.T) {
	verts, indices := boxMesh()

	assert.Len(t, verts, 24, "four vertices per face")
	assert.Len(t, indices, 36, "two triangles per face")
	for _, idx := range indices {
		assert.Less(t, int(idx), len(verts))
	}
	for _, v := range verts {
		n := v.Normal
		lenSq := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
		assert.InDelta(t, 1, float64(lenSq), 1e-6, "face normals are unit length")
	}
}

func TestBoxMeshCoversUnitCube(t *testing.T) {
	verts, _ := boxMesh()
	for _, v := range verts {
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, 0.5, float64(abs(v.Pos[axis])), 1e-6)
		}
	}
}

// uniform buffers must be 16-byte aligned to satisfy WGSL layout rules
func TestUniformStructLayout(t *testing.T) {
	assert.Zero(t, unsafe.Sizeof(cameraUniform{})%16)
	assert.Zero(t, unsafe.Sizeof(propUniform{})%16)
	assert.Equal(t, uintptr(24), unsafe.Sizeof(boxVertex{}), "vertex stride must match the pipeline layout")
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
