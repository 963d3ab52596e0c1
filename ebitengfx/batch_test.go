package ebitengfx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortFarToNear(t *testing.T) {

	tris := []triangle{
		{depth: 1, vertices: [3]ebiten.Vertex{{DstX: 1}}},
		{depth: 5, vertices: [3]ebiten.Vertex{{DstX: 2}}},
		{depth: 3, vertices: [3]ebiten.Vertex{{DstX: 3}}},
		{depth: 5, vertices: [3]ebiten.Vertex{{DstX: 4}}},
	}

	sortFarToNear(tris)

	order := []float32{}
	for _, tri := range tris {
		order = append(order, tri.vertices[0].DstX)
	}
	assert.Equal(t, []float32{2, 4, 3, 1}, order, "equal depths keep submission order")

}

type recordedBatch struct {
	key      drawKey
	vertices int
	indices  []uint16
}

func flushAll(tris []triangle) []recordedBatch {
	batches := []recordedBatch{}
	b := &batcher{}
	b.flush(tris, func(key drawKey, vertices []ebiten.Vertex, indices []uint16) {
		batches = append(batches, recordedBatch{key, len(vertices), append([]uint16(nil), indices...)})
	})
	return batches
}

func TestBatcherMergesRunsWithTheSameKey(t *testing.T) {

	a := drawKey{shader: &ebiten.Shader{}}
	b := drawKey{shader: &ebiten.Shader{}}

	batches := flushAll([]triangle{{key: a}, {key: a}, {key: b}, {key: b}, {key: a}})

	require.Len(t, batches, 3)
	assert.Equal(t, 6, batches[0].vertices)
	assert.Equal(t, []uint16{0, 1, 2, 3, 4, 5}, batches[0].indices)
	assert.Same(t, b.shader, batches[1].key.shader)
	assert.Equal(t, 3, batches[2].vertices)

	assert.Empty(t, flushAll(nil))

}

func TestBatcherSplitsAtIndexLimit(t *testing.T) {

	key := drawKey{shader: &ebiten.Shader{}}
	tris := make([]triangle, maxBatchVertices/3+1)
	for i := range tris {
		tris[i].key = key
	}

	batches := flushAll(tris)

	require.Len(t, batches, 2)
	assert.Equal(t, maxBatchVertices, batches[0].vertices)
	assert.Equal(t, uint16(maxBatchVertices-1), batches[0].indices[len(batches[0].indices)-1])
	assert.Equal(t, 3, batches[1].vertices)
	assert.Equal(t, []uint16{0, 1, 2}, batches[1].indices)

}

func TestToScreen(t *testing.T) {

	center := toScreen(VertexOutput{Clip: mgl32.Vec4{0, 0, 0, 1}, TexCoords: mgl32.Vec2{0, 0}}, 800, 600, 64, 32)
	assert.Equal(t, float32(400), center.DstX)
	assert.Equal(t, float32(300), center.DstY)
	assert.Equal(t, float32(0), center.SrcX)
	assert.Equal(t, float32(32), center.SrcY, "v = 0 is the bottom of the image")

	// Clip coordinates are divided by w; +Y is up on screen.
	corner := toScreen(VertexOutput{Clip: mgl32.Vec4{2, 2, 0, 2}, TexCoords: mgl32.Vec2{1, 1}, Color: mgl32.Vec4{0.5, 0.25, 1, 1}}, 800, 600, 64, 32)
	assert.Equal(t, float32(800), corner.DstX)
	assert.Equal(t, float32(0), corner.DstY)
	assert.Equal(t, float32(64), corner.SrcX)
	assert.Equal(t, float32(0), corner.SrcY)
	assert.Equal(t, float32(0.25), corner.ColorG)

}
