package ebitengfx

import (
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices is the most vertices a single DrawTrianglesShader call can address with uint16 indices, rounded
// down to whole triangles.
const maxBatchVertices = math.MaxUint16 / 3 * 3

// drawKey is what consecutive triangles must share to be drawn in one call.
type drawKey struct {
	shader *ebiten.Shader
	images [2]*ebiten.Image
}

// triangle is a screen-space triangle waiting to be drawn.
type triangle struct {
	key      drawKey
	vertices [3]ebiten.Vertex
	depth    float32 // Distance from the camera, used to sort far to near
}

// sortFarToNear orders triangles back to front. Triangles at equal depth keep their submission order.
func sortFarToNear(tris []triangle) {
	sort.SliceStable(tris, func(i, j int) bool {
		return tris[i].depth > tris[j].depth
	})
}

// batcher merges runs of triangles sharing a drawKey into as few draw calls as the index limit allows. Its buffers
// are reused across frames.
type batcher struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

// flush hands every batch of tris to draw, in order, and returns the number of batches. The slices passed to draw
// are only valid during the call.
func (b *batcher) flush(tris []triangle, draw func(key drawKey, vertices []ebiten.Vertex, indices []uint16)) int {

	batches := 0

	for start := 0; start < len(tris); {

		key := tris[start].key
		b.vertices = b.vertices[:0]
		b.indices = b.indices[:0]

		end := start
		for end < len(tris) && tris[end].key == key && len(b.vertices)+3 <= maxBatchVertices {
			base := uint16(len(b.vertices))
			b.vertices = append(b.vertices, tris[end].vertices[:]...)
			b.indices = append(b.indices, base, base+1, base+2)
			end++
		}

		draw(key, b.vertices, b.indices)
		batches++
		start = end

	}

	return batches

}
