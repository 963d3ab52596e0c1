package lightscene

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleGLTF returns a minimal glTF document holding a single indexed triangle, with its buffer embedded as a data
// URI.
func triangleGLTF(t testing.TB) []byte {
	t.Helper()

	positions := []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	texCoords := []float32{
		0, 0,
		1, 0,
		0, 1,
	}
	indices := []uint16{0, 1, 2}

	buf := &bytes.Buffer{}
	require.NoError(t, binary.Write(buf, binary.LittleEndian, positions))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, texCoords))
	require.NoError(t, binary.Write(buf, binary.LittleEndian, indices))
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}

	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	return []byte(fmt.Sprintf(`{
	"asset": {"version": "2.0"},
	"buffers": [{"byteLength": %d, "uri": %q}],
	"bufferViews": [
		{"buffer": 0, "byteOffset": 0, "byteLength": 36},
		{"buffer": 0, "byteOffset": 36, "byteLength": 24},
		{"buffer": 0, "byteOffset": 60, "byteLength": 6}
	],
	"accessors": [
		{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
		{"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC2"},
		{"bufferView": 2, "componentType": 5123, "count": 3, "type": "SCALAR"}
	],
	"meshes": [{"name": "Triangle", "primitives": [{"attributes": {"POSITION": 0, "TEXCOORD_0": 1}, "indices": 2}]}]
}`, buf.Len(), uri))
}

func TestLoadGLTFVerticesData(t *testing.T) {

	vertices, err := LoadGLTFVerticesData(triangleGLTF(t))
	require.NoError(t, err)
	require.Len(t, vertices, 3*LayoutPosNormTex.Stride)

	// Normals default to +Y; v is flipped.
	assert.Equal(t, []float32{
		0, 0, 0, 0, 1, 0, 0, 1,
		1, 0, 0, 0, 1, 0, 1, 1,
		0, 1, 0, 0, 1, 0, 0, 0,
	}, vertices)

}

func TestLoadGLTFVerticesFromFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "triangle.gltf")
	require.NoError(t, os.WriteFile(path, triangleGLTF(t), 0o644))

	vertices, err := LoadGLTFVertices(path)
	require.NoError(t, err)
	assert.Len(t, vertices, 24)

	_, err = LoadGLTFVertices(filepath.Join(t.TempDir(), "missing.gltf"))
	assert.ErrorIs(t, err, os.ErrNotExist)

}

func TestLoadGLTFWithoutMeshes(t *testing.T) {
	_, err := LoadGLTFVerticesData([]byte(`{"asset": {"version": "2.0"}}`))
	assert.ErrorIs(t, err, ErrNoMesh)
}

func TestInterleaveTriangles(t *testing.T) {

	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	normals := [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	texCoords := [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	t.Run("indexed quad", func(t *testing.T) {
		out, err := interleaveTriangles(positions, normals, texCoords, []uint32{0, 1, 2, 0, 2, 3})
		require.NoError(t, err)
		require.Len(t, out, 6*8)
		// Fourth vertex is index 0 again.
		assert.Equal(t, []float32{0, 0, 0, 0, 0, 1, 0, 1}, out[3*8:4*8])
		// Last vertex is index 3, with its v flipped.
		assert.Equal(t, []float32{0, 1, 0, 0, 0, 1, 0, 0}, out[5*8:])
	})

	t.Run("unindexed", func(t *testing.T) {
		out, err := interleaveTriangles(positions[:3], nil, nil, nil)
		require.NoError(t, err)
		require.Len(t, out, 3*8)
		assert.Equal(t, []float32{1, 1, 0, 0, 1, 0, 0, 0}, out[2*8:])
	})

	t.Run("partial triangle", func(t *testing.T) {
		_, err := interleaveTriangles(positions, nil, nil, []uint32{0, 1})
		assert.Error(t, err)
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := interleaveTriangles(positions, nil, nil, []uint32{0, 1, 9})
		assert.Error(t, err)
	})

}

func BenchmarkLoadGLTFVerticesData(b *testing.B) {
	data := triangleGLTF(b)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadGLTFVerticesData(data); err != nil {
			b.Fatal(err)
		}
	}
}
