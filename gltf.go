package lightscene

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoMesh is returned when a glTF document has no triangle geometry to load.
var ErrNoMesh = errors.New("gltf document has no triangle mesh")

// LoadGLTFVertices loads the first mesh of the .gltf or .glb file at path as de-indexed triangle vertices in the
// LayoutPosNormTex format, ready for NewMesh.
func LoadGLTFVertices(path string) ([]float32, error) {

	fileData, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	vertices, err := LoadGLTFVerticesData(fileData)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return vertices, nil

}

// LoadGLTFVerticesData loads the first mesh of .gltf or .glb data as de-indexed triangle vertices in the
// LayoutPosNormTex format. Every triangle primitive of the mesh is included. Missing normals default to +Y and missing
// texture coordinates to 0. Texture coordinates are flipped vertically, as glTF puts the origin at the top-left.
func LoadGLTFVerticesData(data []byte) ([]float32, error) {

	decoder := gltf.NewDecoder(bytes.NewReader(data))

	doc := gltf.NewDocument()

	if err := decoder.Decode(doc); err != nil {
		return nil, err
	}

	if len(doc.Meshes) == 0 {
		return nil, ErrNoMesh
	}

	vertices := []float32{}

	for _, prim := range doc.Meshes[0].Primitives {

		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}

		posAccessor, posExists := prim.Attributes[gltf.POSITION]
		if !posExists {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
		if err != nil {
			return nil, err
		}

		var normals [][3]float32
		if normalAccessor, normalExists := prim.Attributes[gltf.NORMAL]; normalExists {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[normalAccessor], nil)
			if err != nil {
				return nil, err
			}
		}

		var texCoords [][2]float32
		if texCoordAccessor, texCoordExists := prim.Attributes[gltf.TEXCOORD_0]; texCoordExists {
			texCoords, err = modeler.ReadTextureCoord(doc, doc.Accessors[texCoordAccessor], nil)
			if err != nil {
				return nil, err
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, err
			}
		}

		primVerts, err := interleaveTriangles(positions, normals, texCoords, indices)
		if err != nil {
			return nil, err
		}

		vertices = append(vertices, primVerts...)

	}

	if len(vertices) == 0 {
		return nil, ErrNoMesh
	}

	return vertices, nil

}

// interleaveTriangles expands indexed attributes into a LayoutPosNormTex triangle list. With no indices, the
// positions are taken to already be a triangle list.
func interleaveTriangles(positions, normals [][3]float32, texCoords [][2]float32, indices []uint32) ([]float32, error) {

	if indices == nil {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%d indices don't form whole triangles", len(indices))
	}

	out := make([]float32, 0, len(indices)*LayoutPosNormTex.Stride)

	for _, index := range indices {

		if int(index) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range of %d positions", index, len(positions))
		}

		pos := positions[index]
		normal := [3]float32{0, 1, 0}
		if int(index) < len(normals) {
			normal = normals[index]
		}
		var uv [2]float32
		if int(index) < len(texCoords) {
			uv = texCoords[index]
			uv[1] = 1 - uv[1]
		}

		out = append(out,
			pos[0], pos[1], pos[2],
			normal[0], normal[1], normal[2],
			uv[0], uv[1],
		)

	}

	return out, nil

}
