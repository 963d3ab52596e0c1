package lightscene

// VertexAttribute describes one attribute in an interleaved vertex. Size and Offset are counted in floats.
type VertexAttribute struct {
	Name   string
	Size   int
	Offset int
}

// VertexLayout describes an interleaved vertex format. Stride is counted in floats.
type VertexLayout struct {
	Attributes []VertexAttribute
	Stride     int
}

// Attribute returns the attribute with the given name, if the layout has it.
func (layout VertexLayout) Attribute(name string) (VertexAttribute, bool) {
	for _, attr := range layout.Attributes {
		if attr.Name == name {
			return attr, true
		}
	}
	return VertexAttribute{}, false
}

// Vertex attribute names shared by every program.
const (
	AttribPosition  = "aPosition"
	AttribNormal    = "aNormal"
	AttribTexCoords = "aTexCoords"
)

var (
	// LayoutPosNormTex is position (3), normal (3), texture coordinates (2).
	LayoutPosNormTex = VertexLayout{
		Attributes: []VertexAttribute{
			{Name: AttribPosition, Size: 3, Offset: 0},
			{Name: AttribNormal, Size: 3, Offset: 3},
			{Name: AttribTexCoords, Size: 2, Offset: 6},
		},
		Stride: 8,
	}

	// LayoutPosTex is position (3), texture coordinates (2).
	LayoutPosTex = VertexLayout{
		Attributes: []VertexAttribute{
			{Name: AttribPosition, Size: 3, Offset: 0},
			{Name: AttribTexCoords, Size: 2, Offset: 3},
		},
		Stride: 5,
	}
)

// CubeVertices is a unit cube centered on the origin: 6 faces of 2 triangles each, in the LayoutPosNormTex format.
var CubeVertices = []float32{
	-0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 0.0,
	0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 0.0,
	0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 1.0,
	0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 1.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 0.0, -1.0, 0.0, 0.0,
	-0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 0.0,
	0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 0.0,
	0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 1.0,
	0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 1.0, 1.0,
	-0.5, 0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 0.0,
	-0.5, 0.5, 0.5, -1.0, 0.0, 0.0, 1.0, 0.0,
	-0.5, 0.5, -0.5, -1.0, 0.0, 0.0, 1.0, 1.0,
	-0.5, -0.5, -0.5, -1.0, 0.0, 0.0, 0.0, 1.0,
	-0.5, -0.5, -0.5, -1.0, 0.0, 0.0, 0.0, 1.0,
	-0.5, -0.5, 0.5, -1.0, 0.0, 0.0, 0.0, 0.0,
	-0.5, 0.5, 0.5, -1.0, 0.0, 0.0, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0, 0.0, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 0.0, 0.0, 1.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 0.0, 0.0, 0.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 0.0, 0.0, 0.0, 1.0,
	0.5, -0.5, 0.5, 1.0, 0.0, 0.0, 0.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0, 0.0, 1.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 1.0, 1.0,
	0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 1.0, 0.0,
	0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 1.0, 0.0,
	-0.5, -0.5, 0.5, 0.0, -1.0, 0.0, 0.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, -1.0, 0.0, 0.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 1.0,
	0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 1.0, 1.0,
	0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 1.0, 0.0,
	0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 1.0, 0.0,
	-0.5, 0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 1.0,
}

// Skybox textures are laid out as a horizontal cross, 4 cells wide and 3 tall. Coordinates are pulled
// slightly into each cell so that filtering doesn't bleed in the neighboring face.
const texCoordsFix = 0.001

// SkyboxVertices is a unit cube in the LayoutPosTex format, textured from a cross-layout skybox image.
var SkyboxVertices = []float32{
	// Front face
	-0.5, -0.5, -0.5, 0.25 + texCoordsFix, 1.0/3 + texCoordsFix,
	0.5, -0.5, -0.5, 0.5 - texCoordsFix, 1.0/3 + texCoordsFix,
	0.5, 0.5, -0.5, 0.5 - texCoordsFix, 2.0/3 - texCoordsFix,
	0.5, 0.5, -0.5, 0.5 - texCoordsFix, 2.0/3 - texCoordsFix,
	-0.5, 0.5, -0.5, 0.25 + texCoordsFix, 2.0/3 - texCoordsFix,
	-0.5, -0.5, -0.5, 0.25 + texCoordsFix, 1.0/3 + texCoordsFix,
	// Back face
	-0.5, -0.5, 0.5, 1.0 - texCoordsFix, 1.0/3 + texCoordsFix,
	0.5, -0.5, 0.5, 0.75 + texCoordsFix, 1.0/3 + texCoordsFix,
	0.5, 0.5, 0.5, 0.75 + texCoordsFix, 2.0/3 - texCoordsFix,
	0.5, 0.5, 0.5, 0.75 + texCoordsFix, 2.0/3 - texCoordsFix,
	-0.5, 0.5, 0.5, 1.0 - texCoordsFix, 2.0/3 - texCoordsFix,
	-0.5, -0.5, 0.5, 1.0 - texCoordsFix, 1.0/3 + texCoordsFix,
	// Left face
	-0.5, 0.5, 0.5, 0.0 + texCoordsFix, 2.0/3 - texCoordsFix,
	-0.5, 0.5, -0.5, 0.25 - texCoordsFix, 2.0/3 - texCoordsFix,
	-0.5, -0.5, -0.5, 0.25 - texCoordsFix, 1.0/3 + texCoordsFix,
	-0.5, -0.5, -0.5, 0.25 - texCoordsFix, 1.0/3 + texCoordsFix,
	-0.5, -0.5, 0.5, 0.0 + texCoordsFix, 1.0/3 + texCoordsFix,
	-0.5, 0.5, 0.5, 0.0 + texCoordsFix, 2.0/3 - texCoordsFix,
	// Right face
	0.5, 0.5, 0.5, 0.75 - texCoordsFix, 2.0/3 - texCoordsFix,
	0.5, 0.5, -0.5, 0.5 + texCoordsFix, 2.0/3 - texCoordsFix,
	0.5, -0.5, -0.5, 0.5 + texCoordsFix, 1.0/3 + texCoordsFix,
	0.5, -0.5, -0.5, 0.5 + texCoordsFix, 1.0/3 + texCoordsFix,
	0.5, -0.5, 0.5, 0.75 - texCoordsFix, 1.0/3 + texCoordsFix,
	0.5, 0.5, 0.5, 0.75 - texCoordsFix, 2.0/3 - texCoordsFix,
	// Bottom face
	-0.5, -0.5, -0.5, 0.25 + texCoordsFix, 1.0/3 - texCoordsFix,
	0.5, -0.5, -0.5, 0.5 - texCoordsFix, 1.0/3 - texCoordsFix,
	0.5, -0.5, 0.5, 0.5 - texCoordsFix, 0.0 + texCoordsFix,
	0.5, -0.5, 0.5, 0.5 - texCoordsFix, 0.0 + texCoordsFix,
	-0.5, -0.5, 0.5, 0.25 + texCoordsFix, 0.0 + texCoordsFix,
	-0.5, -0.5, -0.5, 0.25 + texCoordsFix, 1.0/3 - texCoordsFix,
	// Top face
	-0.5, 0.5, -0.5, 0.25 + texCoordsFix, 2.0/3 + texCoordsFix,
	0.5, 0.5, -0.5, 0.5 - texCoordsFix, 2.0/3 + texCoordsFix,
	0.5, 0.5, 0.5, 0.5 - texCoordsFix, 1.0 - texCoordsFix,
	0.5, 0.5, 0.5, 0.5 - texCoordsFix, 1.0 - texCoordsFix,
	-0.5, 0.5, 0.5, 0.25 + texCoordsFix, 1.0 - texCoordsFix,
	-0.5, 0.5, -0.5, 0.25 + texCoordsFix, 2.0/3 + texCoordsFix,
}
