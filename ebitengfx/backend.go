// Package ebitengfx draws lightscene scenes with Ebitengine.
//
// Ebitengine only exposes fragment shaders and has no depth buffer, so a Program here is a CPU-side VertexStage
// paired with a Kage fragment shader, and depth testing is emulated with the painter's algorithm: triangles drawn
// while depth testing is on are queued and drawn far to near when the frame ends (or when depth testing is switched
// off), while triangles drawn with depth testing off are drawn straight away in submission order.
package ebitengfx

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/solarlune/lightscene"
)

// Stats describes the work done in a frame.
type Stats struct {
	DrawCalls int // VertexArray.Draw calls
	Triangles int // Triangles submitted after clipping
	Batches   int // DrawTrianglesShader calls
}

// Backend implements lightscene.Backend on top of Ebitengine. It draws onto the target given to BeginFrame.
type Backend struct {
	logger *slog.Logger

	target    *ebiten.Image
	current   *Program
	bound     [2]*Texture
	depthTest bool

	queue     []triangle
	immediate []triangle
	clipped   [][3]VertexOutput
	batcher   batcher

	frame Stats
	stats Stats

	white   *ebiten.Image
	blanks  map[image.Point]*ebiten.Image
	resized map[resizeKey]*ebiten.Image

	programs []*Program
	textures []*Texture
}

type resizeKey struct {
	src  *ebiten.Image
	size image.Point
}

// New returns a new Backend with depth testing enabled. A nil logger means slog.Default().
func New(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		logger:    logger,
		depthTest: true,
		blanks:    map[image.Point]*ebiten.Image{},
		resized:   map[resizeKey]*ebiten.Image{},
	}
}

// NewProgram compiles a Kage fragment shader and pairs it with stage.
func (b *Backend) NewProgram(stage VertexStage, fragmentShader []byte) (*Program, error) {
	if stage == nil {
		return nil, fmt.Errorf("new program: %w", lightscene.ErrNilShader)
	}
	shader, err := ebiten.NewShader(fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("compiling %s fragment shader: %w", stage.Name(), err)
	}
	p := newProgram(b, stage, shader)
	b.programs = append(b.programs, p)
	b.logger.Debug("compiled program", "name", stage.Name(), "attributes", stage.Attributes(), "samplers", stage.Samplers())
	return p, nil
}

// LoadProgram reads a Kage fragment shader from the file at path and pairs it with stage.
func (b *Backend) LoadProgram(stage VertexStage, path string) (*Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return b.NewProgram(stage, src)
}

// NewLitProgram returns a program lighting textured geometry with up to maxLights point and spot lights.
func (b *Backend) NewLitProgram(maxLights int) (*Program, error) {
	return b.NewProgram(NewLitStage(maxLights), LitFragmentShader)
}

// NewColorProgram returns a program drawing geometry in a flat color.
func (b *Backend) NewColorProgram() (*Program, error) {
	return b.NewProgram(NewColorStage(), ColorFragmentShader)
}

// NewTextureProgram returns a program drawing geometry with a single unlit texture.
func (b *Backend) NewTextureProgram() (*Program, error) {
	return b.NewProgram(NewTextureStage(), TextureFragmentShader)
}

// NewVertexBuffer keeps a copy of data.
func (b *Backend) NewVertexBuffer(data []float32) (lightscene.VertexBuffer, error) {
	return &VertexBuffer{data: append([]float32(nil), data...)}, nil
}

// NewVertexArray resolves where each attribute program reads lives in layout.
func (b *Backend) NewVertexArray(buffer lightscene.VertexBuffer, layout lightscene.VertexLayout, program lightscene.Program) (lightscene.VertexArray, error) {

	vb, ok := buffer.(*VertexBuffer)
	if !ok {
		return nil, fmt.Errorf("vertex buffer %T wasn't created by this backend", buffer)
	}

	if layout.Stride <= 0 {
		return nil, fmt.Errorf("vertex layout stride %d must be positive", layout.Stride)
	}

	va := &VertexArray{
		backend:   b,
		buffer:    vb,
		stride:    layout.Stride,
		position:  -1,
		normal:    -1,
		texCoords: -1,
	}

	for _, attr := range layout.Attributes {
		if program.AttribLocation(attr.Name) < 0 {
			continue
		}
		switch attr.Name {
		case lightscene.AttribPosition:
			va.position = attr.Offset
		case lightscene.AttribNormal:
			va.normal = attr.Offset
		case lightscene.AttribTexCoords:
			va.texCoords = attr.Offset
		}
	}

	return va, nil

}

// SetDepthTest switches depth testing. Switching it off first draws everything queued so far, so later draws land on
// top of it.
func (b *Backend) SetDepthTest(enabled bool) {
	if !enabled && b.depthTest {
		b.flushQueue()
	}
	b.depthTest = enabled
}

// UnbindTexture clears unit, so programs sampling it fall back to the default image for that unit.
func (b *Backend) UnbindTexture(unit lightscene.TextureUnit) {
	if unit < 0 || int(unit) >= len(b.bound) {
		return
	}
	b.bound[unit] = nil
}

// BeginFrame starts a frame drawing onto target.
func (b *Backend) BeginFrame(target *ebiten.Image) {
	b.target = target
	b.frame = Stats{}
	b.queue = b.queue[:0]
}

// EndFrame draws the queued depth-tested triangles and finishes the frame.
func (b *Backend) EndFrame() {
	b.flushQueue()
	b.stats = b.frame
	b.target = nil
}

// Stats returns what the last finished frame drew.
func (b *Backend) Stats() Stats {
	return b.stats
}

// Dispose releases every image and shader the backend created. The backend and its programs and textures must not
// be used afterwards.
func (b *Backend) Dispose() {

	for _, p := range b.programs {
		p.shader.Deallocate()
	}

	for _, t := range b.textures {
		t.image.Deallocate()
	}

	for _, img := range b.blanks {
		img.Deallocate()
	}

	for _, img := range b.resized {
		img.Deallocate()
	}

	if b.white != nil {
		b.white.Deallocate()
	}

	b.logger.Info("graphics resources released", "programs", len(b.programs), "textures", len(b.textures))

	b.programs = nil
	b.textures = nil
	clear(b.blanks)
	clear(b.resized)
	b.white = nil
	b.current = nil
	b.bound = [2]*Texture{}

}

// sources returns the images a program samples, all the same size as Ebitengine requires, and that size. Units with
// nothing bound fall back to a white image for the first unit and a black one (no specular) for the second.
func (b *Backend) sources(p *Program) ([2]*ebiten.Image, image.Point) {

	var images [2]*ebiten.Image
	samplers := p.stage.Samplers()

	if samplers == 0 {
		return images, image.Point{}
	}

	if t := b.bound[lightscene.TextureUnit0]; t != nil {
		images[0] = t.image
	} else {
		images[0] = b.whiteImage()
	}

	size := images[0].Bounds().Size()

	if samplers >= 2 {
		if t := b.bound[lightscene.TextureUnit1]; t != nil {
			images[1] = b.sized(t.image, size)
		} else {
			images[1] = b.blank(size)
		}
	}

	return images, size

}

func (b *Backend) whiteImage() *ebiten.Image {
	if b.white == nil {
		b.white = ebiten.NewImage(1, 1)
		b.white.Fill(color.White)
	}
	return b.white
}

// blank returns a transparent black image of the given size.
func (b *Backend) blank(size image.Point) *ebiten.Image {
	img, ok := b.blanks[size]
	if !ok {
		img = ebiten.NewImage(size.X, size.Y)
		b.blanks[size] = img
	}
	return img
}

// sized returns src stretched to size, or src itself if it's already that size.
func (b *Backend) sized(src *ebiten.Image, size image.Point) *ebiten.Image {

	if src.Bounds().Size() == size {
		return src
	}

	key := resizeKey{src: src, size: size}

	if img, ok := b.resized[key]; ok {
		return img
	}

	img := ebiten.NewImage(size.X, size.Y)
	opt := &ebiten.DrawImageOptions{}
	opt.GeoM.Scale(float64(size.X)/float64(src.Bounds().Dx()), float64(size.Y)/float64(src.Bounds().Dy()))
	img.DrawImage(src, opt)
	b.resized[key] = img

	b.logger.Debug("resized texture to match the diffuse map", "from", src.Bounds().Size(), "to", size)

	return img

}

func (b *Backend) submit(key drawKey, tri [3]VertexOutput, srcSize image.Point) {

	bounds := b.target.Bounds()
	width, height := float32(bounds.Dx()), float32(bounds.Dy())

	t := triangle{key: key}
	for i, v := range tri {
		t.vertices[i] = toScreen(v, width, height, float32(srcSize.X), float32(srcSize.Y))
		t.depth += v.Clip[3]
	}
	t.depth /= 3

	b.frame.Triangles++

	if b.depthTest {
		b.queue = append(b.queue, t)
	} else {
		b.immediate = append(b.immediate, t)
	}

}

// toScreen maps a clip-space vertex to target pixels, and its texture coordinates to source pixels. Texture
// coordinates have their origin at the bottom left, images at the top left.
func toScreen(v VertexOutput, width, height, srcWidth, srcHeight float32) ebiten.Vertex {
	w := v.Clip[3]
	ndcX, ndcY := v.Clip[0]/w, v.Clip[1]/w
	return ebiten.Vertex{
		DstX:   (ndcX*0.5 + 0.5) * width,
		DstY:   (1 - (ndcY*0.5 + 0.5)) * height,
		SrcX:   v.TexCoords[0] * srcWidth,
		SrcY:   (1 - v.TexCoords[1]) * srcHeight,
		ColorR: v.Color[0],
		ColorG: v.Color[1],
		ColorB: v.Color[2],
		ColorA: v.Color[3],
	}
}

func (b *Backend) drawBatch(key drawKey, vertices []ebiten.Vertex, indices []uint16) {
	opt := &ebiten.DrawTrianglesShaderOptions{}
	opt.Images[0] = key.images[0]
	opt.Images[1] = key.images[1]
	b.target.DrawTrianglesShader(vertices, indices, key.shader, opt)
}

func (b *Backend) flushQueue() {
	if len(b.queue) == 0 || b.target == nil {
		return
	}
	sortFarToNear(b.queue)
	b.frame.Batches += b.batcher.flush(b.queue, b.drawBatch)
	b.queue = b.queue[:0]
}

func (b *Backend) flushImmediate() {
	if len(b.immediate) == 0 {
		return
	}
	b.frame.Batches += b.batcher.flush(b.immediate, b.drawBatch)
	b.immediate = b.immediate[:0]
}

//---------------//

// VertexBuffer is vertex data kept on the CPU, where vertex stages run.
type VertexBuffer struct {
	data []float32
}

func (vb *VertexBuffer) Len() int { return len(vb.data) }

// VertexArray reads a VertexBuffer through a layout. Offsets are -1 for attributes the program doesn't read.
type VertexArray struct {
	backend   *Backend
	buffer    *VertexBuffer
	stride    int
	position  int
	normal    int
	texCoords int
}

func (va *VertexArray) VertexCount() int {
	return len(va.buffer.data) / va.stride
}

func (va *VertexArray) input(index int) VertexInput {
	v := va.buffer.data[index*va.stride : (index+1)*va.stride]
	var in VertexInput
	if va.position >= 0 {
		copy(in.Position[:], v[va.position:])
	}
	if va.normal >= 0 {
		copy(in.Normal[:], v[va.normal:])
	}
	if va.texCoords >= 0 {
		copy(in.TexCoords[:], v[va.texCoords:])
	}
	return in
}

// Draw runs the active program's vertex stage over count vertices from first, clips the resulting triangles against
// the near plane and submits them. Nothing is drawn outside of BeginFrame and EndFrame or without an active program.
func (va *VertexArray) Draw(first, count int) {

	b := va.backend
	p := b.current

	if p == nil || b.target == nil {
		return
	}

	b.frame.DrawCalls++

	p.stage.Begin(p)
	images, srcSize := b.sources(p)
	key := drawKey{shader: p.shader, images: images}

	end := min(first+count, va.VertexCount())

	for i := max(first, 0); i+3 <= end; i += 3 {

		tri := [3]VertexOutput{
			p.stage.Vertex(va.input(i)),
			p.stage.Vertex(va.input(i + 1)),
			p.stage.Vertex(va.input(i + 2)),
		}

		b.clipped = clipTriangle(tri, b.clipped[:0])
		for _, c := range b.clipped {
			b.submit(key, c, srcSize)
		}

	}

	if !b.depthTest {
		b.flushImmediate()
	}

}
