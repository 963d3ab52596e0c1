package ebitengfx

import (
	"fmt"
	"image"
	"os"

	// Decoders for LoadTexture.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/solarlune/lightscene"
)

// Texture is an image uploaded to Ebitengine. It implements lightscene.Texture.
type Texture struct {
	backend *Backend
	name    string
	image   *ebiten.Image
}

// Name returns the name the texture was created with (the file path for loaded textures).
func (t *Texture) Name() string { return t.name }

// Image returns the texture's Ebitengine image.
func (t *Texture) Image() *ebiten.Image { return t.image }

// Use binds the texture to unit for subsequent draws.
func (t *Texture) Use(unit lightscene.TextureUnit) {
	if unit < 0 || int(unit) >= len(t.backend.bound) {
		return
	}
	t.backend.bound[unit] = t
}

// NewTexture uploads img as a texture.
func (b *Backend) NewTexture(name string, img image.Image) *Texture {
	tex := &Texture{
		backend: b,
		name:    name,
		image:   ebiten.NewImageFromImage(img),
	}
	b.textures = append(b.textures, tex)
	return tex
}

// LoadTexture decodes the PNG, JPEG, BMP or WebP image at path and uploads it as a texture.
func (b *Backend) LoadTexture(path string) (*Texture, error) {

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	size := img.Bounds().Size()
	b.logger.Debug("loaded texture", "path", path, "format", format, "width", size.X, "height", size.Y)

	return b.NewTexture(path, img), nil

}
