// Package texture loads image files and samples them as linear-space
// colors. Sampling decodes sRGB on the fly, so shading always sees
// linear values regardless of the file format.
package texture

import (
	"errors"
	"image"
	"log/slog"
	"os"

	lru "github.com/hashicorp/golang-lru"

	"github.com/vikram-vadrevu/raytracer/colors"
	"github.com/vikram-vadrevu/raytracer/texture/tiff"

	_ "image/jpeg" // register JPEG format with image.Decode
	_ "image/png"  // register PNG format with image.Decode

	_ "golang.org/x/image/tiff" // fallback decoder for TIFF variants the lazy readers reject
)

// pathCacheSize bounds how many distinct texture files stay loaded.
// Scene files routinely attach the same texture to many primitives.
const pathCacheSize = 16

var pathCache, _ = lru.New(pathCacheSize)

// Texture samples an image by normalized UV coordinates.
type Texture struct {
	Width  int
	Height int
	img    image.Image
}

// Load opens the texture at path, reusing a previously loaded instance
// when the same file appears on multiple primitives. TIFF files get
// lazy memory-mapped readers; everything else goes through the
// registered image codecs.
func Load(path string) (*Texture, error) {
	if cached, ok := pathCache.Get(path); ok {
		return cached.(*Texture), nil
	}

	img, err := loadImage(path)
	if err != nil {
		return nil, err
	}

	tex := &Texture{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		img:    img,
	}
	pathCache.Add(path, tex)
	return tex, nil
}

func loadImage(path string) (image.Image, error) {
	img, err := tiff.OpenStriped(path)
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, tiff.ErrInvalidHeader) {
		slog.Warn("failed to load striped TIFF", "path", path, "error", err)
	}

	img, err = tiff.OpenTiled(path)
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, tiff.ErrInvalidHeader) {
		slog.Warn("failed to load tiled TIFF", "path", path, "error", err)
	}

	// fallback to registered image codecs
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err = image.Decode(f)
	return img, err
}

// Sample returns the linear-space color at (u, v). The UV domain is
// [0,1]x[0,1]; out-of-range coordinates clamp to the edge texel.
func (t *Texture) Sample(u, v float64) colors.Color4 {
	x := clampIndex(int(u*float64(t.Width-1)), t.Width)
	y := clampIndex(int(v*float64(t.Height-1)), t.Height)

	r16, g16, b16, _ := t.img.At(x, y).RGBA()
	return colors.From8BitSRGB(byte(r16>>8), byte(g16>>8), byte(b16>>8))
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
