package tiff

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/exp/mmap"
)

// tileCacheSize bounds how many decompressed tiles stay resident.
const tileCacheSize = 200

// tiledImage reads a tiled TIFF lazily, decompressing tiles on demand
// and keeping recently used ones in an LRU cache.
type tiledImage struct {
	hdr    header
	reader *mmap.ReaderAt
	cache  *lru.Cache // tile index -> []byte
}

// OpenTiled maps a tiled TIFF (uncompressed or deflate) for lazy
// pixel access.
func OpenTiled(path string) (image.Image, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	hdr, err := parseHeader(reader)
	if err != nil {
		return nil, err
	}

	if hdr.compression != compressionNone && hdr.compression != compressionDeflate {
		return nil, fmt.Errorf("tiled reader: unsupported compression %d", hdr.compression)
	}
	if err := hdr.checkFormat(); err != nil {
		return nil, fmt.Errorf("tiled reader: %w", err)
	}
	if len(hdr.tileOffsets) == 0 || len(hdr.tileOffsets) != len(hdr.tileByteCounts) {
		return nil, fmt.Errorf("tiled reader: invalid tile layout")
	}

	cache, _ := lru.New(tileCacheSize)

	return &tiledImage{hdr: hdr, reader: reader, cache: cache}, nil
}

func (t *tiledImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (t *tiledImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.hdr.width, t.hdr.height)
}

func (t *tiledImage) At(x, y int) color.Color {
	h := t.hdr

	tileX := x / h.tileWidth
	tileY := y / h.tileHeight
	tilesAcross := int(math.Ceil(float64(h.width) / float64(h.tileWidth)))
	tileIndex := tileY*tilesAcross + tileX

	var tile []byte
	if val, ok := t.cache.Get(tileIndex); ok {
		tile = val.([]byte)
	} else {
		tile = t.loadTile(tileIndex)
		t.cache.Add(tileIndex, tile)
	}

	localX := x % h.tileWidth
	localY := y % h.tileHeight
	rowStride := h.tileWidth * h.samplesPerPixel
	off := localY*rowStride + localX*h.samplesPerPixel

	switch h.photometric {
	case photometricRGB:
		return color.RGBA{R: tile[off], G: tile[off+1], B: tile[off+2], A: 255}
	default: // BlackIsZero, already validated
		return color.RGBA{R: tile[off], G: tile[off], B: tile[off], A: 255}
	}
}

func (t *tiledImage) loadTile(index int) []byte {
	h := t.hdr
	buf := make([]byte, h.tileByteCounts[index])
	if _, err := t.reader.ReadAt(buf, int64(h.tileOffsets[index])); err != nil {
		panic(fmt.Sprintf("tiff: read tile %d: %v", index, err))
	}

	if h.compression == compressionDeflate {
		r, err := zlib.NewReader(bytes.NewReader(buf))
		if err != nil {
			panic(fmt.Sprintf("tiff: tile %d: %v", index, err))
		}
		defer r.Close()
		tile, err := io.ReadAll(r)
		if err != nil {
			panic(fmt.Sprintf("tiff: tile %d: %v", index, err))
		}
		return tile
	}
	return buf
}
