package tiff

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"golang.org/x/exp/mmap"
)

// stripedImage reads pixels straight out of a memory-mapped,
// uncompressed striped TIFF. At never allocates: each call reads the
// few bytes of the requested pixel.
type stripedImage struct {
	hdr    header
	reader io.ReaderAt
}

// OpenStriped maps an uncompressed striped TIFF for lazy pixel access.
func OpenStriped(path string) (image.Image, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	hdr, err := parseHeader(reader)
	if err != nil {
		return nil, err
	}

	if hdr.compression != compressionNone {
		return nil, fmt.Errorf("striped reader: unsupported compression %d", hdr.compression)
	}
	if err := hdr.checkFormat(); err != nil {
		return nil, fmt.Errorf("striped reader: %w", err)
	}
	if len(hdr.stripOffsets) == 0 || len(hdr.stripOffsets) != len(hdr.stripByteCounts) {
		return nil, fmt.Errorf("striped reader: invalid strip layout")
	}
	if hdr.rowsPerStrip <= 0 {
		// RowsPerStrip is optional; its TIFF default is all rows in
		// one strip
		hdr.rowsPerStrip = hdr.height
	}

	return &stripedImage{hdr: hdr, reader: reader}, nil
}

func (s *stripedImage) ColorModel() color.Model {
	return color.RGBAModel
}

func (s *stripedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.hdr.width, s.hdr.height)
}

func (s *stripedImage) At(x, y int) color.Color {
	h := s.hdr

	strip := y / h.rowsPerStrip
	localY := y % h.rowsPerStrip
	idx := h.stripOffsets[strip] + (localY*h.width+x)*h.samplesPerPixel

	switch h.photometric {
	case photometricRGB:
		var buf [3]byte
		if _, err := s.reader.ReadAt(buf[:], int64(idx)); err != nil {
			panic(fmt.Sprintf("tiff: read RGB pixel (%d,%d): %v", x, y, err))
		}
		return color.RGBA{R: buf[0], G: buf[1], B: buf[2], A: 255}
	default: // BlackIsZero, already validated
		var buf [1]byte
		if _, err := s.reader.ReadAt(buf[:], int64(idx)); err != nil {
			panic(fmt.Sprintf("tiff: read gray pixel (%d,%d): %v", x, y, err))
		}
		return color.RGBA{R: buf[0], G: buf[0], B: buf[0], A: 255}
	}
}
