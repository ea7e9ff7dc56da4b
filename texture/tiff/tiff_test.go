package tiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	xtiff "golang.org/x/image/tiff"
)

// writeGrayTIFF encodes a 4x4 grayscale gradient as an uncompressed
// striped TIFF and returns its path.
func writeGrayTIFF(t *testing.T) (string, *image.Gray) {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(16*y + x)})
		}
	}

	path := filepath.Join(t.TempDir(), "gradient.tif")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := xtiff.Encode(f, img, &xtiff.Options{Compression: xtiff.Uncompressed}); err != nil {
		t.Fatal(err)
	}
	return path, img
}

func TestOpenStripedGray(t *testing.T) {
	path, want := writeGrayTIFF(t)

	img, err := OpenStriped(path)
	if err != nil {
		t.Fatalf("OpenStriped failed: %v", err)
	}
	if img.Bounds() != want.Bounds() {
		t.Fatalf("bounds = %v, want %v", img.Bounds(), want.Bounds())
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			expect := uint32(want.GrayAt(x, y).Y)
			expect |= expect << 8
			if r != expect || g != expect || b != expect {
				t.Fatalf("pixel (%d,%d) = (%d,%d,%d), want %d", x, y, r, g, b, expect)
			}
		}
	}
}

// writeSingleStripTIFF assembles a minimal little-endian grayscale
// TIFF whose IFD has no RowsPerStrip entry, which per the format means
// the whole image is one strip.
func writeSingleStripTIFF(t *testing.T, pixels []byte) string {
	t.Helper()

	const (
		typeShort = 3
		typeLong  = 4
	)

	var buf bytes.Buffer
	write := func(v any) {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}
	entry := func(tag, typ uint16, value uint32) {
		write(tag)
		write(typ)
		write(uint32(1))
		if typ == typeShort {
			write(uint16(value))
			write(uint16(0))
		} else {
			write(value)
		}
	}

	// header: byte order, magic, IFD offset
	buf.WriteString("II")
	write(uint16(42))
	write(uint32(8))

	// 8 IFD entries, then the next-IFD terminator, then pixel data
	const dataOffset = 8 + 2 + 8*12 + 4

	write(uint16(8))
	entry(tagImageWidth, typeLong, 2)
	entry(tagImageLength, typeLong, 2)
	entry(tagBitsPerSample, typeShort, 8)
	entry(tagCompression, typeShort, compressionNone)
	entry(tagPhotometric, typeShort, photometricBlackIsZero)
	entry(tagStripOffsets, typeLong, dataOffset)
	entry(tagSamplesPerPixel, typeShort, 1)
	entry(tagStripByteCounts, typeLong, uint32(len(pixels)))
	write(uint32(0))
	buf.Write(pixels)

	path := filepath.Join(t.TempDir(), "single-strip.tif")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenStripedDefaultRowsPerStrip(t *testing.T) {
	pixels := []byte{10, 20, 30, 40}
	path := writeSingleStripTIFF(t, pixels)

	img, err := OpenStriped(path)
	if err != nil {
		t.Fatalf("OpenStriped failed: %v", err)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			expect := uint32(pixels[y*2+x])
			expect |= expect << 8
			if r != expect {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, r, expect)
			}
		}
	}
}

func TestOpenStripedRejectsNonTIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-tiff")
	if err := os.WriteFile(path, []byte("hello, world"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := OpenStriped(path)
	if !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("err = %v, want ErrInvalidHeader", err)
	}
}

func TestOpenTiledRejectsStriped(t *testing.T) {
	path, _ := writeGrayTIFF(t)

	// a striped file has no tile layout
	if _, err := OpenTiled(path); err == nil {
		t.Fatal("expected an error for a striped file")
	}
}

func TestParseHeaderByteOrder(t *testing.T) {
	path, _ := writeGrayTIFF(t)
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	hdr, err := parseHeader(f)
	if err != nil {
		t.Fatalf("parseHeader failed: %v", err)
	}
	if hdr.width != 4 || hdr.height != 4 {
		t.Fatalf("size = %dx%d, want 4x4", hdr.width, hdr.height)
	}
	if hdr.compression != compressionNone {
		t.Fatalf("compression = %d, want none", hdr.compression)
	}
	if err := hdr.checkFormat(); err != nil {
		t.Fatalf("checkFormat failed: %v", err)
	}
}
