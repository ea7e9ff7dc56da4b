// Package tiff provides lazy readers for uncompressed striped and
// optionally deflate-compressed tiled TIFF files. Pixels are read (and
// tiles decompressed) on demand from a memory-mapped file, so very
// large texture maps can be sampled without decoding the whole image.
package tiff

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrInvalidHeader marks a file that is not a TIFF at all, letting
// callers fall through to other codecs.
var ErrInvalidHeader = errors.New("invalid TIFF header")

// Baseline tag IDs.
// https://www.loc.gov/preservation/digital/formats/content/tiff_tags.shtml
const (
	tagImageWidth      = 256
	tagImageLength     = 257
	tagBitsPerSample   = 258
	tagCompression     = 259
	tagPhotometric     = 262
	tagStripOffsets    = 273
	tagSamplesPerPixel = 277
	tagRowsPerStrip    = 278
	tagStripByteCounts = 279
	tagPlanarConfig    = 284
	tagTileWidth       = 322
	tagTileLength      = 323
	tagTileOffsets     = 324
	tagTileByteCounts  = 325
)

// Compression and photometric-interpretation values this package
// understands.
const (
	compressionNone    = 1
	compressionDeflate = 8

	photometricBlackIsZero = 1
	photometricRGB         = 2
)

type header struct {
	byteOrder       binary.ByteOrder
	width, height   int
	samplesPerPixel int
	bitsPerSample   []int
	photometric     int
	compression     int
	planarConfig    int

	rowsPerStrip    int
	stripOffsets    []int
	stripByteCounts []int

	tileWidth      int
	tileHeight     int
	tileOffsets    []int
	tileByteCounts []int
}

func parseHeader(r io.ReaderAt) (header, error) {
	read := func(offset int64, size int) ([]byte, error) {
		buf := make([]byte, size)
		_, err := r.ReadAt(buf, offset)
		return buf, err
	}

	raw, err := read(0, 8)
	if err != nil {
		return header{}, err
	}

	var bo binary.ByteOrder
	switch string(raw[0:2]) {
	case "II":
		bo = binary.LittleEndian
	case "MM":
		bo = binary.BigEndian
	default:
		return header{}, ErrInvalidHeader
	}
	if bo.Uint16(raw[2:4]) != 42 {
		return header{}, ErrInvalidHeader
	}

	ifdOffset := int64(bo.Uint32(raw[4:8]))
	countRaw, err := read(ifdOffset, 2)
	if err != nil {
		return header{}, err
	}
	numEntries := int(bo.Uint16(countRaw))
	entries, err := read(ifdOffset+2, numEntries*12)
	if err != nil {
		return header{}, err
	}

	hdr := header{
		byteOrder:       bo,
		samplesPerPixel: -1,
		photometric:     -1,
		compression:     -1,
		planarConfig:    1,
	}

	for i := 0; i < numEntries; i++ {
		entry := entries[i*12 : (i+1)*12]
		tag := bo.Uint16(entry[0:2])
		count := bo.Uint32(entry[4:8])
		valOffset := int64(bo.Uint32(entry[8:12]))

		readShorts := func() ([]int, error) {
			if count == 1 {
				return []int{int(bo.Uint16(entry[8:10]))}, nil
			}
			buf, err := read(valOffset, int(count*2))
			if err != nil {
				return nil, err
			}
			out := make([]int, count)
			for j := uint32(0); j < count; j++ {
				out[j] = int(bo.Uint16(buf[j*2:]))
			}
			return out, nil
		}
		readLongs := func() ([]int, error) {
			if count == 1 {
				return []int{int(valOffset)}, nil
			}
			buf, err := read(valOffset, int(count*4))
			if err != nil {
				return nil, err
			}
			out := make([]int, count)
			for j := uint32(0); j < count; j++ {
				out[j] = int(bo.Uint32(buf[j*4:]))
			}
			return out, nil
		}

		switch tag {
		case tagImageWidth:
			hdr.width = int(valOffset)
		case tagImageLength:
			hdr.height = int(valOffset)
		case tagBitsPerSample:
			if hdr.bitsPerSample, err = readShorts(); err != nil {
				return header{}, err
			}
		case tagCompression:
			hdr.compression = int(bo.Uint16(entry[8:10]))
		case tagPhotometric:
			hdr.photometric = int(bo.Uint16(entry[8:10]))
		case tagStripOffsets:
			if hdr.stripOffsets, err = readLongs(); err != nil {
				return header{}, err
			}
		case tagSamplesPerPixel:
			hdr.samplesPerPixel = int(bo.Uint16(entry[8:10]))
		case tagRowsPerStrip:
			hdr.rowsPerStrip = int(valOffset)
		case tagStripByteCounts:
			if hdr.stripByteCounts, err = readLongs(); err != nil {
				return header{}, err
			}
		case tagPlanarConfig:
			hdr.planarConfig = int(bo.Uint16(entry[8:10]))
		case tagTileWidth:
			hdr.tileWidth = int(valOffset)
		case tagTileLength:
			hdr.tileHeight = int(valOffset)
		case tagTileOffsets:
			if hdr.tileOffsets, err = readLongs(); err != nil {
				return header{}, err
			}
		case tagTileByteCounts:
			if hdr.tileByteCounts, err = readLongs(); err != nil {
				return header{}, err
			}
		}
	}

	return hdr, nil
}

// checkFormat validates the sample layout shared by both readers.
func (h header) checkFormat() error {
	switch h.photometric {
	case photometricBlackIsZero:
		if h.samplesPerPixel != 1 || len(h.bitsPerSample) == 0 || h.bitsPerSample[0] != 8 {
			return errors.New("unsupported grayscale format")
		}
	case photometricRGB:
		if h.samplesPerPixel != 3 || len(h.bitsPerSample) == 0 || h.bitsPerSample[0] != 8 {
			return errors.New("unsupported RGB format")
		}
	default:
		return errors.New("unsupported photometric interpretation")
	}
	return nil
}
