// Package hasher produces xxHash64 digests for content-addressed output
// names and for pixel checks in the run manifest.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"

	"github.com/AnyUserName/jpegsim-cli/internal/raster"
)

// ContentHash returns the xxHash64 of data as big-endian hex, truncated to
// hexLen characters (0 or >=16 keeps all 16).
func ContentHash(data []byte, hexLen int) string {
	return truncHex(xxhash.Sum64(data), hexLen)
}

// ContentHashReader is ContentHash over a stream.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return truncHex(h.Sum64(), hexLen), nil
}

// PixelDigest identifies a raster by its dimensions and pixel bytes, so
// two images with equal bytes but different shapes never collide.
func PixelDigest(img raster.Image) string {
	h := xxhash.New()
	var dims [16]byte
	binary.BigEndian.PutUint64(dims[:8], uint64(img.Width))
	binary.BigEndian.PutUint64(dims[8:], uint64(img.Height))
	h.Write(dims[:])
	h.Write(img.Pix)
	return truncHex(h.Sum64(), 0)
}

func truncHex(sum uint64, hexLen int) string {
	full := hex.EncodeToString(binary.BigEndian.AppendUint64(nil, sum))
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
