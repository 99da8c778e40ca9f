// Package logo decodes uploaded logo images into a form the document
// renderer can embed.
package logo

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/nfnt/resize"
)

// maxEmbedDim caps the pixel size of an embedded logo. The page only
// shows a 40mm box; anything larger just bloats the document.
const maxEmbedDim = 600

// Image is a decoded, normalized logo: PNG bytes ready for embedding
// plus the bitmap dimensions used for aspect-ratio fitting.
type Image struct {
	PNG    []byte
	Width  int
	Height int

	digest string
}

// Digest identifies the original upload content.
func (i *Image) Digest() string { return i.digest }

// DataURI returns the inline representation handed back to clients.
func (i *Image) DataURI() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(i.PNG)
}

// Digest returns the content digest of raw upload bytes, used as the
// decode-cache key.
func Digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Decode parses any registered image format (PNG, JPEG, GIF),
// downsamples oversized bitmaps, and re-encodes to PNG.
func Decode(raw []byte) (*Image, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxEmbedDim || bounds.Dy() > maxEmbedDim {
		src = resize.Thumbnail(maxEmbedDim, maxEmbedDim, src, resize.Lanczos3)
		bounds = src.Bounds()
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}

	return &Image{
		PNG:    buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		digest: Digest(raw),
	}, nil
}

// DecodeDataURI parses an inline base64 image as sent by JSON clients.
func DecodeDataURI(uri string) (*Image, error) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("decode logo: not a data URI")
	}
	idx := strings.Index(uri, ",")
	if idx < 0 || !strings.Contains(uri[:idx], ";base64") {
		return nil, fmt.Errorf("decode logo: unsupported data URI encoding")
	}
	raw, err := base64.StdEncoding.DecodeString(uri[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("decode logo: %w", err)
	}
	return Decode(raw)
}
