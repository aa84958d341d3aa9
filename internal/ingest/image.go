package ingest

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/nfnt/resize"
)

// maxImageWidth is the widest image sent to the vision model. Photos from
// phone cameras are much larger than OCR needs.
const maxImageWidth = 1024

// prepareImage downscales an oversized base64-encoded photo before the OCR
// hop. Input may be raw base64 or a data URL; output is raw base64 JPEG.
// Anything that cannot be decoded is passed through untouched and left to
// the model.
func prepareImage(input string) string {
	raw := input
	if idx := strings.Index(raw, ";base64,"); idx != -1 {
		raw = raw[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return input
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return input
	}
	if img.Bounds().Dx() <= maxImageWidth {
		return raw
	}

	img = resize.Resize(maxImageWidth, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		return raw
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
