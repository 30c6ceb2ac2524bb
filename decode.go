package plotview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
)

// dataURLPrefix is how the provider wraps PNG payloads for inclusion in a
// JSON response.
const dataURLPrefix = "data:image/png;base64,"

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// decodeMask decodes a provider raster payload into its presence mask.
// The payload may be raw PNG bytes, bare base64, or a full data URL.
func decodeMask(data []byte) (*Mask, error) {
	if bytes.HasPrefix(data, []byte(dataURLPrefix)) {
		data = data[len(dataURLPrefix):]
	}
	if !bytes.HasPrefix(data, pngMagic) {
		decoded := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
		n, err := base64.StdEncoding.Decode(decoded, data)
		if err != nil {
			return nil, fmt.Errorf("base64: %w", err)
		}
		data = decoded[:n]
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	return MaskFromAlpha(img), nil
}
