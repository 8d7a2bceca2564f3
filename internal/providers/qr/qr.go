package qr

import (
	"bytes"
	"encoding/base64"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const imageSize = 250

// DataURL encodes content as a QR PNG and returns it as a data URL
// suitable for <img src> embedding.
func DataURL(content string) (string, error) {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return "", err
	}
	scaled, err := barcode.Scale(code, imageSize, imageSize)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// PNGBytes decodes the PNG payload out of a DataURL result.
func PNGBytes(dataURL string) ([]byte, bool) {
	const prefix = "data:image/png;base64,"
	if len(dataURL) <= len(prefix) || dataURL[:len(prefix)] != prefix {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[len(prefix):])
	if err != nil {
		return nil, false
	}
	return raw, true
}
