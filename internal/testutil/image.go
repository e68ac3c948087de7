package testutil

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// JPEG returns a small encoded JPEG image.
func JPEG(t testing.TB) []byte {
	return encode(t, imaging.JPEG)
}

// PNG returns a small encoded PNG image.
func PNG(t testing.TB) []byte {
	return encode(t, imaging.PNG)
}

// PaddedJPEG returns a valid JPEG grown to size bytes with trailing data after the end marker.
func PaddedJPEG(t testing.TB, size int) []byte {
	data := JPEG(t)
	require.LessOrEqual(t, len(data), size)
	return append(data, make([]byte, size-len(data))...)
}

func encode(t testing.TB, format imaging.Format) []byte {
	t.Helper()

	img := imaging.New(16, 16, color.NRGBA{R: 200, G: 40, B: 90, A: 255})
	img = imaging.Paste(img, imaging.New(8, 8, color.White), image.Pt(4, 4))

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}
