package imagefile

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func sample() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	return img
}

func TestLoadPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sample()))
	p := writeFile(t, "chart.png", buf.Bytes())

	url, err := Load(p)

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), payload)
}

func TestLoadJPEGIgnoresExtension(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, sample(), nil))
	p := writeFile(t, "chart.png", buf.Bytes())

	url, err := Load(p)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))
}

func TestLoadRejectsOtherTypes(t *testing.T) {
	for name, data := range map[string][]byte{
		"notes.png": []byte("just some text, not an image"),
		"chart.gif": []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00;"),
	} {
		_, err := Load(writeFile(t, name, data))
		assert.ErrorIs(t, err, ErrUnsupportedType, name)
		assert.Contains(t, err.Error(), "Invalid file type: please upload a JPEG or PNG image", name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedType)
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("image/jpeg"))
	assert.True(t, Allowed("image/jpg"))
	assert.True(t, Allowed("IMAGE/PNG"))
	assert.False(t, Allowed("image/gif"))
	assert.False(t, Allowed("application/pdf"))
}

func TestEncode(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQI=", Encode("image/png", []byte{1, 2}))
}
