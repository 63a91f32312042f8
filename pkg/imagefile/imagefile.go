package imagefile

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnsupportedType is returned for files that are not JPEG or PNG images. Its text
// is shown to the user as is, hence the capital.
var ErrUnsupportedType = errors.New("Invalid file type: please upload a JPEG or PNG image")

var allowed = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// Load reads an image file and returns it as a data URL. The MIME type is taken from
// the file content, not its name.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mime, err := Detect(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return Encode(mime, data), nil
}

// Detect returns the MIME type of data when it is an accepted image type.
func Detect(data []byte) (string, error) {
	mime := mimetype.Detect(data).String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !Allowed(mime) {
		return "", fmt.Errorf("%w (got %s)", ErrUnsupportedType, mime)
	}
	return mime, nil
}

// Allowed reports whether mime is one of image/jpeg, image/jpg or image/png.
func Allowed(mime string) bool {
	return allowed[strings.ToLower(strings.TrimSpace(mime))]
}

// Encode builds a data URL of the form data:<mime>;base64,<payload>.
func Encode(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
