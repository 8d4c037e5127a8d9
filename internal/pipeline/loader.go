package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"idcard-merger/internal/logger"

	"fyne.io/fyne/v2"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var supportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// SupportedExtensions lists the file extensions offered in the open dialog.
func SupportedExtensions() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}

// IsSupportedExtension reports whether path has an extension the loader recognises.
func IsSupportedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range supportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// StdDecoder decodes with the registered Go image codecs and applies the
// EXIF orientation tag so photos come out upright.
type StdDecoder struct{}

func (StdDecoder) Name() string { return "stdlib" }

func (StdDecoder) Decode(data []byte) (image.Image, string, error) {
	// Only for the format name; imaging.Decode parses the header again.
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

type Loader struct {
	decoders      []Decoder
	logger        logger.Logger
	timingTracker TimingTracker
}

// NewLoader builds a loader that tries the Go codecs first, then each fallback in order.
func NewLoader(log logger.Logger, tt TimingTracker, fallbacks ...Decoder) *Loader {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if tt == nil {
		tt = noopTimer{}
	}

	decoders := []Decoder{StdDecoder{}}
	for _, d := range fallbacks {
		if d != nil {
			decoders = append(decoders, d)
		}
	}

	return &Loader{
		decoders:      decoders,
		logger:        log,
		timingTracker: tt,
	}
}

func (l *Loader) LoadFromPath(path string) (*ImageData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	return l.LoadFromBytes(data, path)
}

func (l *Loader) LoadFromReader(reader fyne.URIReadCloser) (*ImageData, error) {
	source := sourceName(reader.URI())

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: fmt.Errorf("failed to read image data: %w", err)}
	}

	return l.LoadFromBytes(data, source)
}

func (l *Loader) LoadFromBytes(data []byte, source string) (*ImageData, error) {
	ctx := l.timingTracker.StartTiming("load_image")
	defer l.timingTracker.EndTiming(ctx)

	if len(data) == 0 {
		return nil, &DecodeError{Source: source, Err: errEmptyInput}
	}

	l.logger.Debug("ImageLoader", "decoding image", map[string]interface{}{
		"source":     source,
		"size_bytes": len(data),
	})

	var errs []error
	for _, d := range l.decoders {
		img, format, err := d.Decode(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.Name(), err))
			continue
		}
		if img == nil || img.Bounds().Empty() {
			errs = append(errs, fmt.Errorf("%s: decoded image is empty", d.Name()))
			continue
		}

		bounds := img.Bounds()
		imageData := &ImageData{
			Image:  img,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Format: format,
			Source: source,
		}

		l.logger.Info("ImageLoader", "image loaded", map[string]interface{}{
			"source":  source,
			"width":   imageData.Width,
			"height":  imageData.Height,
			"format":  format,
			"decoder": d.Name(),
		})
		return imageData, nil
	}

	err := &DecodeError{Source: source, Err: errors.Join(errs...)}
	l.logger.Error("ImageLoader", err, map[string]interface{}{
		"source": source,
	})
	return nil, err
}

func sourceName(uri fyne.URI) string {
	if uri == nil {
		return "<unknown>"
	}
	if uri.Scheme() == "file" {
		return uri.Path()
	}
	return uri.String()
}
