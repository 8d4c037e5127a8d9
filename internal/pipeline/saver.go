package pipeline

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"idcard-merger/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"

	DefaultJPEGQuality = 95
)

// FormatForExtension maps an output extension to an encoder. An empty
// extension selects PNG.
func FormatForExtension(ext string) (string, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// OutputPath appends ".png" when path has no extension.
func OutputPath(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".png"
	}
	return path
}

type Saver struct {
	logger        logger.Logger
	timingTracker TimingTracker
	jpegQuality   int
}

func NewSaver(log logger.Logger, tt TimingTracker) *Saver {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if tt == nil {
		tt = noopTimer{}
	}
	return &Saver{
		logger:        log,
		timingTracker: tt,
		jpegQuality:   DefaultJPEGQuality,
	}
}

// Encode writes img to writer in the given format.
func (s *Saver) Encode(writer io.Writer, img image.Image, format string) error {
	ctx := s.timingTracker.StartTiming("encode_image")
	defer s.timingTracker.EndTiming(ctx)

	switch format {
	case FormatJPEG:
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: s.jpegQuality})
	case FormatPNG:
		encoder := png.Encoder{CompressionLevel: png.BestCompression}
		return encoder.Encode(writer, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SaveToPath encodes img into a temporary file next to path and renames it
// into place, so a failure never leaves a partial file behind. It returns
// the path actually written.
func (s *Saver) SaveToPath(path string, img image.Image) (string, error) {
	path = OutputPath(path)

	format, err := FormatForExtension(filepath.Ext(path))
	if err != nil {
		return path, s.fail(path, err)
	}
	if img == nil {
		return path, s.fail(path, ErrNothingToSave)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return path, s.fail(path, err)
	}
	tmpName := tmp.Name()

	if err := s.writeFile(tmp, img, format); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return path, s.fail(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return path, s.fail(path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return path, s.fail(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return path, s.fail(path, err)
	}

	s.logSaved(path, format, img)
	return path, nil
}

func (s *Saver) writeFile(f *os.File, img image.Image, format string) error {
	w := bufio.NewWriter(f)
	if err := s.Encode(w, img, format); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// SaveToWriter encodes img fully in memory before touching writer. The
// writer is always closed; if anything fails the target URI is deleted.
// A target without extension is replaced by a ".png" sibling. It returns
// the URI actually written.
func (s *Saver) SaveToWriter(writer fyne.URIWriteCloser, img image.Image) (fyne.URI, error) {
	uri := writer.URI()

	if uri.Extension() == "" {
		writer.Close()
		s.discard(uri)

		target, err := pngSibling(uri)
		if err != nil {
			return uri, s.fail(sourceName(uri), err)
		}
		if writer, err = storage.Writer(target); err != nil {
			return target, s.fail(sourceName(target), err)
		}
		uri = target
	}
	target := sourceName(uri)

	err := s.saveToWriter(writer, uri, img)
	closeErr := writer.Close()
	if err == nil && closeErr != nil {
		err = closeErr
	}

	if err != nil {
		s.discard(uri)
		return uri, s.fail(target, err)
	}

	format, _ := FormatForExtension(uri.Extension())
	s.logSaved(target, format, img)
	return uri, nil
}

// pngSibling names the file next to uri with ".png" appended.
func pngSibling(uri fyne.URI) (fyne.URI, error) {
	if uri.Scheme() == "file" {
		return storage.NewFileURI(OutputPath(uri.Path())), nil
	}
	parent, err := storage.Parent(uri)
	if err != nil {
		return nil, err
	}
	return storage.Child(parent, uri.Name()+".png")
}

func (s *Saver) discard(uri fyne.URI) {
	if err := storage.Delete(uri); err != nil {
		s.logger.Warning("ImageSaver", "could not remove failed output", map[string]interface{}{
			"path":  sourceName(uri),
			"error": err.Error(),
		})
	}
}

func (s *Saver) saveToWriter(writer io.Writer, uri fyne.URI, img image.Image) error {
	if img == nil {
		return ErrNothingToSave
	}

	format, err := FormatForExtension(uri.Extension())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf, img, format); err != nil {
		return err
	}
	_, err = buf.WriteTo(writer)
	return err
}

func (s *Saver) fail(path string, err error) error {
	saveErr := &SaveError{Path: path, Err: err}
	s.logger.Error("ImageSaver", saveErr, map[string]interface{}{
		"path": path,
	})
	return saveErr
}

func (s *Saver) logSaved(path, format string, img image.Image) {
	b := img.Bounds()
	s.logger.Info("ImageSaver", "image saved", map[string]interface{}{
		"path":   path,
		"format": format,
		"width":  b.Dx(),
		"height": b.Dy(),
	})
}
