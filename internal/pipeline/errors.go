package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToSave is the user error raised when neither slot holds an image.
	ErrNothingToSave = errors.New("nothing to save: load at least one image")

	// ErrUnsupportedFormat is wrapped by SaveError for unknown output extensions.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	errEmptyInput = errors.New("empty input")
)

// DecodeError reports a source image that is missing, unreadable or not a raster image.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot load image %q: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// SaveError reports a failure to encode or write the output file.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("cannot save image %q: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// UserMessage turns a pipeline error into text for a dialog.
func UserMessage(err error) string {
	var decodeErr *DecodeError
	var saveErr *SaveError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNothingToSave):
		return "Please load at least one image before saving."
	case errors.As(err, &decodeErr):
		return fmt.Sprintf("Could not load image %s.\n%v", decodeErr.Source, decodeErr.Err)
	case errors.Is(err, ErrUnsupportedFormat) && errors.As(err, &saveErr):
		return fmt.Sprintf("Could not save %s: use a .png, .jpg or .jpeg file name.", saveErr.Path)
	case errors.As(err, &saveErr):
		return fmt.Sprintf("Could not save image to %s.\n%v", saveErr.Path, saveErr.Err)
	default:
		return err.Error()
	}
}
