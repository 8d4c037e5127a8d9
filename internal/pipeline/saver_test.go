package pipeline

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForExtension(t *testing.T) {
	for ext, want := range map[string]string{
		".png": FormatPNG, "PNG": FormatPNG, "": FormatPNG,
		".jpg": FormatJPEG, ".JPEG": FormatJPEG,
	} {
		got, err := FormatForExtension(ext)
		require.NoError(t, err, ext)
		assert.Equal(t, want, got, ext)
	}

	_, err := FormatForExtension(".gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveToPathPNG(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "merged.png")

	written, err := NewSaver(nil, nil).SaveToPath(target, solid(20, 30, color.White))
	require.NoError(t, err)
	assert.Equal(t, target, written)

	img, format := decodeFile(t, target)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Pt(20, 30), img.Bounds().Size())
	assert.Equal(t, []string{"merged.png"}, dirEntries(t, dir), "no temp files left behind")

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestSaveToPathJPEG(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "merged.JPG")

	_, err := NewSaver(nil, nil).SaveToPath(target, solid(64, 32, color.White))
	require.NoError(t, err)

	img, format := decodeFile(t, target)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Pt(64, 32), img.Bounds().Size())
}

func TestSaveToPathWithoutExtensionWritesPNG(t *testing.T) {
	dir := t.TempDir()

	written, err := NewSaver(nil, nil).SaveToPath(filepath.Join(dir, "idcard"), solid(5, 5, color.White))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "idcard.png"), written)

	_, format := decodeFile(t, written)
	assert.Equal(t, "png", format)
}

func TestSaveToPathUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "merged.gif")

	_, err := NewSaver(nil, nil).SaveToPath(target, solid(5, 5, color.White))

	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Equal(t, target, saveErr.Path)
	assert.Empty(t, dirEntries(t, dir))
}

func TestSaveToPathMissingDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nope", "merged.png")

	_, err := NewSaver(nil, nil).SaveToPath(target, solid(5, 5, color.White))

	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveToPathKeepsExistingFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "merged.png")
	require.NoError(t, os.WriteFile(target, []byte("previous"), 0o644))

	_, err := NewSaver(nil, nil).SaveToPath(target, nil)
	require.Error(t, err)

	data, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, "previous", string(data))
	assert.Equal(t, []string{"merged.png"}, dirEntries(t, dir))
}

func TestSaveToWriter(t *testing.T) {
	test.NewTempApp(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "merged.jpeg")

	writer, err := storage.Writer(storage.NewFileURI(target))
	require.NoError(t, err)

	written, err := NewSaver(nil, nil).SaveToWriter(writer, solid(8, 4, color.White))
	require.NoError(t, err)
	assert.Equal(t, target, written.Path())

	img, format := decodeFile(t, target)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Pt(8, 4), img.Bounds().Size())
}

func TestSaveToWriterRemovesTargetOnFailure(t *testing.T) {
	test.NewTempApp(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "merged.tga")

	writer, err := storage.Writer(storage.NewFileURI(target))
	require.NoError(t, err)

	_, err = NewSaver(nil, nil).SaveToWriter(writer, solid(8, 4, color.White))

	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NoFileExists(t, target)
}

func TestSaveToWriterWithoutExtensionAppendsPNG(t *testing.T) {
	test.NewTempApp(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "idcard")

	writer, err := storage.Writer(storage.NewFileURI(target))
	require.NoError(t, err)

	written, err := NewSaver(nil, nil).SaveToWriter(writer, solid(6, 3, color.White))
	require.NoError(t, err)
	assert.Equal(t, target+".png", written.Path())
	assert.Equal(t, []string{"idcard.png"}, dirEntries(t, dir), "extensionless file is not left behind")

	img, format := decodeFile(t, written.Path())
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Pt(6, 3), img.Bounds().Size())
}
