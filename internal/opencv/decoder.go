// Package opencv decodes images the Go codecs cannot read, such as JPEG
// 2000 or OpenEXR scans, through gocv.
package opencv

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const maxDimension = 32768

var errNotDecoded = errors.New("opencv could not decode image")

// Decoder is a fallback decoder for the image loader.
type Decoder struct {
	flags gocv.IMReadFlag
}

func NewDecoder() *Decoder {
	return &Decoder{flags: gocv.IMReadColor}
}

func (d *Decoder) Name() string {
	return "opencv"
}

func (d *Decoder) Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", errNotDecoded
	}

	mat, err := gocv.IMDecode(data, d.flags)
	if err != nil {
		return nil, "", fmt.Errorf("imdecode: %w", err)
	}
	defer mat.Close()

	if err := validate(mat); err != nil {
		return nil, "", err
	}

	img, err := matToImage(mat)
	if err != nil {
		return nil, "", err
	}
	return img, "opencv", nil
}

func validate(mat gocv.Mat) error {
	if mat.Empty() {
		return errNotDecoded
	}
	rows, cols := mat.Rows(), mat.Cols()
	if rows <= 0 || cols <= 0 || rows > maxDimension || cols > maxDimension {
		return fmt.Errorf("invalid dimensions %dx%d", cols, rows)
	}
	return nil
}

// matToImage copies an 8-bit Mat into a Go image. OpenCV stores colour
// channels as BGR(A).
func matToImage(mat gocv.Mat) (image.Image, error) {
	rows, cols, channels := mat.Rows(), mat.Cols(), mat.Channels()

	data, err := mat.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("mat data access: %w", err)
	}
	if len(data) < rows*cols*channels {
		return nil, fmt.Errorf("mat data too short: %d bytes for %dx%dx%d", len(data), cols, rows, channels)
	}

	switch channels {
	case 1:
		img := image.NewGray(image.Rect(0, 0, cols, rows))
		copy(img.Pix, data[:rows*cols])
		return img, nil
	case 3, 4:
		img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
		for i, j := 0, 0; i < rows*cols; i, j = i+1, j+channels {
			a := uint8(255)
			if channels == 4 {
				a = data[j+3]
			}
			img.Pix[i*4+0] = data[j+2]
			img.Pix[i*4+1] = data[j+1]
			img.Pix[i*4+2] = data[j]
			img.Pix[i*4+3] = a
		}
		return img, nil
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", channels)
	}
}
