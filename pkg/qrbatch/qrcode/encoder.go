// Package qrcode renders text as QR code PNG images.
package qrcode

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"rsc.io/qr"
)

// Level is the error correction level of a symbol.
type Level string

const (
	// LevelL recovers about 7% of the symbol.
	LevelL Level = "L"
	// LevelM recovers about 15% of the symbol.
	LevelM Level = "M"
	// LevelQ recovers about 25% of the symbol.
	LevelQ Level = "Q"
	// LevelH recovers about 30% of the symbol.
	LevelH Level = "H"
)

// ErrInvalidParams indicates encoder parameters that cannot produce an image.
var ErrInvalidParams = errors.New("invalid qr code parameters")

var recoveryLevels = map[Level]qr.Level{
	LevelL: qr.L,
	LevelM: qr.M,
	LevelQ: qr.Q,
	LevelH: qr.H,
}

// ParseLevel reads an error correction level name (L, M, Q or H, any case).
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := recoveryLevels[l]; !ok {
		return "", fmt.Errorf("%w: error correction level %q", ErrInvalidParams, s)
	}
	return l, nil
}

// Params controls symbol rendering.
type Params struct {
	// Level is the error correction level.
	Level Level `json:"level"`
	// ModuleSize is the width in pixels of one module.
	ModuleSize int `json:"module_size"`
	// Border is the quiet zone width in modules.
	Border int `json:"border"`
}

// DefaultParams returns level L, 10 pixel modules and a 4 module border.
func DefaultParams() Params {
	return Params{
		Level:      LevelL,
		ModuleSize: 10,
		Border:     4,
	}
}

// Validate checks that p can produce an image.
func (p Params) Validate() error {
	if _, ok := recoveryLevels[p.Level]; !ok {
		return fmt.Errorf("%w: error correction level %q", ErrInvalidParams, p.Level)
	}
	if p.ModuleSize <= 0 {
		return fmt.Errorf("%w: module size %d", ErrInvalidParams, p.ModuleSize)
	}
	if p.Border < 0 {
		return fmt.Errorf("%w: border %d", ErrInvalidParams, p.Border)
	}
	return nil
}

var palette = color.Palette{color.White, color.Black}

// Encode renders text using the smallest symbol version that holds it at
// p.Level. Text beyond the largest version's capacity is an error.
func Encode(text string, p Params) (image.Image, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	code, err := qr.Encode(text, recoveryLevels[p.Level])
	if err != nil {
		return nil, err
	}

	modules := code.Size + 2*p.Border
	size := modules * p.ModuleSize
	img := image.NewPaletted(image.Rect(0, 0, size, size), palette)

	for y := 0; y < code.Size; y++ {
		for x := 0; x < code.Size; x++ {
			if !code.Black(x, y) {
				continue
			}
			x0 := (x + p.Border) * p.ModuleSize
			y0 := (y + p.Border) * p.ModuleSize
			for dy := 0; dy < p.ModuleSize; dy++ {
				row := img.Pix[(y0+dy)*img.Stride:]
				for dx := 0; dx < p.ModuleSize; dx++ {
					row[x0+dx] = 1
				}
			}
		}
	}

	return img, nil
}

// Save writes img to path as PNG, replacing any existing file.
func Save(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Writer encodes text and saves the result in one step.
type Writer struct {
	Params Params
}

// NewWriter returns a Writer using p.
func NewWriter(p Params) *Writer {
	return &Writer{Params: p}
}

// WriteFile encodes text and saves it as a PNG at path.
func (w *Writer) WriteFile(text, path string) error {
	img, err := Encode(text, w.Params)
	if err != nil {
		return err
	}
	return Save(img, path)
}
