// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package aspect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"

	"github.com/tomtom215/aspectpad/internal/config"
)

var (
	// ErrDecode means the input could not be read as a supported image.
	ErrDecode = errors.New("image decode failed")

	// ErrEncode means the padded image could not be re-encoded.
	ErrEncode = errors.New("image encode failed")

	// ErrTooLarge means the padded canvas would exceed MaxPixels.
	ErrTooLarge = errors.New("padded image too large")

	// ErrInvalidRatio means the target ratio is not a positive finite number.
	ErrInvalidRatio = errors.New("invalid target ratio")
)

// MaxPixels bounds the padded canvas (width*height) to keep a single request
// from allocating gigabytes.
const MaxPixels = 100_000_000

// White is the padding fill colour.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// SourceImage is a fetched image whose header has been read.
type SourceImage struct {
	Data   []byte
	Width  int
	Height int

	// Format is the encoding detected from the content, e.g. "png".
	Format string
	// MIME is the sniffed media type, e.g. "image/png".
	MIME string
}

// ProcessedImage is the result of Normalize.
type ProcessedImage struct {
	Data    []byte
	Width   int
	Height  int
	Format  string
	Padding Padding
}

// Changed reports whether padding was applied.
func (p *ProcessedImage) Changed() bool {
	return !p.Padding.IsZero()
}

// Inspect reads the image header from data without decoding pixels.
// The format comes from the content, never from a file extension.
func Inspect(data []byte) (*SourceImage, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrDecode)
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, fmt.Errorf("%w: content is %s, not an image", ErrDecode, mime.String())
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, mime.String(), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: non-positive dimensions %dx%d", ErrDecode, cfg.Width, cfg.Height)
	}

	return &SourceImage{
		Data:   data,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		MIME:   mime.String(),
	}, nil
}

// Padder pads images to a fixed aspect ratio with white borders, keeping
// the original encoding. It holds no mutable state and is safe for
// concurrent use.
type Padder struct {
	ratio       float64
	jpegQuality int
}

// NewPadder creates a Padder from image settings.
func NewPadder(cfg config.ImageConfig) *Padder {
	quality := cfg.JPEGQuality
	if quality < 1 || quality > 100 {
		quality = 80
	}
	return &Padder{ratio: cfg.TargetRatio, jpegQuality: quality}
}

// Ratio returns the target width:height ratio.
func (p *Padder) Ratio() float64 {
	return p.ratio
}

// Normalize pads data to the target ratio. When no padding is needed the
// input bytes are returned unchanged.
func (p *Padder) Normalize(ctx context.Context, data []byte) (*ProcessedImage, error) {
	src, err := Inspect(data)
	if err != nil {
		return nil, err
	}

	pad, err := ComputePadding(src.Width, src.Height, p.ratio)
	if err != nil {
		return nil, err
	}
	if pad.IsZero() {
		return &ProcessedImage{
			Data:   src.Data,
			Width:  src.Width,
			Height: src.Height,
			Format: src.Format,
		}, nil
	}

	newWidth, newHeight := pad.Size(src.Width, src.Height)
	if int64(newWidth)*int64(newHeight) > MaxPixels {
		return nil, fmt.Errorf("%w: padded size %dx%d exceeds %d pixels", ErrTooLarge, newWidth, newHeight, MaxPixels)
	}

	format, err := imaging.FormatFromExtension(src.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrDecode, src.Format)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	canvas := imaging.New(newWidth, newHeight, White)
	padded := imaging.Paste(canvas, img, image.Pt(pad.Left, pad.Top))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(len(src.Data) + len(src.Data)/4)
	if err := imaging.Encode(&buf, padded, format, imaging.JPEGQuality(p.jpegQuality)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEncode, src.Format, err)
	}

	return &ProcessedImage{
		Data:    buf.Bytes(),
		Width:   newWidth,
		Height:  newHeight,
		Format:  src.Format,
		Padding: pad,
	}, nil
}
