// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package aspect

import (
	"fmt"
	"math"
)

// Padding is the number of pixels added on each side of an image.
// At most one pair (Top/Bottom or Left/Right) is non-zero.
type Padding struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

// IsZero reports whether no padding is needed.
func (p Padding) IsZero() bool {
	return p == Padding{}
}

// Vertical returns Top+Bottom.
func (p Padding) Vertical() int {
	return p.Top + p.Bottom
}

// Horizontal returns Left+Right.
func (p Padding) Horizontal() int {
	return p.Left + p.Right
}

// Size returns the canvas size after applying p to a width x height image.
func (p Padding) Size(width, height int) (int, int) {
	return width + p.Horizontal(), height + p.Vertical()
}

// ComputePadding returns the padding that brings a width x height image to
// ratio (width/height). Images wider than ratio are padded top and bottom;
// taller ones left and right. The extra pixels are split with the first side
// getting round(extra/2) and the second side the remainder.
func ComputePadding(width, height int, ratio float64) (Padding, error) {
	if width <= 0 || height <= 0 {
		return Padding{}, fmt.Errorf("%w: non-positive dimensions %dx%d", ErrDecode, width, height)
	}
	if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return Padding{}, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	current := float64(width) / float64(height)

	switch {
	case current > ratio:
		newHeight := int(math.Round(float64(width) / ratio))
		extra := newHeight - height
		if extra <= 0 {
			return Padding{}, nil
		}
		top := int(math.Round(float64(extra) / 2))
		return Padding{Top: top, Bottom: extra - top}, nil

	case current < ratio:
		newWidth := int(math.Round(float64(height) * ratio))
		extra := newWidth - width
		if extra <= 0 {
			return Padding{}, nil
		}
		left := int(math.Round(float64(extra) / 2))
		return Padding{Left: left, Right: extra - left}, nil

	default:
		return Padding{}, nil
	}
}
