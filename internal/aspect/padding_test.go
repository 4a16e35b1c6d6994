// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

package aspect

import (
	"errors"
	"math"
	"testing"
)

func TestComputePadding(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          Padding
	}{
		{"wide 2000x1000", 2000, 1000, Padding{Top: 24, Bottom: 23}},
		{"tall 1000x2000", 1000, 2000, Padding{Left: 1410, Right: 1410}},
		{"square 500x500", 500, 500, Padding{Left: 228, Right: 227}},
		{"exact 191x100", 191, 100, Padding{}},
		{"exact 1910x1000", 1910, 1000, Padding{}},
		{"slightly wide 1911x1000", 1911, 1000, Padding{Top: 1, Bottom: 0}},
		{"banner 3000x100", 3000, 100, Padding{Top: 736, Bottom: 735}},
		{"single pixel", 1, 1, Padding{Left: 1, Right: 0}},
		{"og 1200x630", 1200, 630, Padding{Left: 2, Right: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputePadding(tt.width, tt.height, 1.91)
			if err != nil {
				t.Fatalf("ComputePadding() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ComputePadding(%d, %d) = %+v, want %+v", tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestComputePadding_Properties(t *testing.T) {
	const ratio = 1.91

	for w := 1; w <= 400; w += 7 {
		for h := 1; h <= 400; h += 11 {
			p, err := ComputePadding(w, h, ratio)
			if err != nil {
				t.Fatalf("ComputePadding(%d, %d) error = %v", w, h, err)
			}

			if p.Top < 0 || p.Bottom < 0 || p.Left < 0 || p.Right < 0 {
				t.Fatalf("ComputePadding(%d, %d) = %+v has negative side", w, h, p)
			}
			if p.Vertical() > 0 && p.Horizontal() > 0 {
				t.Fatalf("ComputePadding(%d, %d) = %+v pads both axes", w, h, p)
			}

			current := float64(w) / float64(h)
			if current > ratio && p.Horizontal() != 0 {
				t.Fatalf("wide %dx%d padded horizontally: %+v", w, h, p)
			}
			if current < ratio && p.Vertical() != 0 {
				t.Fatalf("tall %dx%d padded vertically: %+v", w, h, p)
			}

			if d := p.Top - p.Bottom; d < -1 || d > 1 {
				t.Fatalf("vertical split %+v not symmetric within one pixel", p)
			}
			if d := p.Left - p.Right; d < -1 || d > 1 {
				t.Fatalf("horizontal split %+v not symmetric within one pixel", p)
			}

			nw, nh := p.Size(w, h)
			if current > ratio {
				if want := int(math.Round(float64(nw) / ratio)); nh != want {
					t.Fatalf("%dx%d -> %dx%d, want height %d", w, h, nw, nh, want)
				}
			}
			if current < ratio {
				if want := int(math.Round(float64(nh) * ratio)); nw != want {
					t.Fatalf("%dx%d -> %dx%d, want width %d", w, h, nw, nh, want)
				}
			}
		}
	}
}

func TestComputePadding_InvalidInput(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		ratio         float64
		wantErr       error
	}{
		{"zero width", 0, 100, 1.91, ErrDecode},
		{"zero height", 100, 0, 1.91, ErrDecode},
		{"negative", -5, 100, 1.91, ErrDecode},
		{"zero ratio", 100, 100, 0, ErrInvalidRatio},
		{"negative ratio", 100, 100, -1, ErrInvalidRatio},
		{"nan ratio", 100, 100, math.NaN(), ErrInvalidRatio},
		{"inf ratio", 100, 100, math.Inf(1), ErrInvalidRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputePadding(tt.width, tt.height, tt.ratio)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ComputePadding() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPadding_Helpers(t *testing.T) {
	p := Padding{Top: 24, Bottom: 23}
	if p.IsZero() {
		t.Error("IsZero() = true, want false")
	}
	if p.Vertical() != 47 || p.Horizontal() != 0 {
		t.Errorf("Vertical/Horizontal = %d/%d, want 47/0", p.Vertical(), p.Horizontal())
	}
	if w, h := p.Size(2000, 1000); w != 2000 || h != 1047 {
		t.Errorf("Size() = %dx%d, want 2000x1047", w, h)
	}
	if !(Padding{}).IsZero() {
		t.Error("zero Padding should report IsZero")
	}
}
