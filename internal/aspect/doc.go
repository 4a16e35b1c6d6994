// AspectPad - Social Preview Image Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectpad

/*
Package aspect pads images to a fixed width:height ratio with white borders.

ComputePadding is the pure geometry. For a 2000x1000 image and ratio 1.91:

	newHeight = round(2000 / 1.91) = 1047
	extra     = 1047 - 1000        = 47
	top       = round(47 / 2)      = 24
	bottom    = 47 - 24            = 23

Padder.Normalize decodes with disintegration/imaging, pastes the original
unshifted onto a white canvas and re-encodes in the source format (JPEG, PNG,
GIF, TIFF or BMP). Images already at the ratio are returned byte for byte.

The package does no logging and no I/O beyond the byte slices it is given.
*/
package aspect
