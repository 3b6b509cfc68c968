// github.com/ttys001/MHC-ICC-Profile-Maker - create and inspect ICC display profiles
// Copyright (C) 2026  ttys001
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package cie provides the small amount of colorimetry needed to populate
// ICC profile tags: conversions between CIE 1931 chromaticity coordinates
// and tristimulus values, the standard daylight illuminants, and the
// primaries and white points of common RGB colour spaces.
package cie

// XYZ is a CIE 1931 tristimulus value.
type XYZ struct {
	X, Y, Z float64
}

// Chromaticity is a point in the CIE 1931 (x, y) chromaticity diagram.
type Chromaticity struct {
	X, Y float64
}

// XYZ lifts the chromaticity to a tristimulus value with luminance lum,
// using X = x*lum/y and Z = (1-x-y)*lum/y. For y = 0 there is no finite
// tristimulus value and the zero value is returned instead.
func (c Chromaticity) XYZ(lum float64) XYZ {
	if c.Y == 0 {
		return XYZ{}
	}
	return XYZ{
		X: c.X * lum / c.Y,
		Y: lum,
		Z: (1 - c.X - c.Y) * lum / c.Y,
	}
}

// Chromaticity projects v onto the chromaticity diagram, returning the
// (x, y) coordinates and the luminance Y. A zero tristimulus value
// projects to zeros.
func (v XYZ) Chromaticity() (Chromaticity, float64) {
	sum := v.X + v.Y + v.Z
	if sum == 0 {
		return Chromaticity{}, 0
	}
	return Chromaticity{X: v.X / sum, Y: v.Y / sum}, v.Y
}

// Normalize scales v so that the luminance component becomes 1.
// The zero value is returned unchanged.
func (v XYZ) Normalize() XYZ {
	if v.Y == 0 {
		return v
	}
	return XYZ{X: v.X / v.Y, Y: 1, Z: v.Z / v.Y}
}
