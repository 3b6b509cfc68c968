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

package cie

import "strings"

// Standard daylight illuminants as CIE 1931 2 degree observer
// chromaticities.
var (
	D50 = Chromaticity{0.34567, 0.35850}
	D55 = Chromaticity{0.33242, 0.34743}
	D60 = Chromaticity{0.32168, 0.33767}
	D65 = Chromaticity{0.31271, 0.32902}
	D75 = Chromaticity{0.29902, 0.31485}
)

// An RGBSpace describes a standard RGB colour space by its white point and
// its RGB to XYZ conversion matrix. The columns of M are the tristimulus
// values of the red, green and blue primaries at full intensity.
type RGBSpace struct {
	Name  string
	White Chromaticity
	M     [3][3]float64
}

// Red returns the tristimulus value of the red primary,
// the first column of the conversion matrix.
func (s *RGBSpace) Red() XYZ {
	return XYZ{X: s.M[0][0], Y: s.M[1][0], Z: s.M[2][0]}
}

// Green returns the tristimulus value of the green primary.
func (s *RGBSpace) Green() XYZ {
	return XYZ{X: s.M[0][1], Y: s.M[1][1], Z: s.M[2][1]}
}

// Blue returns the tristimulus value of the blue primary.
func (s *RGBSpace) Blue() XYZ {
	return XYZ{X: s.M[0][2], Y: s.M[1][2], Z: s.M[2][2]}
}

// WhitePoint returns the white point as a tristimulus value with Y = 1.
func (s *RGBSpace) WhitePoint() XYZ {
	return s.White.XYZ(1)
}

// BT.709 and sRGB share primaries and white point, and with that the
// conversion matrix (IEC 61966-2-1 annex,  ITU-R BT.709-6).
var rec709Matrix = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// The standard RGB colour spaces known to this package.
var (
	SRGB = &RGBSpace{
		Name:  "sRGB",
		White: D65,
		M:     rec709Matrix,
	}

	BT709 = &RGBSpace{
		Name:  "BT.709",
		White: D65,
		M:     rec709Matrix,
	}

	AdobeRGB = &RGBSpace{
		Name:  "Adobe RGB (1998)",
		White: D65,
		M: [3][3]float64{
			{0.5767309, 0.1855540, 0.1881852},
			{0.2973769, 0.6273491, 0.0752741},
			{0.0270343, 0.0706872, 0.9911085},
		},
	}

	DisplayP3 = &RGBSpace{
		Name:  "Display P3",
		White: D65,
		M: [3][3]float64{
			{0.4865709, 0.2656677, 0.1982173},
			{0.2289746, 0.6917385, 0.0792869},
			{0.0000000, 0.0451134, 1.0439444},
		},
	}

	// DCI-P3 uses the cinema white point, not a daylight illuminant.
	DCIP3 = &RGBSpace{
		Name:  "DCI-P3",
		White: Chromaticity{0.31400, 0.35100},
		M: [3][3]float64{
			{0.4451698, 0.2771344, 0.1722826},
			{0.2094917, 0.7215952, 0.0689131},
			{0.0000000, 0.0470606, 0.9073554},
		},
	}

	BT2020 = &RGBSpace{
		Name:  "BT.2020",
		White: D65,
		M: [3][3]float64{
			{0.6369580, 0.1446169, 0.1688810},
			{0.2627002, 0.6779981, 0.0593017},
			{0.0000000, 0.0280727, 1.0609851},
		},
	}
)

// Spaces lists the standard colour spaces in display order.
var Spaces = []*RGBSpace{SRGB, BT709, AdobeRGB, DisplayP3, DCIP3, BT2020}

// SpaceByName returns the colour space with the given name, ignoring case.
// It returns nil if the name is not known.
func SpaceByName(name string) *RGBSpace {
	for _, s := range Spaces {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}
