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

package pdf

import (
	"errors"
	"fmt"
)

// The failure classes of the codec. Errors returned by this package wrap
// one of these values, so callers can test for a class with errors.Is
// while the message carries the tag signature, offset and sizes involved.
var (
	// ErrInvalidSignature means text cannot be encoded as a four-byte
	// ASCII signature.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrOverflow means a number does not fit its fixed-point wire
	// representation.
	ErrOverflow = errors.New("fixed-point value out of range")

	// ErrTruncatedHeader means less than a full 128-byte header is
	// available.
	ErrTruncatedHeader = errors.New("truncated header")

	// ErrHeaderSize means an encoded header did not come out at exactly
	// 128 bytes.
	ErrHeaderSize = errors.New("header size mismatch")

	// ErrMissingSignature means the mandatory 'acsp' signature is absent.
	ErrMissingSignature = errors.New("missing 'acsp' signature")

	// ErrRecordOutOfBounds means a record inside a tag points past the
	// end of the tag's data.
	ErrRecordOutOfBounds = errors.New("record out of bounds")

	// ErrTagOutOfBounds means a directory entry points outside the file.
	ErrTagOutOfBounds = errors.New("tag out of bounds")

	// ErrTagOverlap means a directory entry points into the header or
	// the tag table.
	ErrTagOverlap = errors.New("tag overlaps header or tag table")

	// ErrSizeMismatch means an assembled byte count disagrees with the
	// computed total.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrMalformedTag means tag data does not have the type signature or
	// shape required for the requested interpretation.
	ErrMalformedTag = errors.New("malformed tag data")
)

// InvalidProfileError reports a structural problem in profile data,
// together with the byte offset at which it was found.
type InvalidProfileError struct {
	Offset int
	Err    error
}

func invalidProfile(offset int, err error) error {
	return &InvalidProfileError{Offset: offset, Err: err}
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("icc: invalid profile (byte %d): %v", e.Offset, e.Err)
}

func (e *InvalidProfileError) Unwrap() error {
	return e.Err
}
