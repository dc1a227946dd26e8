/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package token

import (
	"sort"
	"sync"
	"unicode/utf8"
)

// SourceLocation encodes a position in source file. It lives in the context of Source. Its value is
// an 1-indexed offset relative to the beginning of source measured in bytes. Given a SourceLocation
// value loc and the Source s, you can convert it into larger representation SourceLocationInfo by
// calling s.LocationInfoOf(loc).
type SourceLocation uint

// NoSourceLocation is a special SourceLocation that doesn't exists in any source. Method that deals
// with SourceLocation must take special care to handle this value.
const NoSourceLocation SourceLocation = 0

// IsValid return true if the SourceLocation is valid.
func (location SourceLocation) IsValid() bool {
	return location != NoSourceLocation
}

// SourceBody contains contents of a schema document in a byte sequence.
type SourceBody []byte

// RuneAt decodes a rune at given pos. It also returns the number of bytes occupied by the
// rune.
func (body SourceBody) RuneAt(pos uint) (rune, uint) {
	if uint(len(body)) <= pos {
		// Return -1 to indicate an <EOF>.
		return -1, 0
	}

	// Fast path: characters below Runeself are represented as themselves in a single byte.
	c := body[pos]
	if c < utf8.RuneSelf {
		return rune(c), 1
	}

	r, n := utf8.DecodeRune(body[pos:])
	return r, uint(n)
}

// At returns the byte in the source at given position. Return 0 if the given position is out of
// body's range.
func (body SourceBody) At(pos uint) byte {
	if body.Size() <= pos {
		return 0
	}
	return body[pos]
}

// Size returns the body size in bytes.
func (body SourceBody) Size() uint {
	return uint(len(body))
}

// SourceLocationInfo describes a source location for a SourceLocation with source name, line and
// column number.
type SourceLocationInfo struct {
	Name   string
	Line   uint
	Column uint
}

// SourceConfig specifies configuration of a Source.
type SourceConfig struct {
	Body SourceBody

	// `Name`, `LineOffset` and `ColumnOffset` are optional. They are useful for clients who store
	// schema documents in larger files. For example, if the SDL starts at line 40 in a file named
	// Foo.graphql, it might be useful for `Name` to be "Foo.graphql" with location information
	// `LineOffset: 40` and `ColumnOffset: 0`. `LineOffset` and `ColumnOffset` are both 0-indexed and
	// are both 0 if they're not provided (which also means no offset).
	Name         string
	LineOffset   uint
	ColumnOffset uint
}

// DefaultSourceName is given to a Source created without a name.
const DefaultSourceName = "GraphQL schema"

// lineBreak records a line terminator in the body. A line terminator is either "\n", "\r" or
// "\r\n"; [begin, end) is its byte range.
type lineBreak struct {
	begin uint
	end   uint
}

// Source represent a schema source text.
type Source struct {
	config SourceConfig

	// Line terminators found in the body; Computed on the first call to LocationInfoOf.
	lineBreaksOnce sync.Once
	lineBreaks     []lineBreak
}

// NewSource initializes a Source instance from given config.
func NewSource(config *SourceConfig) *Source {
	source := &Source{
		config: *config,
	}
	if len(config.Name) == 0 {
		source.config.Name = DefaultSourceName
	}
	return source
}

// NewSourceFromString is a shorthand of NewSource for a named source with string contents.
func NewSourceFromString(name string, body string) *Source {
	return NewSource(&SourceConfig{
		Name: name,
		Body: SourceBody(body),
	})
}

// Body returns source.config.Body.
func (source *Source) Body() SourceBody {
	return source.config.Body
}

// Name returns source.config.Name.
func (source *Source) Name() string {
	return source.config.Name
}

// LineOffset returns source.config.LineOffset.
func (source *Source) LineOffset() uint {
	return source.config.LineOffset
}

// ColumnOffset returns source.config.ColumnOffset.
func (source *Source) ColumnOffset() uint {
	return source.config.ColumnOffset
}

// LocationFromPos returns a SourceLocation that represent the location for given position in the
// body.
func (source *Source) LocationFromPos(bytePos uint) SourceLocation {
	if bytePos > source.Body().Size() {
		panic("illegal byte position value")
	}
	return SourceLocation(bytePos + 1)
}

// PosFromLocation is a reverse operation of LocationFromPos. It converts the given SourceLocation
// to the byte position in the source which is a 0-based offset relative to the beginning of the
// source body.
func (source *Source) PosFromLocation(location SourceLocation) uint {
	if !location.IsValid() || uint(location) > (source.Body().Size()+1) {
		panic("illegal location value")
	}
	return uint(location) - 1
}

func (source *Source) computeLineBreaks() {
	body := source.Body()
	size := body.Size()
	for i := uint(0); i < size; i++ {
		switch body[i] {
		case '\r':
			if i+1 < size && body[i+1] == '\n' {
				source.lineBreaks = append(source.lineBreaks, lineBreak{i, i + 2})
				i++
			} else {
				source.lineBreaks = append(source.lineBreaks, lineBreak{i, i + 1})
			}
		case '\n':
			source.lineBreaks = append(source.lineBreaks, lineBreak{i, i + 1})
		}
	}
}

// LocationInfoOf computes and returns a SourceLocationInfo for a given SourceLocation.
//
// A "\r\n" is a single line terminator. Asking for the position of its "\n" yields column 0 of the
// next line, which is what graphql-js and graphql-go report.
func (source *Source) LocationInfoOf(loc SourceLocation) SourceLocationInfo {
	// Handle invalid SourceLocation (NoSourceLocation). This may happen when querying location for
	// special token like SOF which inherently has no source location.
	if !loc.IsValid() {
		return SourceLocationInfo{
			Name: source.Name(),
		}
	}

	source.lineBreaksOnce.Do(source.computeLineBreaks)

	position := uint(loc) - 1
	if size := source.Body().Size(); position > size {
		position = size
	}

	// Number of line terminators that begin before position.
	n := sort.Search(len(source.lineBreaks), func(i int) bool {
		return source.lineBreaks[i].begin >= position
	})

	var (
		line   = uint(n) + 1
		column = position + 1
	)
	if n > 0 {
		column = position + 1 - source.lineBreaks[n-1].end
	}

	return SourceLocationInfo{
		Name:   source.Name(),
		Line:   source.LineOffset() + line,
		Column: source.ColumnOffset() + column,
	}
}
