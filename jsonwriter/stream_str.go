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

package jsonwriter

import (
	"unicode/utf8"
)

const hex = "0123456789abcdef"

// safeSet[b] is true if the ASCII character b can be written inside a JSON string without escape.
// Unlike encoding/json, HTML characters (<, > and &) are not escaped which matches JSON.stringify.
var safeSet = func() (set [utf8.RuneSelf]bool) {
	for b := 0x20; b < utf8.RuneSelf; b++ {
		set[b] = b != '"' && b != '\\'
	}
	return
}()

// WriteString writes s as a JSON string. Invalid UTF-8 bytes are replaced with U+FFFD.
func (stream *Stream) WriteString(s string) {
	if stream.err != nil {
		return
	}

	stream.writeByte('"')

	// Fast path: scan for the first character that requires escape.
	i := 0
	for ; i < len(s); i++ {
		if b := s[i]; b >= utf8.RuneSelf || !safeSet[b] {
			break
		}
	}
	stream.buf = append(stream.buf, s[:i]...)
	if i == len(s) {
		stream.writeByte('"')
		return
	}

	start := i
	for i < len(s) {
		if b := s[i]; b < utf8.RuneSelf {
			if safeSet[b] {
				i++
				continue
			}
			if start < i {
				stream.buf = append(stream.buf, s[start:i]...)
			}
			switch b {
			case '\\', '"':
				stream.writeBytes('\\', b)
			case '\n':
				stream.writeBytes('\\', 'n')
			case '\r':
				stream.writeBytes('\\', 'r')
			case '\t':
				stream.writeBytes('\\', 't')
			default:
				// Control characters are written as \u00XX.
				stream.writeBytes('\\', 'u', '0', '0', hex[b>>4], hex[b&0xF])
			}
			i++
			start = i
			continue
		}

		c, size := utf8.DecodeRuneInString(s[i:])
		if c == utf8.RuneError && size == 1 {
			if start < i {
				stream.buf = append(stream.buf, s[start:i]...)
			}
			stream.WriteRawString(`\ufffd`)
			i += size
			start = i
			continue
		}

		// U+2028 is LINE SEPARATOR and U+2029 is PARAGRAPH SEPARATOR. They are valid JSON but break
		// JavaScript string literals.
		if c == '\u2028' || c == '\u2029' {
			if start < i {
				stream.buf = append(stream.buf, s[start:i]...)
			}
			stream.WriteRawString(`\u202`)
			stream.writeByte(hex[c&0xF])
			i += size
			start = i
			continue
		}
		i += size
	}

	if start < len(s) {
		stream.buf = append(stream.buf, s[start:]...)
	}
	stream.writeByte('"')
}
