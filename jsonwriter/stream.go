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

// Package jsonwriter writes JSON to an io.Writer token by token. It is used where the output is
// produced by walking a structure (printed string literals, command line reports) so that no
// intermediate values need to be built for encoding/json.
package jsonwriter

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

const initialStreamBufSize = 512

// Stream buffers writes in front of an io.Writer.
type Stream struct {
	w   io.Writer
	buf []byte

	// scratch is used to format numbers.
	scratch [64]byte

	// err is the first error that occurred. Writes are discarded once it is set.
	err error
}

// NewStream creates a stream for writing data in JSON encoding.
func NewStream(w io.Writer) *Stream {
	return &Stream{
		w:   w,
		buf: make([]byte, 0, initialStreamBufSize),
	}
}

// Error returns error occurred during use of the stream.
func (stream *Stream) Error() error {
	return stream.err
}

func (stream *Stream) write(b []byte) {
	if stream.err != nil {
		return
	}

	if len(stream.buf)+len(b) < initialStreamBufSize {
		stream.buf = append(stream.buf, b...)
		return
	}

	if stream.flushBuffer() != nil {
		return
	}
	if len(b) > 0 {
		if _, err := stream.w.Write(b); err != nil {
			stream.err = err
		}
	}
}

func (stream *Stream) flushBuffer() error {
	if len(stream.buf) == 0 {
		return nil
	}

	_, err := stream.w.Write(stream.buf)
	stream.buf = stream.buf[:0]
	if err != nil {
		stream.err = err
	}
	return err
}

// Flush writes any buffered data to the underlying io.Writer.
func (stream *Stream) Flush() error {
	if stream.err != nil {
		return stream.err
	}
	return stream.flushBuffer()
}

func (stream *Stream) writeByte(b byte) {
	stream.buf = append(stream.buf, b)
}

func (stream *Stream) writeBytes(b ...byte) {
	stream.buf = append(stream.buf, b...)
}

// WriteRawString writes s as is.
func (stream *Stream) WriteRawString(s string) {
	stream.write([]byte(s))
}

// WriteMore writes a ",".
func (stream *Stream) WriteMore() {
	stream.writeByte(',')
}

// WriteArrayStart writes a "[".
func (stream *Stream) WriteArrayStart() {
	stream.writeByte('[')
}

// WriteArrayEnd writes a "]".
func (stream *Stream) WriteArrayEnd() {
	stream.writeByte(']')
}

// WriteEmptyArray writes "[]".
func (stream *Stream) WriteEmptyArray() {
	stream.WriteRawString("[]")
}

// WriteObjectStart writes a "{".
func (stream *Stream) WriteObjectStart() {
	stream.writeByte('{')
}

// WriteObjectField writes a "field:".
func (stream *Stream) WriteObjectField(field string) {
	stream.WriteString(field)
	stream.writeByte(':')
}

// WriteObjectEnd writes a "}".
func (stream *Stream) WriteObjectEnd() {
	stream.writeByte('}')
}

// WriteEmptyObject writes "{}".
func (stream *Stream) WriteEmptyObject() {
	stream.WriteRawString("{}")
}

// WriteBool writes "true" or "false".
func (stream *Stream) WriteBool(b bool) {
	if b {
		stream.WriteRawString("true")
	} else {
		stream.WriteRawString("false")
	}
}

// WriteNil writes "null".
func (stream *Stream) WriteNil() {
	stream.WriteRawString("null")
}

var fallback = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteInterface writes v. Strings, booleans, integers and ValueMarshaler's are written directly;
// everything else (including json.Marshaler's such as graphql.Error) goes through jsoniter.
func (stream *Stream) WriteInterface(v interface{}) {
	if stream.err != nil {
		return
	}

	switch v := v.(type) {
	case nil:
		stream.WriteNil()
	case string:
		stream.WriteString(v)
	case bool:
		stream.WriteBool(v)
	case int:
		stream.WriteInt(v)
	case int64:
		stream.WriteInt64(v)
	case uint:
		stream.WriteUint(v)
	case uint64:
		stream.WriteUint64(v)
	case ValueMarshaler:
		stream.WriteValue(v)
	default:
		data, err := fallback.Marshal(v)
		if err != nil {
			stream.err = fmt.Errorf("jsonwriter: cannot encode %T: %w", v, err)
			return
		}
		stream.write(data)
	}
}
