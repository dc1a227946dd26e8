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
	"bytes"
	"fmt"
	"reflect"
)

// ValueMarshaler is implemented by types that write themselves to a Stream.
type ValueMarshaler interface {
	MarshalJSONTo(stream *Stream) error
}

func isNilPointer(v ValueMarshaler) bool {
	value := reflect.ValueOf(v)
	return value.Kind() == reflect.Ptr && value.IsNil()
}

// WriteValue writes v. A nil pointer is written as null.
func (stream *Stream) WriteValue(v ValueMarshaler) {
	if stream.err != nil {
		return
	}

	if isNilPointer(v) {
		stream.WriteNil()
		return
	}

	if err := v.MarshalJSONTo(stream); err != nil && stream.err == nil {
		stream.err = fmt.Errorf("jsonwriter: cannot encode %T: %w", v, err)
	}
}

// Marshal returns the JSON encoding of v. It lets a ValueMarshaler implement json.Marshaler.
func Marshal(v ValueMarshaler) ([]byte, error) {
	if isNilPointer(v) {
		return []byte("null"), nil
	}

	var (
		buf    bytes.Buffer
		stream = NewStream(&buf)
	)

	if err := v.MarshalJSONTo(stream); err != nil {
		return nil, err
	}
	if err := stream.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
