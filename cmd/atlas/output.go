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

package main

import (
	"fmt"
	"io"

	"github.com/botobag/atlas/graphql"
	"github.com/botobag/atlas/internal/config"
	"github.com/botobag/atlas/jsonwriter"
)

// errorList is a list of errors encoded as a JSON array.
type errorList []error

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (errs errorList) MarshalJSONTo(stream *jsonwriter.Stream) error {
	if len(errs) == 0 {
		stream.WriteEmptyArray()
		return nil
	}

	stream.WriteArrayStart()
	for i, err := range errs {
		if i > 0 {
			stream.WriteMore()
		}
		if _, ok := err.(*graphql.Error); ok {
			stream.WriteInterface(err)
		} else {
			stream.WriteObjectStart()
			stream.WriteObjectField("message")
			stream.WriteString(err.Error())
			stream.WriteObjectEnd()
		}
	}
	stream.WriteArrayEnd()
	return nil
}

// writeJSON encodes v to w followed by a new line.
func writeJSON(w io.Writer, v jsonwriter.ValueMarshaler) error {
	stream := jsonwriter.NewStream(w)
	stream.WriteValue(v)
	stream.WriteRawString("\n")
	return stream.Flush()
}

// reportErrors prints errs to w in the configured output format.
func reportErrors(w io.Writer, errs []error) error {
	if cfg.Output == config.OutputJSON {
		return writeJSON(w, errorList(errs))
	}

	for _, err := range errs {
		if _, e := fmt.Fprintln(w, err); e != nil {
			return e
		}
	}
	return nil
}
