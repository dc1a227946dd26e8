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
	"strings"

	"github.com/botobag/atlas/de"
	"github.com/botobag/atlas/graphql"
	"github.com/botobag/atlas/iterator"
	"github.com/botobag/atlas/jsonwriter"

	"github.com/spf13/cobra"
)

var refsCmd = &cobra.Command{
	Use:   "refs <file>",
	Short: "Print the reference of every node in a document as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runRefs,
}

func init() {
	rootCmd.AddCommand(refsCmd)
}

// refList encodes the located nodes of a document as a JSON array.
type refList []de.LocatedNode

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (refs refList) MarshalJSONTo(stream *jsonwriter.Stream) error {
	if len(refs) == 0 {
		stream.WriteEmptyArray()
		return nil
	}

	stream.WriteArrayStart()
	for i, ln := range refs {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectStart()
		stream.WriteObjectField("node")
		stream.WriteString(strings.TrimPrefix(fmt.Sprintf("%T", ln.Node), "*"))
		if location, ok := graphql.ErrorLocationOfASTNode(ln.Node); ok {
			stream.WriteMore()
			stream.WriteObjectField("line")
			stream.WriteUint(location.Line)
			stream.WriteMore()
			stream.WriteObjectField("column")
			stream.WriteUint(location.Column)
		}
		stream.WriteMore()
		stream.WriteObjectField("ref")
		stream.WriteString(ln.Ref.String())
		stream.WriteObjectEnd()
	}
	stream.WriteArrayEnd()
	return nil
}

func runRefs(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(cmd.Context(), documentArg(args))
	if err != nil {
		return err
	}

	located, err := w.Resolve(documentArg(args))
	if err != nil {
		return err
	}

	refs, err := iterator.Collect(located.RefsIn(located.Document().Definitions...).Next)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), refList(refs))
}
