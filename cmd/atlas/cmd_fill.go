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
	"errors"
	"fmt"

	"github.com/botobag/atlas/de"
	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/internal/config"
	"github.com/botobag/atlas/jsonwriter"

	"github.com/spf13/cobra"
)

var fillCmd = &cobra.Command{
	Use:   "fill <file>",
	Short: "Print a document followed by the definitions it uses from other documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)
}

// fillResult is the JSON rendition of the fill command.
type fillResult struct {
	added  []de.Def
	errors []error
}

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (result fillResult) MarshalJSONTo(stream *jsonwriter.Stream) error {
	stream.WriteObjectStart()
	stream.WriteObjectField("definitions")
	if len(result.added) == 0 {
		stream.WriteEmptyArray()
	} else {
		stream.WriteArrayStart()
		for i, def := range result.added {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectStart()
			stream.WriteObjectField("ref")
			stream.WriteString(def.Ref.String())
			stream.WriteMore()
			stream.WriteObjectField("sdl")
			stream.WriteString(ast.Print(def.Definition))
			stream.WriteObjectEnd()
		}
		stream.WriteArrayEnd()
	}
	stream.WriteMore()
	stream.WriteObjectField("errors")
	stream.WriteValue(errorList(result.errors))
	stream.WriteObjectEnd()
	return nil
}

func runFill(cmd *cobra.Command, args []string) error {
	name := documentArg(args)
	w, err := openWorkspace(cmd.Context(), name)
	if err != nil {
		return err
	}

	if cfg.Output == config.OutputJSON {
		added, errs := w.Fill(name)
		if err := writeJSON(cmd.OutOrStdout(), fillResult{added, errs}); err != nil {
			return err
		}
		return failIf(errs)
	}

	doc, errs := w.Compose(name)
	if len(doc.Definitions) > 0 {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), ast.Print(doc)); err != nil {
			return err
		}
	}
	if err := reportErrors(cmd.ErrOrStderr(), errs); err != nil {
		return err
	}
	return failIf(errs)
}

// failIf returns an error summarizing errs if there is any.
func failIf(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errors.New("found 1 error")
	}
	return fmt.Errorf("found %d errors", len(errs))
}
