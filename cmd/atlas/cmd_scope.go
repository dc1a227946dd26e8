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

	"github.com/botobag/atlas/iterator"
	"github.com/botobag/atlas/scope"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"
)

var scopeCmd = &cobra.Command{
	Use:   "scope <file>",
	Short: "Print the names bound in the scope of a document and its parents",
	Args:  cobra.ExactArgs(1),
	RunE:  runScope,
}

func init() {
	rootCmd.AddCommand(scopeCmd)
}

func runScope(cmd *cobra.Command, args []string) error {
	w, err := openWorkspace(cmd.Context(), documentArg(args))
	if err != nil {
		return err
	}

	sc, err := w.Scope(documentArg(args))
	if err != nil {
		return err
	}

	tree, err := scopeTree(documentArg(args), sc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), tree.String())
	return err
}

// scopeTree renders sc as a tree with one branch per level of the scope chain.
func scopeTree(name string, sc *scope.Scope) (treeprint.Tree, error) {
	tree := treeprint.NewWithRoot(name)
	for ; sc != nil; sc = sc.Parent() {
		label := "(anonymous)"
		if u := sc.URL(); !u.IsZero() {
			label = u.String()
		}
		branch := tree.AddBranch(label)

		iter := sc.Entries()
		for {
			l, _, err := iter.Next()
			if err == iterator.Done {
				break
			} else if err != nil {
				return nil, err
			}

			name := l.Name
			if len(name) == 0 {
				name = "(self)"
			}
			branch.AddMetaNode(name, l.Ref.String())
		}
	}
	return tree, nil
}
