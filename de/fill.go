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

package de

import (
	"fmt"

	"github.com/botobag/atlas/graphql"
	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/internal/util"
	"github.com/botobag/atlas/iterator"
	"github.com/botobag/atlas/link"
)

// maxSuggestions limits the names offered in a NoDefinition error.
const maxSuggestions = 5

type filler struct {
	atlas *Definitions

	// resolved holds the references defined in the source or filled from the atlas.
	resolved map[link.Ref]bool
	failed   map[link.Ref]bool

	// citations lists the nodes that refer to each pending or failed reference.
	citations map[link.Ref][]ast.Node
	queue     []link.Ref
	missing   []link.Ref
}

// Fill computes the definitions that source needs from atlas: the transitive closure of the
// references reachable from source whose definitions are not in source. atlas may be nil. Fill
// returns only the definitions added from atlas, in the order they were resolved, along with a
// NoDefinition error for each reference defined nowhere. Each error cites every node that refers
// to the missing definition.
func Fill(source *Definitions, atlas *Definitions) ([]Def, graphql.Errors) {
	f := &filler{
		atlas:     atlas,
		resolved:  map[link.Ref]bool{},
		failed:    map[link.Ref]bool{},
		citations: map[link.Ref][]ast.Node{},
	}

	for _, ref := range source.Refs() {
		f.resolved[ref] = true
	}
	for _, ref := range source.Refs() {
		f.ingest(source.ByRef(ref))
	}

	var added []Def
	for len(f.queue) > 0 {
		ref := f.queue[0]
		f.queue = f.queue[1:]

		if f.resolved[ref] || f.failed[ref] {
			continue
		}

		defs := atlas.ByRef(ref)
		if len(defs) == 0 {
			f.failed[ref] = true
			f.missing = append(f.missing, ref)
			continue
		}

		f.resolved[ref] = true
		added = append(added, defs...)
		f.ingest(defs)
	}

	var errs graphql.Errors
	for _, ref := range f.missing {
		errs.Append(f.noDefinition(ref))
	}
	return added, errs
}

// ingest queues the references made by defs.
func (f *filler) ingest(defs []Def) {
	for _, def := range defs {
		iter := def.Located.RefsIn(def.Definition)
		for {
			node, err := iter.Next()
			if err == iterator.Done {
				break
			}

			if node.Node == ast.Node(def.Definition) || node.Ref.Term().Kind == link.TermSchema {
				continue
			}

			ref := node.Ref
			if f.resolved[ref] {
				continue
			}
			if _, pending := f.citations[ref]; !pending {
				f.queue = append(f.queue, ref)
			}
			f.citations[ref] = append(f.citations[ref], node.Node)
		}
	}
}

func (f *filler) noDefinition(ref link.Ref) error {
	const op graphql.Op = "de.Fill"

	message := fmt.Sprintf("no definitions found for %s", ref)
	if suggestions := f.suggest(ref); len(suggestions) > 0 {
		message += ". Did you mean " + util.OrList(suggestions, maxSuggestions, true) + "?"
	}

	return graphql.NewError(message,
		graphql.ErrCodeNoDefinition,
		graphql.ErrKindResolution,
		op,
		f.citations[ref],
		graphql.ErrorExtensions{
			"ref": ref.String(),
		},
	)
}

// suggest returns the names in the graph of ref that are defined in the atlas and look like the
// missing one.
func (f *filler) suggest(ref link.Ref) []string {
	term := ref.Term()
	if len(term.Name) == 0 {
		return nil
	}

	var options []string
	for _, candidate := range f.atlas.Refs() {
		if candidate.Graph() == ref.Graph() && candidate.Term().Kind == term.Kind {
			options = append(options, candidate.Term().Name)
		}
	}

	suggestions := util.SuggestionList(term.Name, options)
	if term.Kind == link.TermDirective {
		for i := range suggestions {
			suggestions[i] = "@" + suggestions[i]
		}
	}
	return suggestions
}
