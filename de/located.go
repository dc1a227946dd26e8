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

// Package de connects located documents: it attaches graph-qualified references to the nodes of
// a document, walks the references reachable from a set of definitions and fills in the
// definitions that a document needs from an atlas of other documents.
package de

import (
	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/graphql/ast/visitor"
	"github.com/botobag/atlas/iterator"
	"github.com/botobag/atlas/link"
	"github.com/botobag/atlas/scope"
)

// LocatedNode pairs a locatable node with its reference.
type LocatedNode struct {
	Node ast.Node
	Ref  link.Ref
}

// Located is a document whose locatable nodes carry references. It is immutable.
type Located struct {
	doc   ast.Document
	scope *scope.Scope
	refs  map[ast.Node]link.Ref

	// memo caches the references reachable from each definition.
	memo map[ast.Definition][]LocatedNode
}

// Locate resolves every locatable node of doc in sc in a single pass. Locatable nodes are type and
// directive definitions, type extensions, schema definitions and extensions, directive uses and
// named types.
func Locate(doc ast.Document, sc *scope.Scope) *Located {
	located := &Located{
		doc:   doc,
		scope: sc,
		refs:  map[ast.Node]link.Ref{},
		memo:  map[ast.Definition][]LocatedNode{},
	}

	visitor.Walk(doc, &visitor.NodeVisitorFuncs{
		Enter: func(node ast.Node, info *visitor.Info) visitor.Result {
			if isLocatable(node) {
				if ref := sc.Locate(node); !ref.IsZero() {
					located.refs[node] = ref
				}
			}
			return visitor.Continue
		},
	})

	return located
}

// isLocatable returns true for the nodes that Scope.Locate resolves. Only these nodes are used as
// map keys; other nodes (e.g., lists) may not be comparable.
func isLocatable(node ast.Node) bool {
	switch node.(type) {
	case *ast.SchemaDefinition,
		*ast.SchemaExtension,
		*ast.DirectiveDefinition,
		*ast.Directive,
		ast.TypeDefinition,
		ast.TypeExtension,
		ast.NamedType:
		return true
	}
	return false
}

// Document returns the located document.
func (located *Located) Document() ast.Document {
	return located.doc
}

// Scope returns the scope that the document was located in.
func (located *Located) Scope() *scope.Scope {
	return located.scope
}

// RefOf returns the reference attached to node.
func (located *Located) RefOf(node ast.Node) (link.Ref, bool) {
	if !isLocatable(node) {
		return link.Ref{}, false
	}
	ref, exists := located.refs[node]
	return ref, exists
}

// refsOf computes the located nodes reachable from def in pre-order, def included.
func (located *Located) refsOf(def ast.Definition) []LocatedNode {
	if nodes, exists := located.memo[def]; exists {
		return nodes
	}

	nodes := []LocatedNode{}
	visitor.Walk(def, &visitor.NodeVisitorFuncs{
		Enter: func(node ast.Node, info *visitor.Info) visitor.Result {
			if ref, exists := located.RefOf(node); exists {
				nodes = append(nodes, LocatedNode{node, ref})
			}
			return visitor.Continue
		},
	})

	located.memo[def] = nodes
	return nodes
}

// RefsIn returns an iterator over the located nodes reachable from defs: each definition itself
// followed by the nodes inside it, in source order. Nodes of other documents are skipped. The
// references of a definition are computed on first use and cached.
func (located *Located) RefsIn(defs ...ast.Definition) *RefIterator {
	return &RefIterator{
		located: located,
		defs:    defs,
	}
}

// RefIterator iterates located nodes.
type RefIterator struct {
	located *Located
	defs    []ast.Definition
	current []LocatedNode
}

// Next returns the next located node. It returns iterator.Done as error when there are no more
// nodes.
func (iter *RefIterator) Next() (LocatedNode, error) {
	for len(iter.current) == 0 {
		if len(iter.defs) == 0 {
			return LocatedNode{}, iterator.Done
		}
		iter.current = iter.located.refsOf(iter.defs[0])
		iter.defs = iter.defs[1:]
	}

	node := iter.current[0]
	iter.current = iter.current[1:]
	return node, nil
}
