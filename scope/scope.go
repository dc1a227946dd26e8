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

// Package scope implements the namespaces of schema documents. A Scope maps the short names used
// in a document (type names, directive names with their "@" prefix, link prefixes) to
// graph-qualified references. Entries are established by the link and id directives found on the
// schema definitions and extensions of the document.
package scope

import (
	"strings"

	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/iterator"
	"github.com/botobag/atlas/link"
	"github.com/botobag/atlas/scopemap"

	"github.com/hashicorp/go-hclog"
)

// Link records why a name is visible in a scope.
type Link struct {
	// Name is the key in the scope. Directive names keep their "@" prefix. The empty name is the
	// self link which carries the identity of the document.
	Name string

	// Ref is the reference that the name is bound to.
	Ref link.Ref

	// Via is the directive that produced the entry. It is nil for built-in entries.
	Via *ast.Directive

	// Linker is the directive that taught the scope how to read Via. It is nil for entries produced
	// by @id and for built-in entries.
	Linker *ast.Directive
}

// Scope is a frozen namespace with an optional parent. Lookups that cannot be answered by the scope
// fall back to its ancestors.
type Scope struct {
	parent *Scope
	links  *scopemap.Scope[string, *Link]
	logger hclog.Logger
}

// Option configures a Scope.
type Option func(scope *Scope)

// WithLogger sets the logger that reports skipped directives at DEBUG level. Scopes without a
// logger inherit the one from their parent.
func WithLogger(logger hclog.Logger) Option {
	return func(scope *Scope) {
		scope.logger = logger
	}
}

// ForDocument builds the scope of doc. parent may be nil for a root scope. Pass Builtins() as the
// parent to make the GraphQL built-in types and directives visible.
func ForDocument(doc ast.Document, parent *Scope, options ...Option) *Scope {
	scope := &Scope{
		parent: parent,
	}

	for _, option := range options {
		option(scope)
	}

	if scope.logger == nil {
		if parent != nil {
			scope.logger = parent.logger
		} else {
			scope.logger = hclog.NewNullLogger()
		}
	}

	init := func(setter *scopemap.Setter[string, *Link]) {
		newBootstrapper(scope.logger, setter).run(schemaDirectives(doc))
	}

	if parent != nil {
		scope.links = parent.links.Child(init)
	} else {
		scope.links = scopemap.New(init)
	}

	return scope
}

// Child builds the scope of a document nested in scope.
func (scope *Scope) Child(doc ast.Document, options ...Option) *Scope {
	return ForDocument(doc, scope, options...)
}

// schemaDirectives collects the directives on all schema definitions and extensions of doc in
// document order.
func schemaDirectives(doc ast.Document) ast.Directives {
	var directives ast.Directives
	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.SchemaDefinition:
			directives = append(directives, def.Directives...)
		case *ast.SchemaExtension:
			directives = append(directives, def.Directives...)
		}
	}
	return directives
}

// Parent returns the enclosing scope or nil.
func (scope *Scope) Parent() *Scope {
	return scope.parent
}

// Logger returns the logger used by the scope.
func (scope *Scope) Logger() hclog.Logger {
	return scope.logger
}

// Own returns the link bound to name in the scope itself.
func (scope *Scope) Own(name string) (*Link, bool) {
	return scope.links.Own(name)
}

// Lookup returns the link bound to name in the scope or the nearest ancestor.
func (scope *Scope) Lookup(name string) (*Link, bool) {
	return scope.links.Lookup(name)
}

// Self returns the link that carries the identity of the document or nil if the document (and all
// enclosing documents) has none.
func (scope *Scope) Self() *Link {
	self, _ := scope.Lookup("")
	return self
}

// URL returns the graph of the document. It is the zero URL if Self is nil.
func (scope *Scope) URL() link.URL {
	if self := scope.Self(); self != nil {
		return self.Ref.Graph()
	}
	return link.URL{}
}

// Entries returns an iterator over the scope's own links in the order they were established.
func (scope *Scope) Entries() *LinkIterator {
	return &LinkIterator{
		scope:   scope,
		entries: scope.links.Entries(),
		stop:    scope.parent,
	}
}

// Visible returns an iterator over the own links of the scope followed by the links visible in its
// parent. A name bound in more than one scope is yielded once per scope; use Lookup to resolve a
// name.
func (scope *Scope) Visible() *LinkIterator {
	return &LinkIterator{
		scope:   scope,
		entries: scope.links.Entries(),
	}
}

// LinkIterator iterates links of one or more scopes.
type LinkIterator struct {
	scope   *Scope
	entries *scopemap.EntryIterator[string, *Link]

	// stop is the scope where the iteration ends. nil iterates up to the root.
	stop *Scope
}

// Next returns the next link and the scope that owns it. It returns iterator.Done as error when
// there are no more links.
func (iter *LinkIterator) Next() (*Link, *Scope, error) {
	for iter.scope != nil {
		_, l, err := iter.entries.Next()
		if err == nil {
			return l, iter.scope, nil
		}

		iter.scope = iter.scope.parent
		if iter.scope == iter.stop {
			iter.scope = nil
			break
		}
		iter.entries = iter.scope.links.Entries()
	}
	return nil, nil, iterator.Done
}

// Locate returns the reference for a locatable node: a type or directive definition, a type
// extension, a schema definition or extension, a directive use or a named type. It returns the
// zero Ref for other nodes. Locate never fails: a name without binding refers to an element of the
// document's own graph.
func (scope *Scope) Locate(node ast.Node) link.Ref {
	switch node := node.(type) {
	case *ast.SchemaDefinition, *ast.SchemaExtension:
		return link.Schema(scope.URL())

	case *ast.DirectiveDefinition:
		return scope.LocateName(node.Name.Value(), true)

	case *ast.Directive:
		return scope.LocateName(node.Name.Value(), true)

	case ast.TypeDefinition:
		return scope.LocateName(node.GetName().Value(), false)

	case ast.TypeExtension:
		return scope.LocateName(node.GetName().Value(), false)

	case ast.NamedType:
		return scope.LocateName(node.Name.Value(), false)

	case *ast.NamedType:
		return scope.LocateName(node.Name.Value(), false)
	}

	return link.Ref{}
}

// LocateName resolves name as written in the document. directive specifies whether the name is a
// directive name (without "@").
//
// A name with a "prefix__" whose prefix is bound to a linked graph refers to the element in that
// graph. Otherwise the whole name is looked up in the scope. An unbound name refers to the element
// of the document's own graph. Note that a local name that happens to start with the prefix of a
// linked graph is always treated as an element of that graph. A name ending with "__" is never
// split.
func (scope *Scope) LocateName(name string, directive bool) link.Ref {
	if prefix, base, found := strings.Cut(name, "__"); found && len(prefix) > 0 && len(base) > 0 {
		if l, exists := scope.Lookup(prefix); exists && l.Ref.Term().Kind == link.TermSchema {
			if directive {
				return link.Directive(base, l.Ref.Graph())
			}
			return link.Named(base, l.Ref.Graph())
		}
	}

	key := name
	if directive {
		key = "@" + name
	}
	if l, exists := scope.Lookup(key); exists {
		return l.Ref
	}

	if directive {
		return link.Directive(name, scope.URL())
	}
	return link.Named(name, scope.URL())
}
