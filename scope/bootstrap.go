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

package scope

import (
	"slices"

	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/link"
	"github.com/botobag/atlas/scopemap"

	"github.com/hashicorp/go-hclog"
)

// linkerURLs lists the link specifications that can establish themselves. A directive that links
// one of them under its own name becomes the linker of the scope.
var linkerURLs = []string{
	"https://specs.apollo.dev/link/v1.0",
	"https://specs.apollo.dev/core/v0.1",
	"https://specs.apollo.dev/core/v0.2",
}

// idURL is the specification of the @id directive.
var idURL = link.MustParseURL("https://specs.apollo.dev/id/v1.0")

// bootstrapper fills a scope from the schema-level directives of a document.
type bootstrapper struct {
	logger hclog.Logger
	setter *scopemap.Setter[string, *Link]
}

func newBootstrapper(logger hclog.Logger, setter *scopemap.Setter[string, *Link]) *bootstrapper {
	return &bootstrapper{
		logger: logger,
		setter: setter,
	}
}

func (b *bootstrapper) run(directives ast.Directives) {
	linker := b.findLinker(directives)
	if linker != nil {
		for _, directive := range directives {
			if directive.Name.Value() != linker.Name.Value() {
				continue
			}

			req, err := decodeLink(directive)
			if err != nil {
				b.logger.Debug("skipping malformed link directive",
					"directive", "@"+directive.Name.Value(), "error", err)
				continue
			}
			b.addLink(req, directive, linker)
		}
	}

	var self *ast.Directive
	for _, directive := range directives {
		isID, literal := b.isID(directive)
		if !isID {
			continue
		}

		if self != nil {
			b.logger.Debug("ignoring extra id directive",
				"directive", "@"+directive.Name.Value(), "first", "@"+self.Name.Value())
			continue
		}

		if err := b.addSelf(directive); err != nil {
			b.logger.Debug("skipping malformed id directive",
				"directive", "@"+directive.Name.Value(), "error", err)
			continue
		}
		self = directive

		// A literal @id refers to the root directive of the id specification.
		if literal {
			b.set("@id", link.RootDirective(idURL), directive, nil)
		}
	}
}

// findLinker returns the first directive that links a known link specification under its own name.
func (b *bootstrapper) findLinker(directives ast.Directives) *ast.Directive {
	for _, directive := range directives {
		req, err := decodeLink(directive)
		if err != nil {
			continue
		}

		if slices.Contains(linkerURLs, req.href) && directive.Name.Value() == req.name() {
			b.logger.Trace("found linker", "directive", "@"+directive.Name.Value(), "url", req.href)
			return directive
		}
	}
	return nil
}

func (b *bootstrapper) set(name string, ref link.Ref, via *ast.Directive, linker *ast.Directive) {
	b.setter.Set(name, &Link{
		Name:   name,
		Ref:    ref,
		Via:    via,
		Linker: linker,
	})
}

func (b *bootstrapper) addLink(req *linkRequest, via *ast.Directive, linker *ast.Directive) {
	if name := req.name(); len(name) > 0 {
		b.set(name, link.Schema(req.url), via, linker)
		b.set("@"+name, link.RootDirective(req.url), via, linker)
	}

	for _, imp := range req.imports {
		switch {
		case imp.IsDirective() && imp.Element[1:] == req.url.Name():
			// A directive named after the linked graph is its root directive.
			b.set(imp.Alias, link.RootDirective(req.url), via, linker)
		case imp.IsDirective():
			b.set(imp.Alias, link.Directive(imp.Element[1:], req.url), via, linker)
		default:
			b.set(imp.Alias, link.Named(imp.Element, req.url), via, linker)
		}
	}
}

// isID returns true if directive establishes the identity of the document: either it refers to the
// root directive of a linked id specification (linked by name or imported as @id), or it is called
// @id and nothing else claims that name. The latter is reported as literal.
func (b *bootstrapper) isID(directive *ast.Directive) (isID bool, literal bool) {
	name := directive.Name.Value()
	if l, exists := b.setter.Lookup("@" + name); exists {
		return l.Ref.IsRootDirective() && l.Ref.Graph().Satisfies(idURL), false
	}
	return name == "id", true
}

func (b *bootstrapper) addSelf(directive *ast.Directive) error {
	_, u, err := urlArgument(directive, "url")
	if err != nil {
		return err
	}

	alias, err := stringArgument(directive, "as")
	if err != nil {
		return err
	}

	b.set("", link.Schema(u), directive, nil)

	name := alias
	if len(name) == 0 {
		name = u.Name()
	}
	if len(name) > 0 {
		b.set(name, link.Schema(u), directive, nil)
		b.set("@"+name, link.RootDirective(u), directive, nil)
	}
	return nil
}
