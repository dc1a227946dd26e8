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
	"sync"

	"github.com/botobag/atlas/link"
	"github.com/botobag/atlas/scopemap"

	"github.com/hashicorp/go-hclog"
)

// BuiltinsHref is the URL of the graph that owns the GraphQL built-in scalars and directives.
const BuiltinsHref = "https://spec.graphql.org/builtins"

var (
	builtinsURL = link.MustParseURL(BuiltinsHref)

	builtinTypes      = []string{"Int", "Float", "String", "Boolean", "ID"}
	builtinDirectives = []string{"deprecated", "skip", "include", "specifiedBy"}

	builtinsOnce  sync.Once
	builtinsScope *Scope
)

// BuiltinsURL returns the graph of the GraphQL built-ins.
func BuiltinsURL() link.URL {
	return builtinsURL
}

// Builtins returns the root scope that binds the GraphQL built-in scalars and directives. It has no
// self link, so documents built on it without @id keep the zero URL.
func Builtins() *Scope {
	builtinsOnce.Do(func() {
		builtinsScope = &Scope{
			logger: hclog.NewNullLogger(),
			links: scopemap.New(func(setter *scopemap.Setter[string, *Link]) {
				for _, name := range builtinTypes {
					setter.Set(name, &Link{
						Name: name,
						Ref:  link.Named(name, builtinsURL),
					})
				}
				for _, name := range builtinDirectives {
					setter.Set("@"+name, &Link{
						Name: "@" + name,
						Ref:  link.Directive(name, builtinsURL),
					})
				}
			}),
		}
	})
	return builtinsScope
}
