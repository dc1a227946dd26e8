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
	"sync"

	"github.com/botobag/atlas/graphql/parser"
	"github.com/botobag/atlas/scope"
)

const builtinsSDL = `
"The ` + "`Int`" + ` scalar type represents non-fractional signed whole numeric values."
scalar Int

"The ` + "`Float`" + ` scalar type represents signed double-precision fractional values."
scalar Float

"The ` + "`String`" + ` scalar type represents textual data."
scalar String

"The ` + "`Boolean`" + ` scalar type represents ` + "`true`" + ` or ` + "`false`" + `."
scalar Boolean

"The ` + "`ID`" + ` scalar type represents a unique identifier."
scalar ID

"Marks an element of a GraphQL schema as no longer supported."
directive @deprecated(reason: String = "No longer supported") on FIELD_DEFINITION | ARGUMENT_DEFINITION | INPUT_FIELD_DEFINITION | ENUM_VALUE

"Directs the executor to skip this field or fragment when the ` + "`if`" + ` argument is true."
directive @skip(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT

"Directs the executor to include this field or fragment only when the ` + "`if`" + ` argument is true."
directive @include(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT

"Exposes a URL that specifies the behaviour of this scalar."
directive @specifiedBy(url: String!) on SCALAR
`

var (
	builtinsOnce sync.Once
	builtins     *Located
)

// Builtins returns the definitions of the GraphQL built-in scalars and directives located in
// scope.Builtins(). Add it to an atlas to resolve references to the built-ins.
func Builtins() *Located {
	builtinsOnce.Do(func() {
		doc, err := parser.ParseString(scope.BuiltinsHref, builtinsSDL)
		if err != nil {
			panic(err)
		}
		builtins = Locate(doc, scope.Builtins())
	})
	return builtins
}
