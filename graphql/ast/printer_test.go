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
package ast_test

import (
	"io/ioutil"

	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/graphql/parser"
	"github.com/botobag/atlas/graphql/token"
	"github.com/botobag/atlas/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func parse(s string) ast.Document {
	document, err := parser.Parse(token.NewSource(&token.SourceConfig{
		Body: token.SourceBody(s),
	}))
	Expect(err).ShouldNot(HaveOccurred())
	return document
}

func kitchenSinkAST() ast.Document {
	kitchenSink, err := ioutil.ReadFile("../parser/schema-kitchen-sink.graphql")
	Expect(err).ShouldNot(HaveOccurred())
	return parse(string(kitchenSink))
}

var _ = Describe("Printer: SDL document", func() {
	// graphql-js/src/language/__tests__/schema-printer-test.js
	It("prints minimal ast", func() {
		astNode := &ast.ScalarTypeDefinition{
			NamedDefinitionBase: ast.NamedDefinitionBase{
				Name: ast.Name{
					Token: &token.Token{
						Kind:  token.KindName,
						Value: "foo",
					},
				},
			},
		}
		Expect(ast.Print(astNode)).Should(Equal("scalar foo"))
	})

	It("does not alter ast", func() {
		kitchenSink := kitchenSinkAST()
		_ = ast.Print(kitchenSink)
		Expect(kitchenSink).Should(Equal(kitchenSinkAST()))
	})

	It("prints descriptions and directives", func() {
		document := parse(`
"""
Object description
"""
type Foo implements Bar & Baz @key(fields: "id") {
  "field desc"
  one: Type
  two(argument: InputType!, other: [String] = ["a", "b"]): Type @deprecated(reason: "no")
}`)

		Expect(ast.Print(document)).Should(Equal(util.Dedent(`
			"""Object description"""
			type Foo implements Bar & Baz @key(fields: "id") {
			  """field desc"""
			  one: Type
			  two(argument: InputType!, other: [String] = ["a", "b"]): Type @deprecated(reason: "no")
			}
		`)))
	})

	It("prints arguments with descriptions on separate lines", func() {
		document := parse(`
type Query {
  field("first" a: Int, b: String = "x"): Int
}`)

		Expect(ast.Print(document)).Should(Equal(util.Dedent(`
			type Query {
			  field(
			    """first"""
			    a: Int
			    b: String = "x"
			  ): Int
			}
		`)))
	})

	It("prints multi-line descriptions with indentation", func() {
		document := parse(`
enum Color {
  """
  line one
  line two
  """
  RED
}`)

		Expect(ast.Print(document)).Should(Equal(util.Dedent(`
			enum Color {
			  """
			  line one
			  line two
			  """
			  RED
			}
		`)))
	})

	It("prints single definitions", func() {
		document := parse(`directive @key(fields: String!) repeatable on OBJECT | INTERFACE`)
		Expect(ast.Print(document.Definitions[0])).Should(Equal(
			"directive @key(fields: String!) repeatable on OBJECT | INTERFACE"))

		document = parse(`schema @link(url: "https://specs.apollo.dev/link/v1.0", import: ["@key"])`)
		Expect(ast.Print(document.Definitions[0])).Should(Equal(
			`schema @link(url: "https://specs.apollo.dev/link/v1.0", import: ["@key"])`))

		Expect(ast.Print(document.Definitions[0].GetDirectives()[0])).Should(Equal(
			`@link(url: "https://specs.apollo.dev/link/v1.0", import: ["@key"])`))
	})

	It("prints kitchen sink", func() {
		printed := ast.Print(kitchenSinkAST())

		Expect(printed).Should(Equal(util.Dedent(`
			schema @link(url: "https://specs.apollo.dev/link/v1.0") {
			  query: QueryType
			  mutation: MutationType
			}

			"""
			This is a description
			of the ` + "`Foo`" + ` type.
			"""
			type Foo implements Bar & Baz & Two {
			  """Description of the ` + "`one`" + ` field."""
			  one: Type
			  """This is a description of the ` + "`two`" + ` field."""
			  two(
			    """This is a description of the ` + "`argument`" + ` argument."""
			    argument: InputType!
			  ): Type
			  three(argument: InputType, other: String): Int
			  four(argument: String = "string"): String
			  five(argument: [String] = ["string", "string"]): String
			  six(argument: InputType = {key: "value"}): Type
			  seven(argument: Int = null): Type
			}

			type AnnotatedObject @onObject(arg: "value") {
			  annotatedField(arg: Type = "default" @onArgumentDefinition): Type @onField
			}

			type UndefinedType

			extend type Foo {
			  seven(argument: [String]): Type
			}

			extend type Foo @onType

			interface Bar {
			  one: Type
			  four(argument: String = "string"): String
			}

			interface AnnotatedInterface @onInterface {
			  annotatedField(arg: Type @onArgumentDefinition): Type @onField
			}

			interface UndefinedInterface

			extend interface Bar implements Two {
			  two(argument: InputType!): Type
			}

			extend interface Bar @onInterface

			interface Baz implements Bar & Two {
			  one: Type
			  two(argument: InputType!): Type
			  four(argument: String = "string"): String
			}

			union Feed = Story | Article | Advert

			union AnnotatedUnion @onUnion = A | B

			union AnnotatedUnionTwo @onUnion = A | B

			union UndefinedUnion

			extend union Feed = Photo | Video

			extend union Feed @onUnion

			scalar CustomScalar

			scalar AnnotatedScalar @onScalar

			extend scalar CustomScalar @onScalar

			enum Site {
			  """This is a description of the ` + "`DESKTOP`" + ` value"""
			  DESKTOP
			  """This is a description of the ` + "`MOBILE`" + ` value"""
			  MOBILE
			  """This is a description of the ` + "`WEB`" + ` value"""
			  WEB
			}

			enum AnnotatedEnum @onEnum {
			  ANNOTATED_VALUE @onEnumValue
			  OTHER_VALUE
			}

			enum UndefinedEnum

			extend enum Site {
			  VR
			}

			extend enum Site @onEnum

			input InputType {
			  key: String!
			  answer: Int = 42
			}

			input AnnotatedInput @onInputObject {
			  annotatedField: Type @onInputFieldDefinition
			}

			input UndefinedInput

			extend input InputType {
			  other: Float = 1.23e4 @onInputFieldDefinition
			}

			extend input InputType @onInputObject

			"""This is a description of the ` + "`@skip`" + ` directive"""
			directive @skip(
			  """This is a description of the ` + "`if`" + ` argument"""
			  if: Boolean! @onArgumentDefinition
			) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT

			directive @include(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT

			directive @include2(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT

			directive @myRepeatableDir(name: String!) repeatable on OBJECT | INTERFACE

			extend schema @onSchema

			extend schema @onSchema {
			  subscription: SubscriptionType
			}
		`)))

		// Printing is stable.
		Expect(ast.Print(parse(printed))).Should(Equal(printed))
	})
})
