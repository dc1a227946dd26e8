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

package scope_test

import (
	"bytes"

	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/graphql/parser"
	"github.com/botobag/atlas/graphql/token"
	"github.com/botobag/atlas/iterator"
	"github.com/botobag/atlas/link"
	"github.com/botobag/atlas/scope"

	"github.com/hashicorp/go-hclog"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gstruct"
)

func parse(body string) ast.Document {
	doc, err := parser.ParseString("test.graphql", body)
	Expect(err).ShouldNot(HaveOccurred())
	return doc
}

func namedType(name string) ast.NamedType {
	return ast.NamedType{
		Name: ast.Name{
			Token: &token.Token{
				Kind:  token.KindName,
				Value: name,
			},
		},
	}
}

func directive(name string) *ast.Directive {
	return &ast.Directive{
		Name: ast.Name{
			Token: &token.Token{
				Kind:  token.KindName,
				Value: name,
			},
		},
	}
}

type entry struct {
	Name string
	Ref  string
}

func entries(iter *scope.LinkIterator) []entry {
	var result []entry
	for {
		l, _, err := iter.Next()
		if err == iterator.Done {
			break
		}
		Expect(err).ShouldNot(HaveOccurred())
		result = append(result, entry{l.Name, l.Ref.String()})
	}
	return result
}

var _ = Describe("Scope", func() {
	var (
		federation = link.MustParseURL("https://specs.apollo.dev/federation/v2.0")
		linkSpec   = link.MustParseURL("https://specs.apollo.dev/link/v1.0")
		users      = link.MustParseURL("https://example.com/users/v1.0")
	)

	It("resolves imported and local names", func() {
		sc := scope.ForDocument(parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(url: "https://specs.apollo.dev/federation/v2.0", import: "@key @requires")
		`), nil)

		Expect(sc.Locate(directive("key"))).Should(Equal(link.Directive("key", federation)))
		Expect(sc.Locate(directive("requires"))).Should(Equal(link.Directive("requires", federation)))
		Expect(sc.Locate(namedType("Foo"))).Should(Equal(link.Named("Foo", link.URL{})))
		Expect(sc.Locate(directive("link"))).Should(Equal(link.RootDirective(linkSpec)))
		Expect(sc.Locate(directive("federation"))).Should(Equal(link.RootDirective(federation)))
		Expect(sc.URL().IsZero()).Should(BeTrue())
		Expect(sc.Self()).Should(BeNil())
	})

	It("resolves prefixed names through linked graphs", func() {
		sc := scope.ForDocument(parse(`
			schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(url: "https://specs.apollo.dev/federation/v2.0")
				@link(url: "https://example.com/other/v0.1", as: "o")
			{ query: Query }
		`), nil)

		other := link.MustParseURL("https://example.com/other/v0.1")

		Expect(sc.Locate(namedType("federation__FieldSet"))).Should(Equal(link.Named("FieldSet", federation)))
		Expect(sc.Locate(directive("federation__shareable"))).Should(Equal(link.Directive("shareable", federation)))
		Expect(sc.Locate(namedType("o__Thing"))).Should(Equal(link.Named("Thing", other)))
		Expect(sc.Locate(directive("o"))).Should(Equal(link.RootDirective(other)))

		// The graph is only reachable through its alias.
		Expect(sc.Locate(namedType("other__Thing"))).Should(Equal(link.Named("other__Thing", link.URL{})))

		// Names with an unbound prefix are local.
		Expect(sc.Locate(namedType("foo__Bar"))).Should(Equal(link.Named("foo__Bar", link.URL{})))
		Expect(sc.Locate(namedType("__Type"))).Should(Equal(link.Named("__Type", link.URL{})))

		// A prefix without a base name is not split.
		Expect(sc.Locate(namedType("federation__"))).Should(Equal(link.Named("federation__", link.URL{})))
		Expect(sc.Locate(directive("federation__"))).Should(Equal(link.Directive("federation__", link.URL{})))
	})

	It("only follows prefixes bound to graphs", func() {
		sc := scope.ForDocument(parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(url: "https://specs.apollo.dev/federation/v2.0", import: "fed")
		`), nil)

		// "fed" is an imported type, not a graph.
		Expect(sc.Locate(namedType("fed"))).Should(Equal(link.Named("fed", federation)))
		Expect(sc.Locate(namedType("fed__X"))).Should(Equal(link.Named("fed__X", link.URL{})))
	})

	It("supports aliased imports", func() {
		sc := scope.ForDocument(parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(
					url: "https://specs.apollo.dev/federation/v2.0",
					import: ["@key", { name: "@requires", as: "@req" }, "Fields: FieldSet", { name: "Policy" }]
				)
		`), nil)

		Expect(sc.Locate(directive("key"))).Should(Equal(link.Directive("key", federation)))
		Expect(sc.Locate(directive("req"))).Should(Equal(link.Directive("requires", federation)))
		Expect(sc.Locate(directive("requires"))).Should(Equal(link.Directive("requires", link.URL{})))
		Expect(sc.Locate(namedType("Fields"))).Should(Equal(link.Named("FieldSet", federation)))
		Expect(sc.Locate(namedType("Policy"))).Should(Equal(link.Named("Policy", federation)))
	})

	It("establishes self identity with @id", func() {
		sc := scope.ForDocument(parse(`
			extend schema @id(url: "https://example.com/users/v1.0")
			type User { id: ID! }
		`), nil)

		Expect(sc.URL()).Should(Equal(users))
		Expect(sc.Self()).Should(PointTo(MatchFields(IgnoreExtras, Fields{
			"Name": BeEmpty(),
			"Ref":  Equal(link.Schema(users)),
			"Via":  Not(BeNil()),
		})))
		Expect(sc.Locate(namedType("User"))).Should(Equal(link.Named("User", users)))
		Expect(sc.Locate(directive("users"))).Should(Equal(link.RootDirective(users)))
		Expect(sc.Locate(namedType("users__Thing"))).Should(Equal(link.Named("Thing", users)))
		Expect(sc.Locate(directive("id"))).Should(Equal(
			link.RootDirective(link.MustParseURL("https://specs.apollo.dev/id/v1.0"))))

		doc := parse(`schema @id(url: "https://example.com/users/v1.0") { query: Query }`)
		Expect(scope.ForDocument(doc, nil).Locate(doc.Definitions[0])).Should(Equal(link.Schema(users)))
	})

	It("recognizes a linked id specification under an alias", func() {
		sc := scope.ForDocument(parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(url: "https://specs.apollo.dev/id/v1.0", as: "ident")
				@ident(url: "https://example.com/users/v1.0")
		`), nil)
		Expect(sc.URL()).Should(Equal(users))
	})

	It("recognizes an imported @id directive", func() {
		idSpec := link.MustParseURL("https://specs.apollo.dev/id/v1.0")
		me := link.MustParseURL("https://example.com/me/v1.0")

		sc := scope.ForDocument(parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(url: "https://specs.apollo.dev/id/v1.0", import: ["@id"])
				@id(url: "https://example.com/me/v1.0")
		`), nil)

		Expect(sc.URL()).Should(Equal(me))
		Expect(sc.Locate(directive("id"))).Should(Equal(link.RootDirective(idSpec)))
		Expect(sc.Locate(namedType("Thing"))).Should(Equal(link.Named("Thing", me)))
	})

	It("imports the root directive of a linked graph by its name", func() {
		sc := scope.ForDocument(parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(url: "https://specs.apollo.dev/federation/v2.0", as: "fed", import: ["@federation", "@key"])
		`), nil)

		Expect(sc.Locate(directive("federation"))).Should(Equal(link.RootDirective(federation)))
		Expect(sc.Locate(directive("fed"))).Should(Equal(link.RootDirective(federation)))
		Expect(sc.Locate(directive("key"))).Should(Equal(link.Directive("key", federation)))
	})

	It("does not treat @id as identity when the name is claimed by another graph", func() {
		sc := scope.ForDocument(parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(url: "https://example.com/other/v1.0", import: "@id")
				@id(url: "https://example.com/users/v1.0")
		`), nil)
		Expect(sc.Self()).Should(BeNil())
	})

	It("uses the first id directive", func() {
		sc := scope.ForDocument(parse(`
			extend schema
				@id(url: "https://example.com/users/v1.0")
				@id(url: "https://example.com/orders/v1.0")
		`), nil)
		Expect(sc.URL()).Should(Equal(users))
	})

	It("bootstraps from legacy core directives", func() {
		join := link.MustParseURL("https://specs.apollo.dev/join/v0.1")
		sc := scope.ForDocument(parse(`
			schema
				@core(feature: "https://specs.apollo.dev/core/v0.1")
				@core(feature: "https://specs.apollo.dev/join/v0.1")
			{ query: Query }
		`), nil)

		Expect(sc.Locate(directive("join__field"))).Should(Equal(link.Directive("field", join)))
		Expect(sc.Locate(directive("join"))).Should(Equal(link.RootDirective(join)))
	})

	It("requires the linker to be named after itself", func() {
		sc := scope.ForDocument(parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0", as: "other")
				@link(url: "https://specs.apollo.dev/federation/v2.0", import: "@key")
		`), nil)

		Expect(sc.Locate(directive("key"))).Should(Equal(link.Directive("key", link.URL{})))
		Expect(entries(sc.Entries())).Should(BeEmpty())
	})

	It("ignores links of unknown specifications", func() {
		sc := scope.ForDocument(parse(`
			extend schema @link(url: "https://example.com/link/v1.0", import: "@key")
		`), nil)
		Expect(entries(sc.Entries())).Should(BeEmpty())
	})

	It("skips malformed link directives and logs them", func() {
		var buf bytes.Buffer
		logger := hclog.New(&hclog.LoggerOptions{
			Output: &buf,
			Level:  hclog.Debug,
		})

		sc := scope.ForDocument(parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(url: 42)
				@link(url: "https://specs.apollo.dev/federation/v2.0", import: "@k: key")
				@link(url: "https://example.com")
				@link(url: "https://specs.apollo.dev/tag/v0.1")
		`), nil, scope.WithLogger(logger))

		Expect(entries(sc.Entries())).Should(Equal([]entry{
			{"link", "https://specs.apollo.dev/link/v1.0"},
			{"@link", "https://specs.apollo.dev/link/v1.0#@"},
			{"tag", "https://specs.apollo.dev/tag/v0.1"},
			{"@tag", "https://specs.apollo.dev/tag/v0.1#@"},
		}))
		Expect(buf.String()).Should(ContainSubstring("skipping malformed link directive"))
		Expect(buf.String()).Should(ContainSubstring("BadImport"))
		Expect(buf.String()).Should(ContainSubstring("NoPath"))
		Expect(sc.Logger()).Should(BeIdenticalTo(logger))
	})

	It("falls back to the enclosing scope", func() {
		parent := scope.ForDocument(parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(url: "https://specs.apollo.dev/federation/v2.0", import: "@key")
				@id(url: "https://example.com/users/v1.0")
		`), scope.Builtins())

		child := parent.Child(parse(`
			extend schema @id(url: "https://example.com/orders/v1.0")
		`))
		orders := link.MustParseURL("https://example.com/orders/v1.0")

		Expect(child.Parent()).Should(BeIdenticalTo(parent))
		Expect(child.URL()).Should(Equal(orders))
		Expect(parent.URL()).Should(Equal(users))
		Expect(child.Locate(directive("key"))).Should(Equal(link.Directive("key", federation)))
		Expect(child.Locate(namedType("Order"))).Should(Equal(link.Named("Order", orders)))
		Expect(child.Locate(namedType("String"))).Should(Equal(link.Named("String", scope.BuiltinsURL())))

		_, own := child.Own("@key")
		Expect(own).Should(BeFalse())
		l, found := child.Lookup("@key")
		Expect(found).Should(BeTrue())
		Expect(l.Via).ShouldNot(BeNil())
		Expect(l.Linker).ShouldNot(BeNil())
		Expect(l.Linker.Name.Value()).Should(Equal("link"))

		// A nested document without identity shares the identity of the enclosing one.
		anonymous := parent.Child(parse(`type Foo { id: ID }`))
		Expect(anonymous.URL()).Should(Equal(users))
	})

	It("lists visible links from the nearest scope outwards", func() {
		parent := scope.ForDocument(parse(`
			extend schema @id(url: "https://example.com/users/v1.0")
		`), nil)
		child := parent.Child(parse(`
			extend schema @id(url: "https://example.com/users/v2.0")
		`))

		Expect(entries(child.Visible())).Should(Equal([]entry{
			{"", "https://example.com/users/v2.0"},
			{"users", "https://example.com/users/v2.0"},
			{"@users", "https://example.com/users/v2.0#@"},
			{"", "https://example.com/users/v1.0"},
			{"users", "https://example.com/users/v1.0"},
			{"@users", "https://example.com/users/v1.0#@"},
			{"@id", "https://specs.apollo.dev/id/v1.0#@"},
		}))
		Expect(entries(child.Entries())).Should(HaveLen(3))

		iter := child.Visible()
		_, owner, err := iter.Next()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(owner).Should(BeIdenticalTo(child))
	})

	It("locates definitions and extensions", func() {
		doc := parse(`
			extend schema
				@link(url: "https://specs.apollo.dev/link/v1.0")
				@link(url: "https://specs.apollo.dev/federation/v2.0", import: "FieldSet @key")
			directive @key(fields: FieldSet!) on OBJECT
			scalar FieldSet
			extend type Query @key(fields: "id") { id: ID }
			type Local { name: String }
		`)
		sc := scope.ForDocument(doc, scope.Builtins())

		Expect(sc.Locate(doc.Definitions[0])).Should(Equal(link.Schema(link.URL{})))
		Expect(sc.Locate(doc.Definitions[1])).Should(Equal(link.Directive("key", federation)))
		Expect(sc.Locate(doc.Definitions[2])).Should(Equal(link.Named("FieldSet", federation)))
		Expect(sc.Locate(doc.Definitions[3])).Should(Equal(link.Named("Query", link.URL{})))
		Expect(sc.Locate(doc.Definitions[4])).Should(Equal(link.Named("Local", link.URL{})))

		local := doc.Definitions[4].(*ast.ObjectTypeDefinition)
		Expect(sc.Locate(local.Fields[0])).Should(Equal(link.Ref{}))
		Expect(sc.Locate(local.Fields[0].Type)).Should(Equal(link.Named("String", scope.BuiltinsURL())))
	})
})

var _ = Describe("Builtins", func() {
	It("binds built-in scalars and directives", func() {
		builtins := scope.Builtins()
		Expect(builtins).Should(BeIdenticalTo(scope.Builtins()))
		Expect(builtins.Self()).Should(BeNil())
		Expect(builtins.Parent()).Should(BeNil())

		for _, name := range []string{"Int", "Float", "String", "Boolean", "ID"} {
			Expect(builtins.Locate(namedType(name))).Should(Equal(link.Named(name, scope.BuiltinsURL())))
		}
		for _, name := range []string{"deprecated", "skip", "include", "specifiedBy"} {
			Expect(builtins.Locate(directive(name))).Should(Equal(link.Directive(name, scope.BuiltinsURL())))
		}
		Expect(scope.BuiltinsURL().Href()).Should(Equal(scope.BuiltinsHref))
	})
})
