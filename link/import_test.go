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

package link_test

import (
	"github.com/botobag/atlas/graphql"
	"github.com/botobag/atlas/internal/testutil"
	"github.com/botobag/atlas/link"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseImports", func() {
	It("parses names and directives", func() {
		imports, err := link.ParseImports("@key @requires FieldSet")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(imports).Should(Equal([]link.Import{
			{Element: "@key", Alias: "@key"},
			{Element: "@requires", Alias: "@requires"},
			{Element: "FieldSet", Alias: "FieldSet"},
		}))
		Expect(imports[0].IsDirective()).Should(BeTrue())
		Expect(imports[2].IsDirective()).Should(BeFalse())
	})

	It("parses aliases with or without space", func() {
		imports, err := link.ParseImports("Fields: FieldSet @k:@key  Other:   Thing")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(imports).Should(Equal([]link.Import{
			{Element: "FieldSet", Alias: "Fields"},
			{Element: "@key", Alias: "@k"},
			{Element: "Thing", Alias: "Other"},
		}))
		Expect(imports[0].String()).Should(Equal("Fields: FieldSet"))
		Expect(imports[1].String()).Should(Equal("@k: @key"))
	})

	It("accepts an empty list", func() {
		imports, err := link.ParseImports("   ")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(imports).Should(BeEmpty())
	})

	It("rejects aliases of a different kind", func() {
		for _, input := range []string{"@k: key", "K: @key", "@key Fields:@fields"} {
			_, err := link.ParseImports(input)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.CodeIs(graphql.ErrCodeBadImport),
			), input)
		}
	})

	It("rejects malformed lists", func() {
		for _, input := range []string{"a:", "a: b: c", ": b", "a::b", "@", "1abc", "a-b"} {
			_, err := link.ParseImports(input)
			Expect(err).Should(testutil.MatchGraphQLError(
				testutil.CodeIs(graphql.ErrCodeBadImport),
			), input)
		}
	})
})
