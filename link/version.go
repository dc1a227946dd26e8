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

package link

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/botobag/atlas/graphql"
)

// Version is a (major, minor) compatibility pair of a linked specification. The zero value is
// "v0.0". Versions are comparable with ==.
type Version struct {
	Major uint
	Minor uint
}

// ParseVersion parses a version in the form of "v<major>.<minor>" where both numbers consist of
// digits only.
func ParseVersion(input string) (Version, error) {
	const op graphql.Op = "link.ParseVersion"

	fail := func() (Version, error) {
		return Version{}, graphql.NewError(
			fmt.Sprintf(`expected a version in the form of "v<major>.<minor>", got %q`, input),
			graphql.ErrCodeVersionParse,
			graphql.ErrKindParse,
			op,
		)
	}

	if len(input) < 4 || input[0] != 'v' {
		return fail()
	}

	dot := strings.IndexByte(input, '.')
	if dot < 0 {
		return fail()
	}

	major, ok := parseDigits(input[1:dot])
	if !ok {
		return fail()
	}
	minor, ok := parseDigits(input[dot+1:])
	if !ok {
		return fail()
	}

	return Version{
		Major: major,
		Minor: minor,
	}, nil
}

// parseDigits parses a non-empty string of decimal digits. Signs and other characters accepted by
// strconv are rejected.
func parseDigits(s string) (uint, bool) {
	if len(s) == 0 {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// Satisfies returns true if a specification at version v can be used where required is requested.
// Major versions must match. Under major 0 any minor change is breaking so minors must match too;
// otherwise v must be at least as new as required.
func (v Version) Satisfies(required Version) bool {
	if v.Major != required.Major {
		return false
	}
	if v.Major == 0 {
		return v.Minor == required.Minor
	}
	return v.Minor >= required.Minor
}

// Equal returns true if v and other have the same major and minor. It is the same as ==.
func (v Version) Equal(other Version) bool {
	return v == other
}

// String implements fmt.Stringer. It returns the version in the form that ParseVersion accepts.
func (v Version) String() string {
	return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
}
