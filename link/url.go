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
	"net/url"
	"strings"
	"unique"

	"github.com/botobag/atlas/graphql"
)

// urlValue is the canonical content of a URL.
type urlValue struct {
	// href is the normalized URL string without query, fragment and credentials.
	href string

	// identity is href with the version segment (if any) removed. Two URLs with the same identity
	// refer to different versions of the same specification.
	identity string

	name       string
	version    Version
	hasVersion bool
}

// URL identifies a graph (a schema document) that names and directives belong to. It is a
// canonical handle: two URLs parsed from equal inputs are ==, so URL can be used as a map key and
// compared cheaply. Handles are interned in a weak table which never keeps unreferenced URLs alive.
//
// The zero URL means "no graph" and is used by documents without an identity.
type URL struct {
	handle unique.Handle[urlValue]
}

// ParseURL parses input into a URL. Query, fragment and credentials are dropped. The path is
// scanned from the right: if the last segment is a version, the segment before it is the name (when
// it is a valid name); otherwise the last segment is the name (when it is a valid name). Neither
// name nor version is required.
func ParseURL(input string) (URL, error) {
	const op graphql.Op = "link.ParseURL"

	u, err := url.Parse(input)
	if err != nil {
		return URL{}, graphql.NewError(fmt.Sprintf("cannot parse %q as a URL", input),
			graphql.ErrCodeBadURL, graphql.ErrKindParse, op, err)
	}

	u.User = nil
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""

	var segments []string
	for _, segment := range strings.Split(u.Path, "/") {
		if len(segment) > 0 {
			segments = append(segments, segment)
		}
	}

	if len(segments) == 0 {
		return URL{}, graphql.NewError(fmt.Sprintf("%q has no path", input),
			graphql.ErrCodeNoPath, graphql.ErrKindParse, op)
	}

	value := urlValue{
		href: u.String(),
	}

	last := segments[len(segments)-1]
	if version, err := ParseVersion(last); err == nil {
		value.version = version
		value.hasVersion = true
		if len(segments) > 1 && IsValidName(segments[len(segments)-2]) {
			value.name = segments[len(segments)-2]
		}

		identity := *u
		identity.Path = "/" + strings.Join(segments[:len(segments)-1], "/")
		identity.RawPath = ""
		value.identity = identity.String()
	} else {
		if IsValidName(last) {
			value.name = last
		}
		value.identity = value.href
	}

	return URL{unique.Make(value)}, nil
}

// ParseFeatureURL is like ParseURL but additionally requires the URL to carry both a name and a
// version, which is the form used to identify versioned specifications.
func ParseFeatureURL(input string) (URL, error) {
	const op graphql.Op = "link.ParseFeatureURL"

	u, err := ParseURL(input)
	if err != nil {
		return URL{}, err
	}

	if len(u.Name()) == 0 {
		return URL{}, graphql.NewError(fmt.Sprintf("%q has no name", input),
			graphql.ErrCodeNoName, graphql.ErrKindParse, op)
	}

	if _, ok := u.Version(); !ok {
		return URL{}, graphql.NewError(fmt.Sprintf("%q has no version", input),
			graphql.ErrCodeNoVersion, graphql.ErrKindParse, op)
	}

	return u, nil
}

// MustParseURL is like ParseURL but panics if input cannot be parsed. It is intended for URLs
// known at compile time.
func MustParseURL(input string) URL {
	u, err := ParseURL(input)
	if err != nil {
		panic(err)
	}
	return u
}

// IsValidName returns true if s consists of ASCII letters, digits and hyphens and neither begins
// nor ends with a hyphen.
func IsValidName(s string) bool {
	if len(s) == 0 || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') && c != '-' {
			return false
		}
	}
	return true
}

// IsZero returns true for the zero URL.
func (u URL) IsZero() bool {
	return u == URL{}
}

func (u URL) value() urlValue {
	if u.IsZero() {
		return urlValue{}
	}
	return u.handle.Value()
}

// Href returns the normalized URL string. It is empty for the zero URL.
func (u URL) Href() string {
	return u.value().href
}

// Identity returns the URL without its version segment.
func (u URL) Identity() string {
	return u.value().identity
}

// Name returns the name derived from the path or an empty string if there's none.
func (u URL) Name() string {
	return u.value().name
}

// Version returns the version derived from the path. The second return value is false if the path
// does not end with a version.
func (u URL) Version() (Version, bool) {
	value := u.value()
	return value.version, value.hasVersion
}

// Satisfies returns true if u and required identify the same specification and the version of u
// satisfies the version of required. URLs without versions satisfy each other when they are equal.
func (u URL) Satisfies(required URL) bool {
	if u == required {
		return true
	}

	value, requiredValue := u.value(), required.value()
	if value.identity != requiredValue.identity || !value.hasVersion || !requiredValue.hasVersion {
		return false
	}
	return value.version.Satisfies(requiredValue.version)
}

// LocateType returns the reference to the type (or any other plain name) called name in the graph.
func (u URL) LocateType(name string) Ref {
	return Named(name, u)
}

// LocateDirective returns the reference to the directive called name in the graph. An empty name
// refers to the root directive of the graph.
func (u URL) LocateDirective(name string) Ref {
	return Directive(name, u)
}

// String implements fmt.Stringer.
func (u URL) String() string {
	return u.Href()
}
