/**
 * Copyright (c) 2018, The Artemis Authors.
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

package lexer

import (
	"strings"
)

// BlockStringValue produces the value of a block string from its raw text: the common indentation
// of all lines but the first is removed, then the leading and trailing blank lines. Lines end with
// "\r\n", "\n" or "\r" and are joined with "\n".
//
// Reference: https://facebook.github.io/graphql/June2018/#BlockStringValue()
func BlockStringValue(raw string) string {
	lines := splitLines(raw)

	if indent := commonIndent(lines[1:]); indent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) < indent {
				lines[i] = ""
			} else {
				lines[i] = lines[i][indent:]
			}
		}
	}

	first, last := 0, len(lines)
	for first < last && isBlank(lines[first]) {
		first++
	}
	for last > first && isBlank(lines[last-1]) {
		last--
	}
	return strings.Join(lines[first:last], "\n")
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.ReplaceAll(s, "\r", "\n"), "\n")
}

// commonIndent returns the smallest indentation of the lines that are not blank, or 0.
func commonIndent(lines []string) int {
	indent := -1
	for _, line := range lines {
		n := indentLen(line)
		if n < len(line) && (indent < 0 || n < indent) {
			indent = n
		}
	}
	if indent < 0 {
		return 0
	}
	return indent
}

func indentLen(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func isBlank(line string) bool {
	return indentLen(line) == len(line)
}
