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

package atlas

// source is one SDL document in Sources.
type source struct {
	text string

	// checked is false for documents that only supply definitions.
	checked bool
}

// Sources is an immutable set of named SDL documents. The zero value is an empty set. Methods that
// modify the set return a new Sources and leave the receiver untouched.
type Sources struct {
	names   []string
	entries map[string]source
}

// With returns a copy of sources where the document called name has text. A new document is
// appended; an existing one keeps its position and role.
func (sources Sources) With(name string, text string) Sources {
	entry, exists := sources.entries[name]
	if !exists {
		entry.checked = true
	}
	entry.text = text
	return sources.with(name, entry)
}

// WithAtlas is like With but the document only supplies definitions to others. Check skips it.
func (sources Sources) WithAtlas(name string, text string) Sources {
	return sources.with(name, source{
		text:    text,
		checked: false,
	})
}

func (sources Sources) with(name string, entry source) Sources {
	result := Sources{
		names:   sources.names,
		entries: make(map[string]source, len(sources.entries)+1),
	}
	for k, v := range sources.entries {
		result.entries[k] = v
	}

	if _, exists := sources.entries[name]; !exists {
		result.names = make([]string, len(sources.names), len(sources.names)+1)
		copy(result.names, sources.names)
		result.names = append(result.names, name)
	}
	result.entries[name] = entry

	return result
}

// Without returns a copy of sources without the document called name.
func (sources Sources) Without(name string) Sources {
	if _, exists := sources.entries[name]; !exists {
		return sources
	}

	result := Sources{
		entries: make(map[string]source, len(sources.entries)),
	}
	for _, n := range sources.names {
		if n != name {
			result.names = append(result.names, n)
			result.entries[n] = sources.entries[n]
		}
	}
	return result
}

// Names returns the names of the documents in the order they were added. The returned slice must
// not be modified.
func (sources Sources) Names() []string {
	return sources.names
}

// Text returns the text of the document called name.
func (sources Sources) Text(name string) (string, bool) {
	entry, exists := sources.entries[name]
	return entry.text, exists
}

// IsChecked returns false for the documents added with WithAtlas.
func (sources Sources) IsChecked(name string) bool {
	return sources.entries[name].checked
}

// Len returns the number of documents.
func (sources Sources) Len() int {
	return len(sources.names)
}
