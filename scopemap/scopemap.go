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

// Package scopemap implements a hierarchical map. A Scope holds its own entries and delegates
// lookups it cannot answer to its parent. Scopes are immutable once built: all entries are added
// by an initialization function that runs exactly once during construction.
package scopemap

import (
	"github.com/botobag/atlas/iterator"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Scope is a frozen map with an optional parent.
type Scope[K comparable, V any] struct {
	parent  *Scope[K, V]
	index   map[K]int
	entries []entry[K, V]
}

// Setter is the mutable handle passed to the initialization function of a Scope. It must not be
// retained: calling Set after the initialization function returned panics.
type Setter[K comparable, V any] struct {
	scope  *Scope[K, V]
	frozen bool
}

// Set binds key to value in the scope being built. Setting a key twice replaces the value but keeps
// the position of the first Set in the iteration order.
func (setter *Setter[K, V]) Set(key K, value V) {
	if setter.frozen {
		panic("scopemap: Set called after the scope was frozen")
	}

	scope := setter.scope
	if i, exists := scope.index[key]; exists {
		scope.entries[i].value = value
		return
	}

	if scope.index == nil {
		scope.index = map[K]int{}
	}
	scope.index[key] = len(scope.entries)
	scope.entries = append(scope.entries, entry[K, V]{key, value})
}

// Lookup is like Scope.Lookup on the scope being built. It sees the entries set so far.
func (setter *Setter[K, V]) Lookup(key K) (V, bool) {
	return setter.scope.Lookup(key)
}

// New builds a root scope. init may be nil.
func New[K comparable, V any](init func(setter *Setter[K, V])) *Scope[K, V] {
	return build(nil, init)
}

func build[K comparable, V any](parent *Scope[K, V], init func(setter *Setter[K, V])) *Scope[K, V] {
	scope := &Scope[K, V]{
		parent: parent,
	}

	if init != nil {
		setter := &Setter[K, V]{scope: scope}
		defer func() {
			setter.frozen = true
		}()
		init(setter)
	}

	return scope
}

// Child builds a new scope whose parent is scope.
func (scope *Scope[K, V]) Child(init func(setter *Setter[K, V])) *Scope[K, V] {
	return build(scope, init)
}

// Parent returns the parent scope or nil for a root scope.
func (scope *Scope[K, V]) Parent() *Scope[K, V] {
	return scope.parent
}

// Own looks up key in the scope's own entries only.
func (scope *Scope[K, V]) Own(key K) (V, bool) {
	if i, exists := scope.index[key]; exists {
		return scope.entries[i].value, true
	}
	var zero V
	return zero, false
}

// Lookup looks up key in the scope and then in its ancestors. The nearest binding wins.
func (scope *Scope[K, V]) Lookup(key K) (V, bool) {
	for s := scope; s != nil; s = s.parent {
		if value, exists := s.Own(key); exists {
			return value, true
		}
	}
	var zero V
	return zero, false
}

// Len returns the number of the scope's own entries.
func (scope *Scope[K, V]) Len() int {
	return len(scope.entries)
}

// Entries returns an iterator over the scope's own entries in insertion order.
func (scope *Scope[K, V]) Entries() *EntryIterator[K, V] {
	return &EntryIterator[K, V]{
		entries: scope.entries,
	}
}

// EntryIterator iterates the entries of a Scope.
//
//	iter := scope.Entries()
//	for {
//		key, value, err := iter.Next()
//		if err == iterator.Done {
//			break
//		}
//		...
//	}
type EntryIterator[K comparable, V any] struct {
	entries []entry[K, V]
	next    int
}

// Next returns the next entry. It returns iterator.Done as error when there are no more entries.
func (iter *EntryIterator[K, V]) Next() (K, V, error) {
	if iter.next >= len(iter.entries) {
		var (
			key   K
			value V
		)
		return key, value, iterator.Done
	}

	e := iter.entries[iter.next]
	iter.next++
	return e.key, e.value, nil
}
