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

package core

import (
	"reflect"
)

// Status is the state of a cell.
type Status uint8

// Enumeration of Status
const (
	// StatusEmpty is the status of a cell that never committed a result.
	StatusEmpty Status = iota

	// StatusRun is the status of a cell under evaluation.
	StatusRun

	// StatusReady is the status of a cell with a committed result.
	StatusReady
)

// String implements fmt.Stringer.
func (status Status) String() string {
	switch status {
	case StatusEmpty:
		return "empty"
	case StatusRun:
		return "run"
	case StatusReady:
		return "ready"
	}
	return "unknown"
}

// result is the outcome of one run of a cell.
type result struct {
	data    interface{}
	hasData bool
	errors  []error
}

func (r result) clone() result {
	if r.errors != nil {
		r.errors = append([]error(nil), r.errors...)
	}
	return r
}

// cell is the memoization slot of one Task in one Core.
type cell struct {
	name   string
	status Status

	// committed result and the gate arguments of the run that produced it
	result result
	guards [][]interface{}

	// state of the in-flight run
	pending       result
	pendingGuards [][]interface{}
	rolledBack    bool
}

func (c *cell) clone() *cell {
	guards := make([][]interface{}, len(c.guards))
	copy(guards, c.guards)
	return &cell{
		name:   c.name,
		status: c.status,
		result: c.result.clone(),
		guards: guards,
	}
}

func (c *cell) begin() {
	c.status = StatusRun
	c.pending = result{}
	c.pendingGuards = nil
	c.rolledBack = false
}

func (c *cell) gate(values []interface{}) bool {
	if c.rolledBack {
		return false
	}

	ordinal := len(c.pendingGuards)
	c.pendingGuards = append(c.pendingGuards, values)

	if ordinal < len(c.guards) && sameValues(c.guards[ordinal], values) {
		c.rolledBack = true
		return false
	}
	return true
}

func (c *cell) report(errs []error) {
	if c.rolledBack {
		return
	}
	for _, err := range errs {
		if err != nil {
			c.pending.errors = append(c.pending.errors, err)
		}
	}
}

// finish settles the run. It returns true if the pending result was committed.
func (c *cell) finish(prevStatus Status) bool {
	defer func() {
		c.pending = result{}
		c.pendingGuards = nil
	}()

	if c.rolledBack {
		c.status = prevStatus
		return false
	}

	c.result = c.pending
	c.guards = c.pendingGuards
	c.status = StatusReady
	return true
}

// sameValues compares gate arguments by count and then element-wise from the end.
func sameValues(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !identical(a[i], b[i]) {
			return false
		}
	}
	return true
}

// identical compares two gate arguments by identity.
func identical(a, b interface{}) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Func:
		return false
	}

	if !va.Type().Comparable() {
		return false
	}

	// Comparable structs and arrays may still carry an interface holding an incomparable value.
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
