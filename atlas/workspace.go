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

// Package atlas resolves a set of SDL documents against each other. A Workspace runs the pipeline
// (parse, scope, locate, fill and compose) as memoized cells of a core.Core so that updating one
// document only recomputes what depends on it.
package atlas

import (
	"fmt"

	"github.com/botobag/atlas/core"
	"github.com/botobag/atlas/de"
	"github.com/botobag/atlas/graphql"
	"github.com/botobag/atlas/graphql/ast"
	"github.com/botobag/atlas/graphql/parser"
	"github.com/botobag/atlas/scope"

	"github.com/hashicorp/go-hclog"
)

// Option configures a Workspace.
type Option func(w *Workspace)

// WithLogger sets the logger of the Workspace. Named sub-loggers are handed to the scopes and the
// evaluation core.
func WithLogger(logger hclog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// documentFuncs are the cells of one document.
type documentFuncs struct {
	parse   *core.Func[Sources, ast.Document]
	scope   *core.Func[Sources, *scope.Scope]
	located *core.Func[Sources, *de.Located]
	fill    *core.Func[Sources, []de.Def]
	compose *core.Func[Sources, ast.Document]
}

func (funcs *documentFuncs) tasks() []core.Task[Sources] {
	return []core.Task[Sources]{funcs.parse, funcs.scope, funcs.located, funcs.fill, funcs.compose}
}

// Workspace holds the documents and the results computed from them. It is not safe for concurrent
// use.
type Workspace struct {
	core   *core.Core[Sources]
	logger hclog.Logger

	// funcs are shared by all cores the workspace goes through so that their cells carry over.
	funcs       map[string]*documentFuncs
	definitions *core.Func[Sources, *de.Definitions]

	// stats accumulated by replaced cores
	stats core.Stats
}

// New creates a Workspace over sources.
func New(sources Sources, options ...Option) *Workspace {
	w := &Workspace{
		funcs: map[string]*documentFuncs{},
	}

	for _, option := range options {
		option(w)
	}
	if w.logger == nil {
		w.logger = hclog.NewNullLogger()
	}

	w.definitions = core.NewFunc("definitions", w.buildDefinitions)
	w.core = core.New(sources, core.WithLogger(w.logger.Named("core")))

	return w
}

// Sources returns the current documents.
func (w *Workspace) Sources() Sources {
	return w.core.Data()
}

// Update sets the text of the document called name, adding the document if needed.
func (w *Workspace) Update(name string, text string) {
	w.replace(func(sources Sources) Sources {
		return sources.With(name, text)
	})
}

// Remove removes the document called name and releases the results computed from it.
func (w *Workspace) Remove(name string) {
	w.replace(func(sources Sources) Sources {
		return sources.Without(name)
	})

	if funcs, exists := w.funcs[name]; exists {
		w.core.Forget(funcs.tasks()...)
		delete(w.funcs, name)
	}
}

func (w *Workspace) replace(f func(sources Sources) Sources) {
	stats := w.core.Stats()
	w.stats.Evaluations += stats.Evaluations
	w.stats.Rollbacks += stats.Rollbacks
	w.stats.Commits += stats.Commits

	w.core = w.core.Update(f)
}

// Stats returns the evaluation counters accumulated since the workspace was created.
func (w *Workspace) Stats() core.Stats {
	stats := w.core.Stats()
	stats.Evaluations += w.stats.Evaluations
	stats.Rollbacks += w.stats.Rollbacks
	stats.Commits += w.stats.Commits
	return stats
}

// Parse returns the parsed document called name.
func (w *Workspace) Parse(name string) (ast.Document, error) {
	return core.Get(w.core, w.funcsFor(name).parse)
}

// Scope returns the scope of the document called name.
func (w *Workspace) Scope(name string) (*scope.Scope, error) {
	return core.Get(w.core, w.funcsFor(name).scope)
}

// Resolve returns the document called name with references attached to its nodes.
func (w *Workspace) Resolve(name string) (*de.Located, error) {
	return core.Get(w.core, w.funcsFor(name).located)
}

// Fill returns the definitions that the document called name needs from the other documents and
// the built-ins, along with all errors found on the way.
func (w *Workspace) Fill(name string) ([]de.Def, []error) {
	result := core.GetResult(w.core, w.funcsFor(name).fill)
	return result.Data, result.Errors
}

// Compose returns the document called name followed by the definitions filled from the other
// documents. Built-in definitions are left out.
func (w *Workspace) Compose(name string) (ast.Document, []error) {
	result := core.GetResult(w.core, w.funcsFor(name).compose)
	if !result.HasData && len(result.Errors) == 0 {
		result.Errors = []error{noSource(name)}
	}
	return result.Data, result.Errors
}

// Check fills every checked document and fails with a CheckFailed error if any error was found.
func (w *Workspace) Check() error {
	var tasks []core.Task[Sources]
	sources := w.Sources()
	for _, name := range sources.Names() {
		if sources.IsChecked(name) {
			tasks = append(tasks, w.funcsFor(name).fill)
		}
	}
	return core.Check(w.core, tasks...)
}

func noSource(name string) error {
	return graphql.NewError(fmt.Sprintf("no source named %q", name), graphql.Op("atlas.Workspace"))
}

func (w *Workspace) funcsFor(name string) *documentFuncs {
	if funcs, exists := w.funcs[name]; exists {
		return funcs
	}

	funcs := &documentFuncs{}
	funcs.parse = core.NewFunc("parse "+name, func(ctx *core.Context[Sources]) (ast.Document, error) {
		text, exists := ctx.Data().Text(name)
		if !exists {
			return ast.Document{}, noSource(name)
		}
		if !ctx.Gate(text) {
			return ast.Document{}, nil
		}

		w.logger.Debug("parsing", "source", name)
		return parser.ParseString(name, text)
	})

	funcs.scope = core.NewFunc("scope "+name, func(ctx *core.Context[Sources]) (*scope.Scope, error) {
		doc, ok := core.Try(ctx.Core(), funcs.parse)
		if !ok {
			return nil, core.Undefined
		}
		if !ctx.Gate(doc.Definitions) {
			return nil, nil
		}

		return scope.ForDocument(doc, scope.Builtins(),
			scope.WithLogger(w.logger.Named("scope").With("source", name))), nil
	})

	funcs.located = core.NewFunc("locate "+name, func(ctx *core.Context[Sources]) (*de.Located, error) {
		doc, ok := core.Try(ctx.Core(), funcs.parse)
		if !ok {
			return nil, core.Undefined
		}
		sc, ok := core.Try(ctx.Core(), funcs.scope)
		if !ok {
			return nil, core.Undefined
		}
		if !ctx.Gate(sc) {
			return nil, nil
		}

		return de.Locate(doc, sc), nil
	})

	funcs.fill = core.NewFunc("fill "+name, func(ctx *core.Context[Sources]) ([]de.Def, error) {
		located, ok := core.Try(ctx.Core(), funcs.located)
		if !ok {
			return nil, core.Undefined
		}
		definitions, ok := core.Try(ctx.Core(), w.definitions)
		if !ok {
			return nil, core.Undefined
		}
		if !ctx.Gate(located, definitions) {
			return nil, nil
		}

		added, errs := de.Fill(de.NewDefinitions(located), definitions)
		ctx.Report(errs.List()...)
		w.logger.Debug("filled", "source", name, "added", len(added), "errors", len(errs.Errors))
		return added, nil
	})

	funcs.compose = core.NewFunc("compose "+name, func(ctx *core.Context[Sources]) (ast.Document, error) {
		doc, ok := core.Try(ctx.Core(), funcs.parse)
		if !ok {
			return ast.Document{}, core.Undefined
		}
		added, ok := core.Try(ctx.Core(), funcs.fill)
		if !ok {
			return ast.Document{}, core.Undefined
		}
		if !ctx.Gate(doc.Definitions, added) {
			return ast.Document{}, nil
		}

		definitions := make(ast.Definitions, 0, len(doc.Definitions)+len(added))
		definitions = append(definitions, doc.Definitions...)
		for _, def := range added {
			if def.Ref.Graph() != scope.BuiltinsURL() {
				definitions = append(definitions, def.Definition)
			}
		}
		return ast.Document{
			Definitions: definitions,
		}, nil
	})

	w.funcs[name] = funcs
	return funcs
}

// buildDefinitions collects the definitions of every document that can be located, plus the
// built-ins.
func (w *Workspace) buildDefinitions(ctx *core.Context[Sources]) (*de.Definitions, error) {
	var (
		documents []*de.Located
		gate      []interface{}
	)
	for _, name := range ctx.Data().Names() {
		located, ok := core.Try(ctx.Core(), w.funcsFor(name).located)
		if ok {
			documents = append(documents, located)
			gate = append(gate, located)
		}
	}

	if !ctx.Gate(gate...) {
		return nil, nil
	}

	documents = append(documents, de.Builtins())
	return de.NewDefinitions(documents...), nil
}
