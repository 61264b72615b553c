// Package environment implements Farr's lexically-scoped variable storage.
package environment

import (
	"sort"

	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/value"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Environment is a single lexical scope, parent-chained for lookups,
// grounded on original_source/farr/interpreter/base.py's Environment.
type Environment struct {
	symbols map[string]value.Value
	parent  *Environment
}

// New creates a root environment, optionally seeded with builtin symbols.
func New(seed map[string]value.Value) *Environment {
	symbols := make(map[string]value.Value, len(seed))
	for k, v := range seed {
		symbols[k] = v
	}
	return &Environment{symbols: symbols}
}

// Child creates a new scope nested under parent.
func Child(parent *Environment) *Environment {
	return &Environment{symbols: make(map[string]value.Value), parent: parent}
}

// Assign writes name into the current scope, shadowing any outer binding.
func (e *Environment) Assign(name string, v value.Value) {
	e.symbols[name] = v
}

// Replace writes name into the nearest enclosing scope that already
// defines it, returning a NameError if no scope defines it.
func (e *Environment) Replace(name string, v value.Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.symbols[name]; ok {
			env.symbols[name] = v
			return nil
		}
	}
	return e.nameError(name)
}

// Locate reads name by walking the parent chain, returning a NameError
// (with a fuzzy "did you mean" suggestion) if undefined anywhere.
func (e *Environment) Locate(name string) (value.Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.symbols[name]; ok {
			return v, nil
		}
	}
	return nil, e.nameError(name)
}

// Exists reports whether name is defined after walking exactly depth
// parents up from the current scope — used to validate keyword-argument
// names against the immediate call-target scope (depth 0).
func (e *Environment) Exists(name string, depth int) bool {
	env := e
	for i := 0; i < depth && env != nil; i++ {
		env = env.parent
	}
	if env == nil {
		return false
	}
	_, ok := env.symbols[name]
	return ok
}

// Copy duplicates the environment and its parent chain, the Go analogue
// of the original's memoized __deepcopy__: every scope gets its own symbol
// map, so assignments into the copy do not reach the original. The stored
// values themselves are not cloned.
func (e *Environment) Copy() *Environment {
	if e == nil {
		return nil
	}
	symbols := make(map[string]value.Value, len(e.symbols))
	for k, v := range e.symbols {
		symbols[k] = v
	}
	return &Environment{symbols: symbols, parent: e.parent.Copy()}
}

// Names returns every name visible from this scope outward, used for
// fuzzy NameError suggestions and nowhere else performance-sensitive.
func (e *Environment) Names() []string {
	var names []string
	for env := e; env != nil; env = env.parent {
		for k := range env.symbols {
			names = append(names, k)
		}
	}
	return names
}

func (e *Environment) nameError(name string) error {
	suggestion := closestName(name, e.Names())
	msg := "name '" + name + "' is not defined"
	if suggestion != "" {
		msg += "! Did you mean '" + suggestion + "'?"
	}
	return farrerr.New(farrerr.NameError, msg, farrerr.Position{})
}

// closestName finds the visible name with the smallest Levenshtein
// distance to target, used to enrich NameError the way
// github.com/lithammer/fuzzysearch is wired for in SPEC_FULL.md.
func closestName(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	sort.Strings(candidates) // stable tie-breaking
	best := ""
	bestDist := -1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(target, c)
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = c
		}
	}
	if bestDist > len(target)/2+1 {
		return "" // too dissimilar to be a useful suggestion
	}
	return best
}
