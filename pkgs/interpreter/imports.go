package interpreter

import (
	"os"
	"strings"

	"github.com/farrlang/farr/pkgs/environment"
	"github.com/farrlang/farr/pkgs/farrerr"
	"github.com/farrlang/farr/pkgs/imports"
	"github.com/farrlang/farr/pkgs/parser"
	"github.com/farrlang/farr/pkgs/value"
)

// FileImporter is the concrete Importer (New installs none; cmd/farr
// installs this one): it resolves a `use` path against FARRPATH via pkgs/imports,
// then runs the resolved file(s) through their own sub-Interpreter,
// grounded on original_source/farr/interpreter/__init__.py's _use_path
// (which recursively builds a fresh Interpreter per imported file).
// Results are cached by path so re-importing the same module within one
// run doesn't re-execute its side effects.
type FileImporter struct {
	// Seed builds the symbol table each sub-interpreter starts from
	// (ordinarily pkgs/builtins.Symbols, called fresh per file so no
	// state leaks between imports through a shared builtin map).
	Seed func() map[string]value.Value

	cache map[string]value.Value
}

// NewFileImporter creates a FileImporter. seed is called once per
// resolved file.
func NewFileImporter(seed func() map[string]value.Value) *FileImporter {
	return &FileImporter{Seed: seed, cache: map[string]value.Value{}}
}

// Import resolves path and runs it, returning a Module for a single file
// or a Library for a directory carrying funda.farr plus sibling modules.
func (fi *FileImporter) Import(path []string) (value.Value, error) {
	key := strings.Join(path, "/")
	if v, ok := fi.cache[key]; ok {
		return v, nil
	}

	resolved, err := imports.Resolve(path)
	if err != nil {
		return nil, err
	}

	var result value.Value
	switch resolved.Kind {
	case imports.KindModule:
		result, err = fi.runModule(resolved.Stem, resolved.ModulePath)
	case imports.KindLibrary:
		result, err = fi.runLibrary(resolved)
	default:
		return nil, farrerr.New(farrerr.ImportError, "unknown import kind for '"+key+"'", farrerr.Position{})
	}
	if err != nil {
		return nil, err
	}

	fi.cache[key] = result
	return result, nil
}

func (fi *FileImporter) runModule(stem, path string) (value.Module, error) {
	env, err := fi.runFile(path)
	if err != nil {
		return value.Module{}, err
	}
	return value.Module{Name: stem, Environment: env}, nil
}

// runLibrary interprets a library's funda.farr first to seed the
// library's own namespace, then interprets every sibling file into its
// own nested Module bound under its stem inside that same namespace —
// the original's two-pass library load (initializer, then siblings).
func (fi *FileImporter) runLibrary(r imports.Resolved) (value.Library, error) {
	env, err := fi.runFile(r.InitializerPath)
	if err != nil {
		return value.Library{}, err
	}

	for _, sibling := range r.SiblingPaths {
		siblingEnv, err := fi.runFile(sibling)
		if err != nil {
			return value.Library{}, err
		}
		stem := imports.Stem(sibling)
		env.Assign(stem, value.Module{Name: stem, Environment: siblingEnv})
	}

	return value.Library{Name: r.Stem, Environment: env}, nil
}

func (fi *FileImporter) runFile(path string) (*environment.Environment, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, farrerr.Wrap(farrerr.OSError, "failed to read '"+path+"'", err, farrerr.Position{})
	}
	program, err := parser.Parse(string(src))
	if err != nil {
		return nil, farrerr.Wrap(farrerr.RuntimeError, "failed to parse '"+path+"'", err, farrerr.Position{})
	}

	sub := New(fi.Seed())
	sub.SetImporter(fi)
	if _, err := sub.Run(program); err != nil {
		return nil, err
	}
	return sub.Env(), nil
}
