// Package imports resolves a Farr `use` path against the filesystem,
// grounded on original_source/farr/interpreter/__init__.py's
// _resolve_import_path. It only walks the filesystem and decides
// module-vs-library; pkgs/interpreter is responsible for actually lexing,
// parsing and interpreting the resolved file(s) (avoiding a package cycle,
// since resolving a library's funda.farr requires running a full
// sub-interpreter).
package imports

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/farrlang/farr/pkgs/farrerr"
)

// Environment variable naming the root directory `use` paths are resolved
// under, grounded on constants.py's RESOURCES_ROOT_PATH.
const RootPathEnv = "FARRPATH"

// FileExtension is the suffix every Farr source file carries.
const FileExtension = ".farr"

// LibraryInitializer is the file a library directory must contain,
// interpreted first to seed the library's own namespace.
const LibraryInitializer = "funda" + FileExtension

// Kind distinguishes a single-file import from a directory-of-files one.
type Kind int

const (
	KindModule Kind = iota
	KindLibrary
)

// Resolved is the result of walking a `use` path.
type Resolved struct {
	Kind Kind
	// Stem is the final path segment's file/directory name, sans
	// extension — what the import is bound under in the importing scope.
	Stem string
	// ModulePath is set when Kind == KindModule: the single file to load.
	ModulePath string
	// LibraryDir is set when Kind == KindLibrary: the directory containing
	// the library's files.
	LibraryDir string
	// InitializerPath is LibraryDir/funda.farr, interpreted first.
	InitializerPath string
	// SiblingPaths are every other `.farr` file directly inside
	// LibraryDir, each becoming a nested Module keyed by its own stem.
	SiblingPaths []string
}

// Resolve walks FARRPATH/path[0]/path[1]/... , matching
// _resolve_import_path's segment-by-segment directory-or-file walk.
func Resolve(path []string) (Resolved, error) {
	root, ok := os.LookupEnv(RootPathEnv)
	if !ok || root == "" {
		return Resolved{}, farrerr.New(farrerr.ImportError, RootPathEnv+" is not set", farrerr.Position{})
	}
	if len(path) == 0 {
		return Resolved{}, farrerr.New(farrerr.ImportError, "empty use path", farrerr.Position{})
	}

	current := filepath.Join(root, "libs")
	for i, segment := range path {
		last := i == len(path)-1
		asFile := filepath.Join(current, segment+FileExtension)
		asDir := filepath.Join(current, segment)

		fileInfo, fileErr := os.Stat(asFile)
		dirInfo, dirErr := os.Stat(asDir)

		switch {
		case dirErr == nil && dirInfo.IsDir():
			current = asDir
			if last {
				if _, err := os.Stat(filepath.Join(asDir, LibraryInitializer)); err != nil {
					return Resolved{}, farrerr.Wrap(farrerr.ImportError, "library '"+segment+"' is missing "+LibraryInitializer, err, farrerr.Position{})
				}
				return resolveLibrary(segment, asDir)
			}
		case fileErr == nil && !fileInfo.IsDir():
			if !last {
				return Resolved{}, farrerr.New(farrerr.OSError, "'"+segment+"' is a file, not a directory", farrerr.Position{})
			}
			return Resolved{Kind: KindModule, Stem: segment, ModulePath: asFile}, nil
		default:
			return Resolved{}, farrerr.New(farrerr.OSError, "no such module or library: '"+segment+"'", farrerr.Position{})
		}
	}
	return Resolved{}, farrerr.New(farrerr.ImportError, "empty use path", farrerr.Position{})
}

func resolveLibrary(stem, dir string) (Resolved, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Resolved{}, farrerr.Wrap(farrerr.OSError, "failed to read library directory", err, farrerr.Position{})
	}
	var siblings []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FileExtension) {
			continue
		}
		if entry.Name() == LibraryInitializer {
			continue
		}
		siblings = append(siblings, filepath.Join(dir, entry.Name()))
	}
	return Resolved{
		Kind:            KindLibrary,
		Stem:            stem,
		LibraryDir:      dir,
		InitializerPath: filepath.Join(dir, LibraryInitializer),
		SiblingPaths:    siblings,
	}, nil
}

// Stem returns a file path's base name without its Farr extension, used
// to name each sibling module inside a library.
func Stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), FileExtension)
}
