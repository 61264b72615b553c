package imports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farrlang/farr/pkgs/farrerr"
)

func withRoot(t *testing.T, root string) {
	t.Helper()
	t.Setenv(RootPathEnv, root)
}

func TestResolveFailsWithoutFarrPath(t *testing.T) {
	t.Setenv(RootPathEnv, "")
	_, err := Resolve([]string{"anything"})
	if !farrerr.Is(err, farrerr.ImportError) {
		t.Fatalf("Resolve without FARRPATH = %v, want ImportError", err)
	}
}

func TestResolveRejectsEmptyPath(t *testing.T) {
	withRoot(t, t.TempDir())
	_, err := Resolve(nil)
	if !farrerr.Is(err, farrerr.ImportError) {
		t.Fatalf("Resolve(nil) = %v, want ImportError", err)
	}
}

func TestResolveModuleFile(t *testing.T) {
	root := t.TempDir()
	libs := filepath.Join(root, "libs")
	assert.NoError(t, os.MkdirAll(libs, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(libs, "util.farr"), []byte("fn noop() = {}"), 0o644))
	withRoot(t, root)

	got, err := Resolve([]string{"util"})
	assert.NoError(t, err)
	assert.Equal(t, KindModule, got.Kind)
	assert.Equal(t, "util", got.Stem)
	assert.Equal(t, filepath.Join(libs, "util.farr"), got.ModulePath)
}

func TestResolveLibraryDirectoryRequiresFundaFarr(t *testing.T) {
	root := t.TempDir()
	libDir := filepath.Join(root, "libs", "broken")
	assert.NoError(t, os.MkdirAll(libDir, 0o755))
	withRoot(t, root)

	_, err := Resolve([]string{"broken"})
	if !farrerr.Is(err, farrerr.ImportError) {
		t.Fatalf("Resolve(missing funda.farr) = %v, want ImportError", err)
	}
}

func TestResolveLibraryCollectsSiblingsExcludingInitializer(t *testing.T) {
	root := t.TempDir()
	libDir := filepath.Join(root, "libs", "mathx")
	assert.NoError(t, os.MkdirAll(libDir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(libDir, "funda.farr"), []byte(""), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(libDir, "trig.farr"), []byte(""), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(libDir, "stats.farr"), []byte(""), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(libDir, "README.md"), []byte(""), 0o644))
	withRoot(t, root)

	got, err := Resolve([]string{"mathx"})
	assert.NoError(t, err)
	assert.Equal(t, KindLibrary, got.Kind)
	assert.Equal(t, "mathx", got.Stem)
	assert.Equal(t, filepath.Join(libDir, "funda.farr"), got.InitializerPath)
	assert.Len(t, got.SiblingPaths, 2)
	for _, p := range got.SiblingPaths {
		assert.NotEqual(t, "funda.farr", filepath.Base(p))
	}
}

func TestResolveNestedPathWalksSegments(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "libs", "outer", "inner")
	assert.NoError(t, os.MkdirAll(filepath.Join(root, "libs", "outer"), 0o755))
	assert.NoError(t, os.MkdirAll(nested, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(nested, "funda.farr"), []byte(""), 0o644))
	withRoot(t, root)

	got, err := Resolve([]string{"outer", "inner"})
	assert.NoError(t, err)
	assert.Equal(t, KindLibrary, got.Kind)
	assert.Equal(t, "inner", got.Stem)
}

func TestResolveMissingSegmentIsOSError(t *testing.T) {
	withRoot(t, t.TempDir())
	_, err := Resolve([]string{"doesnotexist"})
	if !farrerr.Is(err, farrerr.OSError) {
		t.Fatalf("Resolve(missing) = %v, want OSError", err)
	}
}

func TestResolveFileSegmentNotLastIsOSError(t *testing.T) {
	root := t.TempDir()
	libs := filepath.Join(root, "libs")
	assert.NoError(t, os.MkdirAll(libs, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(libs, "leaf.farr"), []byte(""), 0o644))
	withRoot(t, root)

	_, err := Resolve([]string{"leaf", "deeper"})
	if !farrerr.Is(err, farrerr.OSError) {
		t.Fatalf("Resolve(file then segment) = %v, want OSError", err)
	}
}

func TestStemStripsExtension(t *testing.T) {
	assert.Equal(t, "util", Stem("/some/dir/util.farr"))
}
