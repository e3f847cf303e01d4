package bundletool

import (
	"errors"
	"path/filepath"
	"testing"

	u "bundlelibs/srcs/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioTree builds the reference scenario on disk: an executable
// referencing libA through the rpath and a system library, with libA
// referencing libB loader relative.
func scenarioTree(t *testing.T) (execPath, libA, libB string, inspector *fakeInspector) {
	t.Helper()
	root := tempRoot(t)

	execPath = writeFile(t, filepath.Join(root, "bin", "app"))
	libA = writeFile(t, filepath.Join(root, "lib", "libA.dylib"))
	libB = writeFile(t, filepath.Join(root, "lib", "libB.dylib"))

	inspector = &fakeInspector{
		refs: map[string][]string{
			execPath: {"@rpath/libA.dylib", "/usr/lib/libSystem.B.dylib"},
			libA:     {"@loader_path/libB.dylib"},
			libB:     {},
		},
		rpaths: map[string][]string{
			execPath: {filepath.Join(root, "lib")},
		},
	}
	return execPath, libA, libB, inspector
}

// collect drains a full walk into a slice.
func collect(t *testing.T, w *Walker, execPath string) []u.Lib {
	t.Helper()
	var libs []u.Lib
	require.NoError(t, w.Walk(execPath, execPath, func(lib u.Lib) error {
		libs = append(libs, lib)
		return nil
	}))
	return libs
}

func TestWalkScenario(t *testing.T) {
	execPath, libA, libB, inspector := scenarioTree(t)

	w := NewWalker(inspector, defaultExcludePaths)
	libs := collect(t, w, execPath)

	assert.Equal(t, []u.Lib{
		{ReqBin: execPath, Path: "@rpath/libA.dylib", RealPath: libA},
		{ReqBin: libA, Path: "@loader_path/libB.dylib", RealPath: libB},
	}, libs)
}

func TestWalkExcludedReferencesAreNeverResolved(t *testing.T) {
	// The excluded reference points at a file that does not exist;
	// resolving it would fail the walk.
	execPath, _, _, inspector := scenarioTree(t)

	w := NewWalker(inspector, defaultExcludePaths)
	libs := collect(t, w, execPath)

	for _, lib := range libs {
		assert.NotContains(t, lib.Path, "libSystem")
	}
	assert.NotContains(t, inspector.inspected, "/usr/lib/libSystem.B.dylib")
}

func TestWalkWithoutExclusionEmitsEverything(t *testing.T) {
	root := tempRoot(t)
	sysDir := filepath.Join(root, "usr", "lib")
	sysLib := writeFile(t, filepath.Join(sysDir, "libSystem.B.dylib"))
	libA := writeFile(t, filepath.Join(root, "lib", "libA.dylib"))
	execPath := writeFile(t, filepath.Join(root, "bin", "app"))

	inspector := &fakeInspector{
		refs: map[string][]string{
			execPath: {sysLib, libA},
			sysLib:   {},
			libA:     {},
		},
	}

	pruned := collect(t, NewWalker(inspector, []string{sysDir}), execPath)
	assert.Equal(t, []u.Lib{
		{ReqBin: execPath, Path: libA, RealPath: libA},
	}, pruned)

	// Disabling exclusion walks through system libraries too
	full := collect(t, NewWalker(inspector,
		activeExcludePaths(nil, true)), execPath)
	assert.Equal(t, []u.Lib{
		{ReqBin: execPath, Path: sysLib, RealPath: sysLib},
		{ReqBin: execPath, Path: libA, RealPath: libA},
	}, full)
}

func TestWalkTerminatesOnCycle(t *testing.T) {
	root := tempRoot(t)
	libA := writeFile(t, filepath.Join(root, "lib", "libA.dylib"))
	libB := writeFile(t, filepath.Join(root, "lib", "libB.dylib"))
	execPath := writeFile(t, filepath.Join(root, "bin", "app"))

	inspector := &fakeInspector{
		refs: map[string][]string{
			execPath: {libA},
			libA:     {"@loader_path/libB.dylib"},
			libB:     {"@loader_path/libA.dylib"},
		},
	}

	w := NewWalker(inspector, nil)
	libs := collect(t, w, execPath)

	assert.Equal(t, []u.Lib{
		{ReqBin: execPath, Path: libA, RealPath: libA},
		{ReqBin: libA, Path: "@loader_path/libB.dylib", RealPath: libB},
		{ReqBin: libB, Path: "@loader_path/libA.dylib", RealPath: libA},
	}, libs)
}

func TestWalkDiamondEmitsEveryEdgeOnce(t *testing.T) {
	root := tempRoot(t)
	libA := writeFile(t, filepath.Join(root, "lib", "libA.dylib"))
	libB := writeFile(t, filepath.Join(root, "lib", "libB.dylib"))
	libC := writeFile(t, filepath.Join(root, "lib", "libC.dylib"))
	execPath := writeFile(t, filepath.Join(root, "bin", "app"))

	inspector := &fakeInspector{
		refs: map[string][]string{
			execPath: {libA, libB},
			libA:     {"@loader_path/libC.dylib"},
			libB:     {"@loader_path/libC.dylib"},
			libC:     {},
		},
	}

	w := NewWalker(inspector, nil)
	libs := collect(t, w, execPath)

	// Pre-order: the subtree of libA is fully visited before libB
	assert.Equal(t, []u.Lib{
		{ReqBin: execPath, Path: libA, RealPath: libA},
		{ReqBin: libA, Path: "@loader_path/libC.dylib", RealPath: libC},
		{ReqBin: execPath, Path: libB, RealPath: libB},
		{ReqBin: libB, Path: "@loader_path/libC.dylib", RealPath: libC},
	}, libs)
}

func TestWalkDuplicateReferenceEmittedOnce(t *testing.T) {
	root := tempRoot(t)
	libA := writeFile(t, filepath.Join(root, "lib", "libA.dylib"))
	execPath := writeFile(t, filepath.Join(root, "bin", "app"))

	inspector := &fakeInspector{
		refs: map[string][]string{
			execPath: {libA, libA},
			libA:     {},
		},
	}

	w := NewWalker(inspector, nil)
	libs := collect(t, w, execPath)

	assert.Len(t, libs, 1)
}

func TestWalkResolutionFailureAbortsTraversal(t *testing.T) {
	root := tempRoot(t)
	libA := writeFile(t, filepath.Join(root, "lib", "libA.dylib"))
	execPath := writeFile(t, filepath.Join(root, "bin", "app"))
	missing := filepath.Join(root, "lib", "libGone.dylib")

	inspector := &fakeInspector{
		refs: map[string][]string{
			execPath: {missing, libA},
			libA:     {},
		},
	}

	w := NewWalker(inspector, nil)
	var libs []u.Lib
	err := w.Walk(execPath, execPath, func(lib u.Lib) error {
		libs = append(libs, lib)
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
	// Nothing after the failing edge is visited
	assert.Empty(t, libs)
}

func TestWalkInspectionFailureAbortsTraversal(t *testing.T) {
	root := tempRoot(t)
	libA := writeFile(t, filepath.Join(root, "lib", "libA.dylib"))
	execPath := writeFile(t, filepath.Join(root, "bin", "app"))

	// libA resolves on disk but cannot be inspected
	inspector := &fakeInspector{
		refs: map[string][]string{
			execPath: {libA},
		},
	}

	w := NewWalker(inspector, nil)
	var libs []u.Lib
	err := w.Walk(execPath, execPath, func(lib u.Lib) error {
		libs = append(libs, lib)
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), libA)
	// The edge into libA was already emitted when its inspection failed
	assert.Equal(t, []u.Lib{
		{ReqBin: execPath, Path: libA, RealPath: libA},
	}, libs)
}

func TestWalkEnumerationIsIdempotent(t *testing.T) {
	execPath, _, _, inspector := scenarioTree(t)

	first := collect(t, NewWalker(inspector, defaultExcludePaths), execPath)
	second := collect(t, NewWalker(inspector, defaultExcludePaths), execPath)

	assert.Equal(t, first, second)
}

func TestWalkerVisitedSetSpansCalls(t *testing.T) {
	execPath, _, _, inspector := scenarioTree(t)

	w := NewWalker(inspector, defaultExcludePaths)
	first := collect(t, w, execPath)
	second := collect(t, w, execPath)

	assert.NotEmpty(t, first)
	// The sequence is exhausted after one full consumption
	assert.Empty(t, second)
}

func TestWalkVisitErrorPropagates(t *testing.T) {
	execPath, _, _, inspector := scenarioTree(t)

	w := NewWalker(inspector, defaultExcludePaths)
	boom := errors.New("boom")
	err := w.Walk(execPath, execPath, func(u.Lib) error { return boom })

	assert.True(t, errors.Is(err, boom))
}
