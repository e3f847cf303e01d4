package bundletool

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeInspector serves canned references and rpaths keyed by binary path.
// Inspecting an undeclared path fails; leaves declare an empty reference
// list.
type fakeInspector struct {
	refs      map[string][]string
	rpaths    map[string][]string
	inspected []string

	// When rpathErr is set, RuntimeSearchPaths fails after rpathErrSkip
	// more successful calls.
	rpathErr     error
	rpathErrSkip int
}

func (f *fakeInspector) DirectReferences(binPath string) ([]string, error) {
	f.inspected = append(f.inspected, binPath)
	refs, in := f.refs[binPath]
	if !in {
		return nil, fmt.Errorf("otool -L %s: unknown binary", binPath)
	}
	return refs, nil
}

func (f *fakeInspector) RuntimeSearchPaths(binPath string) ([]string, error) {
	if f.rpathErr != nil {
		if f.rpathErrSkip == 0 {
			return nil, f.rpathErr
		}
		f.rpathErrSkip--
	}
	return f.rpaths[binPath], nil
}

// editOp records a single metadata edit performed through the fake editor.
type editOp struct {
	op      string
	binPath string
	arg1    string
	arg2    string
}

// fakeEditor records all edits in invocation order.
type fakeEditor struct {
	ops []editOp
}

func (f *fakeEditor) RewriteReference(binPath, oldRef, newRef string) error {
	f.ops = append(f.ops, editOp{"change", binPath, oldRef, newRef})
	return nil
}

func (f *fakeEditor) SetSelfIdentity(libPath, id string) error {
	f.ops = append(f.ops, editOp{"id", libPath, id, ""})
	return nil
}

func (f *fakeEditor) AddSearchPath(binPath, path string) error {
	f.ops = append(f.ops, editOp{"add_rpath", binPath, path, ""})
	return nil
}

func (f *fakeEditor) RemoveSearchPath(binPath, path string) error {
	f.ops = append(f.ops, editOp{"delete_rpath", binPath, path, ""})
	return nil
}

// opsNamed returns the recorded edits of the given kind, in order.
func (f *fakeEditor) opsNamed(op string) []editOp {
	var out []editOp
	for _, o := range f.ops {
		if o.op == op {
			out = append(out, o)
		}
	}
	return out
}

// tempRoot returns a fresh temporary directory with all symbolic links
// resolved, so paths produced by the resolver can be compared literally.
func tempRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return root
}

// writeFile creates a file (and its parent directories) with throwaway
// contents at the given path.
func writeFile(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, ioutil.WriteFile(path, []byte("contents of "+path), 0644))
	return path
}
