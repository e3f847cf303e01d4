// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package bundletool

import (
	"errors"
	"fmt"
	"path/filepath"

	u "bundlelibs/srcs/common"
)

// ErrNameCollision is returned when two distinct libraries would be
// deployed under the same file name.
var ErrNameCollision = errors.New("library name collision")

// Relocator copies the libraries of a closure next to an executable and
// rewrites all references of the closure to point at the deployed copies.
type Relocator struct {
	inspector Inspector
	editor    Editor
	verbose   bool
}

// NewRelocator returns a Relocator using the given inspector and editor.
func NewRelocator(inspector Inspector, editor Editor, verbose bool) *Relocator {
	return &Relocator{inspector: inspector, editor: editor, verbose: verbose}
}

// Relocate deploys all libraries of the given closure into libDir (taken
// relative to the directory of the executable unless absolute) and rewrites
// every reference of the closure to the deployed copies. Unless keepRpaths
// is set, the existing rpath entries of the executable are replaced by a
// single entry pointing at the library directory.
//
// The operation is not transactional: on failure, already copied files and
// already rewritten references are left behind.
func (r *Relocator) Relocate(execPath, libDir string, libs []u.Lib,
	keepRpaths bool) error {

	execDir := filepath.Dir(execPath)

	realLibDir := libDir
	relLibDir := libDir
	if filepath.IsAbs(libDir) {
		rel, err := filepath.Rel(execDir, libDir)
		if err != nil {
			return err
		}
		relLibDir = rel
	} else {
		realLibDir = filepath.Join(execDir, libDir)
	}

	if err := r.copyLibs(realLibDir, libs); err != nil {
		return err
	}
	if err := r.rewriteReferences(execPath, realLibDir, libs); err != nil {
		return err
	}

	return r.finalizeSearchPaths(execPath, relLibDir, keepRpaths)
}

// copyLibs copies every distinct library of the closure into realLibDir
// exactly once, in first-seen order, and assigns each copy an install name
// relative to its loading binary. The destination directory is only created
// if there is actually something to copy. Two distinct libraries deploying
// under the same file name abort the copy phase.
//
// It returns an error if any, otherwise it returns nil.
func (r *Relocator) copyLibs(realLibDir string, libs []u.Lib) error {
	copied := make(map[string]bool)
	deployed := make(map[string]string)
	createdDir := false

	for _, lib := range libs {
		if copied[lib.RealPath] {
			continue
		}
		copied[lib.RealPath] = true

		base := filepath.Base(lib.RealPath)
		if first, in := deployed[base]; in {
			return fmt.Errorf("%w: '%s' and '%s' would both be deployed as '%s'",
				ErrNameCollision, first, lib.RealPath, base)
		}
		deployed[base] = lib.RealPath

		if !createdDir {
			if _, err := u.CreateFolder(realLibDir); err != nil {
				return err
			}
			createdDir = true
		}

		dst := filepath.Join(realLibDir, base)
		if r.verbose {
			u.PrintInfo("Copying '" + lib.RealPath + "' to '" + realLibDir + "'")
		}
		if err := u.CopyFileContents(lib.RealPath, dst); err != nil {
			return fmt.Errorf("copy %s: %w", lib.RealPath, err)
		}

		// The copy identifies itself relative to whatever binary loads it
		id := loaderPrefix + base
		if err := r.editor.SetSelfIdentity(dst, id); err != nil {
			return err
		}
		if r.verbose {
			u.PrintInfo("Setting id of '" + dst + "' to '" + id + "'")
		}
	}

	return nil
}

// rewriteReferences redirects every edge of the closure to its deployed
// copy: references of the executable become rpath relative, references of
// relocated libraries become loader relative and are rewritten in the
// deployed copy of the requester. Must run after the copy phase.
//
// It returns an error if any, otherwise it returns nil.
func (r *Relocator) rewriteReferences(execPath, realLibDir string,
	libs []u.Lib) error {

	for _, lib := range libs {
		base := filepath.Base(lib.RealPath)

		var reqBin, newRef string
		if lib.ReqBin == execPath {
			// References of the executable itself go through the rpath
			reqBin = execPath
			newRef = rpathPrefix + base
		} else {
			// ... otherwise relative to the directory containing the
			// requesting library, which was itself relocated
			reqBin = filepath.Join(realLibDir, filepath.Base(lib.ReqBin))
			newRef = loaderPrefix + base
		}

		if r.verbose {
			u.PrintInfo("Changing reference '" + lib.Path + "' of '" + reqBin +
				"' to '" + newRef + "'")
		}
		if err := r.editor.RewriteReference(reqBin, lib.Path, newRef); err != nil {
			return err
		}
	}

	return nil
}

// finalizeSearchPaths replaces the rpath entries of the executable by a
// single entry pointing at the library directory.
//
// It returns an error if any, otherwise it returns nil.
func (r *Relocator) finalizeSearchPaths(execPath, relLibDir string,
	keepRpaths bool) error {

	if !keepRpaths {
		rpaths, err := r.inspector.RuntimeSearchPaths(execPath)
		if err != nil {
			return err
		}
		for _, rpath := range rpaths {
			if r.verbose {
				u.PrintInfo("Removing rpath '" + rpath + "' from '" + execPath + "'")
			}
			if err := r.editor.RemoveSearchPath(execPath, rpath); err != nil {
				return err
			}
		}
	}

	rpath := execPrefix + relLibDir
	if r.verbose {
		u.PrintInfo("Setting rpath of '" + execPath + "' to '" + rpath + "'")
	}

	return r.editor.AddSearchPath(execPath, rpath)
}
