// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package bundletool

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Placeholder prefixes that may start a raw library reference.
const (
	execPrefix   = "@executable_path/"
	rpathPrefix  = "@rpath/"
	loaderPrefix = "@loader_path/"
)

// ErrReferenceNotFound is returned when a reference cannot be resolved
// against any runtime search path of the anchor executable.
var ErrReferenceNotFound = errors.New("reference not found")

// refKind classifies a raw library reference by its placeholder prefix.
type refKind int

const (
	refPlain refKind = iota
	refExecRelative
	refSearchPathRelative
	refLoaderRelative
)

// classifyReference splits a raw reference into its placeholder kind and
// the path suffix following the placeholder.
func classifyReference(raw string) (refKind, string) {
	switch {
	case strings.HasPrefix(raw, execPrefix):
		return refExecRelative, raw[len(execPrefix):]
	case strings.HasPrefix(raw, rpathPrefix):
		return refSearchPathRelative, raw[len(rpathPrefix):]
	case strings.HasPrefix(raw, loaderPrefix):
		return refLoaderRelative, raw[len(loaderPrefix):]
	}
	return refPlain, raw
}

// Resolver expands raw library references into canonical filesystem paths.
type Resolver struct {
	inspector Inspector
}

// Resolve turns a raw library reference into an absolute path with all
// placeholder prefixes, relative components and symbolic links resolved.
// reqBin is the binary carrying the reference, execPath the top level
// executable; either may be empty, in which case the placeholder kinds
// anchored on it degrade to plain resolution.
//
// It returns the resolved path and an error if any, otherwise it returns
// nil.
func (r *Resolver) Resolve(raw, reqBin, execPath string) (string, error) {
	kind, suffix := classifyReference(raw)

	switch kind {
	case refExecRelative:
		if execPath == "" {
			break
		}
		return realPath(filepath.Join(filepath.Dir(execPath), suffix))

	case refSearchPathRelative:
		if execPath == "" {
			break
		}
		rpaths, err := r.inspector.RuntimeSearchPaths(execPath)
		if err != nil {
			return "", err
		}
		// Search paths are tried in declaration order, the first existing
		// candidate wins. Candidates are concatenated rather than joined:
		// an rpath entry may itself start with a placeholder that path
		// cleaning would swallow.
		for _, rpath := range rpaths {
			candidate := strings.TrimSuffix(rpath, "/") + "/" + suffix
			p, err := r.Resolve(candidate, reqBin, execPath)
			if err == nil {
				return p, nil
			}
			if !candidateAbsent(err) {
				return "", err
			}
		}
		return "", fmt.Errorf("%w: %s", ErrReferenceNotFound, raw)

	case refLoaderRelative:
		if reqBin == "" {
			break
		}
		return realPath(filepath.Join(filepath.Dir(reqBin), suffix))
	}

	return realPath(raw)
}

// candidateAbsent reports whether resolving a search path candidate failed
// only because nothing exists there. Any other failure, such as a tool
// invocation error while enumerating nested search paths, must not be
// mistaken for an unresolved reference.
func candidateAbsent(err error) bool {
	return errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, ErrReferenceNotFound)
}

// realPath resolves relative components and symbolic links of the given
// path.
//
// It returns an absolute path and an error if any, otherwise it returns
// nil.
func realPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	return resolved, nil
}
