// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package bundletool

import (
	"fmt"
	"strings"

	u "bundlelibs/srcs/common"
)

// Walker produces the dependency closure of a binary as a depth first
// traversal of the "requesting binary -> referenced library" graph.
type Walker struct {
	inspector Inspector
	resolver  *Resolver
	exclude   []string
	visited   map[u.Lib]bool
}

// NewWalker returns a Walker that prunes references starting with one of
// the given exclusion prefixes. The visited set is shared across all calls
// to Walk: a Walker yields every distinct edge at most once in its
// lifetime.
func NewWalker(inspector Inspector, exclude []string) *Walker {
	return &Walker{
		inspector: inspector,
		resolver:  &Resolver{inspector: inspector},
		exclude:   exclude,
		visited:   make(map[u.Lib]bool),
	}
}

// excluded reports whether the given raw reference starts with one of the
// exclusion prefixes.
func (w *Walker) excluded(raw string) bool {
	for _, prefix := range w.exclude {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}
	return false
}

// Walk visits all shared libraries directly and indirectly referenced by
// the given binary and calls visit once for every newly discovered edge, in
// pre-order. Raw references matching an exclusion prefix terminate their
// branch without being resolved. The first inspection or resolution failure
// aborts the whole traversal.
//
// It returns an error if any, otherwise it returns nil.
func (w *Walker) Walk(binPath, execPath string, visit func(u.Lib) error) error {
	refs, err := w.inspector.DirectReferences(binPath)
	if err != nil {
		return err
	}

	for _, raw := range refs {
		if w.excluded(raw) {
			continue
		}

		realLibPath, err := w.resolver.Resolve(raw, binPath, execPath)
		if err != nil {
			return fmt.Errorf("%s references %s: %w", binPath, raw, err)
		}

		lib := u.Lib{ReqBin: binPath, Path: raw, RealPath: realLibPath}
		if w.visited[lib] {
			continue
		}
		w.visited[lib] = true

		if err := visit(lib); err != nil {
			return err
		}
		if err := w.Walk(realLibPath, execPath, visit); err != nil {
			return err
		}
	}

	return nil
}
