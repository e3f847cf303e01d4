// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package bundletool

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	u "bundlelibs/srcs/common"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// verifyRelocation re-reads the references of the executable and of every
// deployed copy and compares them against the rewritten references the
// relocation should have produced.
//
// It returns an error carrying a readable diff if the deployed closure does
// not match the expectation, otherwise it returns nil.
func verifyRelocation(inspector Inspector, execPath, realLibDir string,
	libs []u.Lib) error {

	expected := make(map[string][]string)
	for _, lib := range libs {
		base := filepath.Base(lib.RealPath)
		if lib.ReqBin == execPath {
			expected[execPath] = append(expected[execPath], rpathPrefix+base)
		} else {
			reqBin := filepath.Join(realLibDir, filepath.Base(lib.ReqBin))
			expected[reqBin] = append(expected[reqBin], loaderPrefix+base)
		}
	}

	binaries := make([]string, 0, len(expected))
	for binPath := range expected {
		binaries = append(binaries, binPath)
	}
	sort.Strings(binaries)

	for _, binPath := range binaries {
		actual, err := inspector.DirectReferences(binPath)
		if err != nil {
			return err
		}
		for _, want := range expected[binPath] {
			if !u.Contains(actual, want) {
				return fmt.Errorf("relocation verification failed for %s:\n%s",
					binPath, referenceDiff(expected[binPath], actual))
			}
		}
	}

	return nil
}

// referenceDiff renders a readable diff between the expected and the actual
// reference list of a binary.
func referenceDiff(expected, actual []string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(strings.Join(expected, "\n"),
		strings.Join(actual, "\n"), false)
	return dmp.DiffPrettyText(diffs)
}
