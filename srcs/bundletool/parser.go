// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package bundletool

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	otoolPattern = regexp.MustCompile(`(.+) \(.+\)`)
	rpathPattern = regexp.MustCompile(`^path (.+) \(.+\)`)
)

// parseReferences parses the output of the 'otool -L' command.
//
// It returns a slice of strings which represents the raw install names
// referenced by the inspected binary.
func parseReferences(output string) []string {
	var refs []string

	lines := strings.Split(output, "\n")
	if len(lines) > 0 {
		// The first line only contains the name of the inspected binary
		lines = lines[1:]
	}

	for _, line := range lines {
		if m := otoolPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			refs = append(refs, m[1])
		}
	}

	return refs
}

// parseSelfIdentity parses the output of the 'otool -D' command.
//
// It returns the install name a library reports for itself, or an empty
// string for binaries that carry no identity (e.g. executables).
func parseSelfIdentity(output string) string {
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		return ""
	}
	return strings.TrimSpace(lines[1])
}

// parseSearchPaths parses the output of the 'otool -l' command and collects
// the paths of all LC_RPATH load commands in declaration order.
//
// It returns an error if an LC_RPATH record does not have the expected
// structure, otherwise it returns nil.
func parseSearchPaths(output string) ([]string, error) {
	var rpaths []string

	lines := strings.Split(output, "\n")
	for i := 0; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "cmd LC_RPATH" {
			continue
		}

		// Skip the line containing "cmdsize ..."
		if i+2 >= len(lines) {
			return nil, errors.New("truncated LC_RPATH load command")
		}

		rpathLine := strings.TrimSpace(lines[i+2])
		m := rpathPattern.FindStringSubmatch(rpathLine)
		if m == nil {
			return nil, fmt.Errorf("could not extract rpath from: '%s'", rpathLine)
		}

		rpaths = append(rpaths, m[1])
		i += 2
	}

	return rpaths, nil
}

// filterSelfIdentity removes the entry by which a library references its own
// install name from the given reference list.
func filterSelfIdentity(refs []string, id string) []string {
	if id == "" {
		return refs
	}

	filtered := refs[:0]
	for _, ref := range refs {
		if ref != id {
			filtered = append(filtered, ref)
		}
	}

	return filtered
}
