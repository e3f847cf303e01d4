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

// Inspector gives read access to the load commands of a Mach-O binary.
type Inspector interface {
	// DirectReferences returns the raw install names of all shared
	// libraries directly referenced by the given binary, excluding the
	// binary's own identity entry.
	DirectReferences(binPath string) ([]string, error)

	// RuntimeSearchPaths returns the rpath entries of the given binary in
	// declaration order.
	RuntimeSearchPaths(binPath string) ([]string, error)
}

// Editor gives write access to the load commands of a Mach-O binary.
type Editor interface {
	// RewriteReference changes the library reference oldRef of the given
	// binary to newRef.
	RewriteReference(binPath, oldRef, newRef string) error

	// SetSelfIdentity changes the install name a library reports for
	// itself.
	SetSelfIdentity(libPath, id string) error

	// AddSearchPath adds an rpath entry to the given binary.
	AddSearchPath(binPath, path string) error

	// RemoveSearchPath removes an rpath entry from the given binary.
	RemoveSearchPath(binPath, path string) error
}

// MachoTool implements Inspector and Editor on top of the 'otool' and
// 'install_name_tool' command line tools.
type MachoTool struct{}

func (t MachoTool) DirectReferences(binPath string) ([]string, error) {
	output, err := u.ExecuteCommand("otool", []string{"-L", binPath})
	if err != nil {
		return nil, fmt.Errorf("otool -L %s: %w: %s", binPath, err,
			strings.TrimSpace(output))
	}

	id, err := t.selfIdentity(binPath)
	if err != nil {
		return nil, err
	}

	return filterSelfIdentity(parseReferences(output), id), nil
}

func (t MachoTool) RuntimeSearchPaths(binPath string) ([]string, error) {
	output, err := u.ExecuteCommand("otool", []string{"-l", binPath})
	if err != nil {
		return nil, fmt.Errorf("otool -l %s: %w: %s", binPath, err,
			strings.TrimSpace(output))
	}

	rpaths, err := parseSearchPaths(output)
	if err != nil {
		return nil, fmt.Errorf("otool -l %s: %w", binPath, err)
	}

	return rpaths, nil
}

// selfIdentity returns the install name the given binary reports for
// itself, or an empty string for binaries without an identity load command.
func (MachoTool) selfIdentity(binPath string) (string, error) {
	output, err := u.ExecuteCommand("otool", []string{"-D", binPath})
	if err != nil {
		return "", fmt.Errorf("otool -D %s: %w: %s", binPath, err,
			strings.TrimSpace(output))
	}

	return parseSelfIdentity(output), nil
}

func (MachoTool) RewriteReference(binPath, oldRef, newRef string) error {
	return runInstallNameTool("-change", oldRef, newRef, binPath)
}

func (MachoTool) SetSelfIdentity(libPath, id string) error {
	return runInstallNameTool("-id", id, libPath)
}

func (MachoTool) AddSearchPath(binPath, path string) error {
	return runInstallNameTool("-add_rpath", path, binPath)
}

func (MachoTool) RemoveSearchPath(binPath, path string) error {
	return runInstallNameTool("-delete_rpath", path, binPath)
}

// runInstallNameTool invokes 'install_name_tool' with the given arguments.
//
// It returns an error if the tool failed, otherwise it returns nil.
func runInstallNameTool(args ...string) error {
	if output, err := u.ExecuteCommand("install_name_tool", args); err != nil {
		return fmt.Errorf("install_name_tool %s: %w: %s",
			strings.Join(args, " "), err, strings.TrimSpace(output))
	}
	return nil
}
