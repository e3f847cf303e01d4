// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package common

import (
	"os/exec"
)

// ExecuteCommand executes the given command with the given arguments and
// waits for its completion.
//
// It returns the combined standard output and standard error of the command
// and an error if any, otherwise it returns nil.
func ExecuteCommand(command string, arguments []string) (string, error) {
	out, err := exec.Command(command, arguments...).CombinedOutput()
	return string(out), err
}
