// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package bundletool

import (
	"os"

	u "bundlelibs/srcs/common"

	"github.com/akamensky/argparse"
)

const (
	programArg    = "program"
	listArg       = "list"
	verboseArg    = "verbose"
	excludeArg    = "exclude"
	noExcludeArg  = "no-exclude"
	libDirArg     = "lib-dir"
	keepRpathsArg = "keep-rpaths"
	forceArg      = "force"
	saveOutputArg = "saveOutput"
)

// Libraries below these prefixes are provided by the target system and are
// not bundled.
var defaultExcludePaths = []string{"/usr/lib", "/System/Library/Frameworks/"}

const defaultLibDir = "../Libraries"

// parseLocalArguments parses arguments of the application.
func parseLocalArguments(p *argparse.Parser, args *u.Arguments) error {

	args.InitArgParse(p, args, u.STRING, "p", programArg,
		&argparse.Options{Required: true, Help: "Path of the executable to " +
			"bundle shared libraries for"})
	args.InitArgParse(p, args, u.BOOL, "l", listArg,
		&argparse.Options{Required: false, Default: false,
			Help: "Only list shared libraries, does not modify anything"})
	args.InitArgParse(p, args, u.BOOL, "v", verboseArg,
		&argparse.Options{Required: false, Default: false, Help: "Be verbose"})
	args.InitArgParse(p, args, u.LIST, "x", excludeArg,
		&argparse.Options{Required: false, Help: "Exclude shared libraries " +
			"starting with these paths (default: '/usr/lib " +
			"/System/Library/Frameworks/')"})
	args.InitArgParse(p, args, u.BOOL, "X", noExcludeArg,
		&argparse.Options{Required: false, Default: false,
			Help: "Do not exclude any shared libraries, also process " +
				"system libraries"})
	args.InitArgParse(p, args, u.STRING, "L", libDirArg,
		&argparse.Options{Required: false, Default: defaultLibDir,
			Help: "Directory to install libraries to, relative to the given " +
				"executable (default: '../Libraries')"})
	args.InitArgParse(p, args, u.BOOL, "k", keepRpathsArg,
		&argparse.Options{Required: false, Default: false,
			Help: "Keep existing rpaths of the executable"})
	args.InitArgParse(p, args, u.BOOL, "f", forceArg,
		&argparse.Options{Required: false, Default: false,
			Help: "Write into a non-empty library directory without asking " +
				"for confirmation"})
	args.InitArgParse(p, args, u.BOOL, "", saveOutputArg,
		&argparse.Options{Required: false, Default: false,
			Help: "Save the closure as JSON file and its graph as DOT file"})

	return u.ParserWrapper(p, os.Args)
}

// activeExcludePaths returns the exclusion prefixes selected by the
// arguments: none at all when exclusion is disabled, the defaults when no
// prefix was given.
func activeExcludePaths(exclude []string, noExclude bool) []string {
	if noExclude {
		return nil
	}
	if len(exclude) == 0 {
		return defaultExcludePaths
	}
	return exclude
}
