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
	"runtime"
	"strings"

	u "bundlelibs/srcs/common"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
)

// RunBundlerTool allows to run the shared library bundler tool.
func RunBundlerTool() {

	// Support only Unix
	if strings.ToLower(runtime.GOOS) == "windows" {
		u.PrintErr("Windows platform is not supported")
	}

	// Init and parse local arguments
	args := new(u.Arguments)
	p, err := args.InitArguments("bundlelibs",
		"Copy all shared libraries required for running the given executable "+
			"(system libraries are excluded by default) to a directory next to "+
			"it and adjust all search paths, so the executable can be deployed "+
			"standalone")
	if err != nil {
		u.PrintErr(err)
	}
	if err := parseLocalArguments(p, args); err != nil {
		u.PrintErr(err)
	}

	verbose := *args.BoolArg[verboseArg]

	// Resolve the executable path
	execPath, err := realPath(*args.StringArg[programArg])
	if err != nil {
		u.PrintErr("Could not determine executable path: ", err)
	}

	// Check that the program is a Mach-O binary
	if err := getMachO(execPath); err != nil {
		u.PrintErr(err)
	}

	exclude := activeExcludePaths(*args.ListArg[excludeArg],
		*args.BoolArg[noExcludeArg])

	displayProgramDetails(execPath, exclude, args)

	tool := MachoTool{}
	walker := NewWalker(tool, exclude)

	data := new(u.Data)
	data.BundleData.Executable = execPath

	if *args.BoolArg[listArg] {
		u.PrintHeader2("(1) LIST SHARED LIBRARIES")
		if err := listLibs(walker, execPath, verbose, data); err != nil {
			u.PrintErr(err)
		}
	} else {
		u.PrintHeader2("(1) BUNDLE SHARED LIBRARIES")
		if err := bundleLibs(walker, tool, execPath,
			*args.StringArg[libDirArg], verbose, *args.BoolArg[keepRpathsArg],
			*args.BoolArg[forceArg], data); err != nil {
			u.PrintErr(err)
		}
	}

	// Save closure and graph if save output option is set
	if *args.BoolArg[saveOutputArg] {
		saveOutput(execPath, data)
	}
}

// displayProgramDetails displays the executable path and the active options.
func displayProgramDetails(execPath string, exclude []string, args *u.Arguments) {
	fmt.Println("----------------------------------------------")
	fmt.Println("Executable: ", color.GreenString(execPath))
	if len(exclude) == 0 {
		fmt.Println("Excluded prefixes: ", color.GreenString("(none)"))
	} else {
		fmt.Println("Excluded prefixes: ", color.GreenString(strings.Join(exclude, " ")))
	}
	if !*args.BoolArg[listArg] {
		fmt.Println("Library directory: ", color.GreenString(*args.StringArg[libDirArg]))
	}
	fmt.Println("----------------------------------------------")
}

// listLibs prints the dependency closure of the executable without
// modifying anything. Verbose mode prints full requester/reference/real
// triples, otherwise each distinct real path is printed once.
//
// It returns an error if any, otherwise it returns nil.
func listLibs(walker *Walker, execPath string, verbose bool, data *u.Data) error {
	if verbose {
		fmt.Println("requesting binary\treference path\treal library path")
	} else {
		fmt.Println("real library path")
	}

	printed := make(map[string]bool)
	return walker.Walk(execPath, execPath, func(lib u.Lib) error {
		data.BundleData.Libs = append(data.BundleData.Libs, lib)
		if verbose {
			fmt.Printf("%s\t%s\t%s\n", lib.ReqBin, lib.Path, lib.RealPath)
		} else if !printed[lib.RealPath] {
			// Print only paths we have not printed yet
			printed[lib.RealPath] = true
			fmt.Println(lib.RealPath)
		}
		return nil
	})
}

// bundleLibs walks the dependency closure of the executable, relocates it
// into the library directory and verifies the deployed references.
//
// It returns an error if any, otherwise it returns nil.
func bundleLibs(walker *Walker, tool MachoTool, execPath, libDir string,
	verbose, keepRpaths, force bool, data *u.Data) error {

	execDir := filepath.Dir(execPath)
	realLibDir := libDir
	if !filepath.IsAbs(libDir) {
		realLibDir = filepath.Join(execDir, libDir)
	}

	if !force && folderNotEmpty(realLibDir) {
		overwrite := false
		prompt := &survey.Confirm{
			Message: "Library directory '" + realLibDir +
				"' already contains files, overwrite?",
		}
		if err := survey.AskOne(prompt, &overwrite); err != nil {
			return err
		}
		if !overwrite {
			return errors.New("aborted: library directory not empty")
		}
	}

	var libs []u.Lib
	if err := walker.Walk(execPath, execPath, func(lib u.Lib) error {
		libs = append(libs, lib)
		return nil
	}); err != nil {
		return err
	}
	data.BundleData.Libs = libs

	relocator := NewRelocator(tool, tool, verbose)
	if err := relocator.Relocate(execPath, libDir, libs, keepRpaths); err != nil {
		return err
	}

	if err := verifyRelocation(tool, execPath, realLibDir, libs); err != nil {
		return err
	}

	u.PrintOk(fmt.Sprintf("Bundled %d shared libraries into %s",
		countUniqueLibs(libs), realLibDir))
	return nil
}

// countUniqueLibs counts the distinct real library paths of a closure.
func countUniqueLibs(libs []u.Lib) int {
	unique := make(map[string]bool)
	for _, lib := range libs {
		unique[lib.RealPath] = true
	}
	return len(unique)
}

// folderNotEmpty reports whether the given folder exists and contains at
// least one entry.
func folderNotEmpty(path string) bool {
	if !u.Exists(path) {
		return false
	}
	files, err := u.OSReadDir(path)
	return err == nil && len(files) > 0
}

// saveOutput records the closure as JSON and the requester graph as a dot
// file next to the executable.
func saveOutput(execPath string, data *u.Data) {
	outBase := execPath + "_bundle"

	if err := u.RecordDataJson(outBase, data); err != nil {
		u.PrintWarning(err)
	} else {
		u.PrintOk("JSON data saved into " + outBase + ".json")
	}

	if len(data.BundleData.Libs) > 0 {
		graph := make(map[string][]string)
		for _, lib := range data.BundleData.Libs {
			reqBin := filepath.Base(lib.ReqBin)
			graph[reqBin] = append(graph[reqBin], filepath.Base(lib.RealPath))
		}
		u.GenerateGraph(filepath.Base(execPath), outBase, graph, nil)
	}
}
