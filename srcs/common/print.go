// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package common

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// PrintHeader1 prints a main header to the console.
func PrintHeader1(message string) {
	color.New(color.Bold, color.FgBlue).Println(message)
}

// PrintHeader2 prints a sub header to the console.
func PrintHeader2(message string) {
	color.New(color.Bold).Println(message)
}

// PrintOk prints a success message to the console.
func PrintOk(message string) {
	fmt.Printf("%s %s\n", color.GreenString("[SUCCESS]"), message)
}

// PrintInfo prints an information message to the console.
func PrintInfo(message string) {
	fmt.Printf("%s %s\n", color.CyanString("[INFO]"), message)
}

// PrintWarning prints a warning message to the console.
func PrintWarning(warning ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("[WARNING]"),
		fmt.Sprint(warning...))
}

// PrintErr prints an error message to the console and exits the program
// with a non-zero status.
func PrintErr(err ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("[ERROR]"),
		fmt.Sprint(err...))
	os.Exit(1)
}
