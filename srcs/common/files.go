// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package common

import (
	"io"
	"io/ioutil"
	"os"
)

// CreateFolder creates a folder at the given path if it does not exist.
//
// It returns true if the folder was created and an error if any, otherwise
// it returns nil.
func CreateFolder(path string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.MkdirAll(path, 0755); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// CopyFileContents copies the contents and the permission bits of the file
// named src to the file named dst. The destination file is created or
// truncated.
//
// It returns an error if any, otherwise it returns nil.
func CopyFileContents(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
		info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	err = out.Sync()

	return err
}

// Contains reports whether the given string is present in the given slice.
func Contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}

// Exists reports whether a file or folder exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// OSReadDir reads the contents of the folder at the given path.
//
// It returns a slice of os.FileInfo and an error if any, otherwise it
// returns nil.
func OSReadDir(root string) ([]os.FileInfo, error) {
	return ioutil.ReadDir(root)
}
