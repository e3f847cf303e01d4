// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package common

// Exported struct that represents a shared library reference: the binary
// that requests the library, the raw path recorded in its load commands and
// the resolved location on disk.
type Lib struct {
	ReqBin   string `json:"requesting_binary"`
	Path     string `json:"reference_path"`
	RealPath string `json:"real_path"`
}

// Exported struct that represents the data gathered by the bundle tool.
type Data struct {
	BundleData BundleData `json:"bundle_data"`
}

// Exported struct that represents the resolved library closure of an
// executable.
type BundleData struct {
	Executable string `json:"executable"`
	Libs       []Lib  `json:"libs"`
}
