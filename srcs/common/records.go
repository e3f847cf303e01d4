// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package common

import (
	"encoding/json"
	"io/ioutil"
)

// RecordDataJson saves the given data into a json file. The '.json'
// extension is appended to the given filename.
//
// It returns an error if any, otherwise it returns nil.
func RecordDataJson(filename string, data *Data) error {
	b, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return err
	}

	return WriteToFile(filename+".json", b)
}

// WriteToFile writes the given bytes to the given file.
//
// It returns an error if any, otherwise it returns nil.
func WriteToFile(filename string, data []byte) error {
	return ioutil.WriteFile(filename, data, 0644)
}
