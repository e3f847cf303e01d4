// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package bundletool

import (
	"errors"
	"os"
)

// Mach-O magic numbers: fat binary, 32-bit and 64-bit, both byte orders.
var machoMagics = [][4]uint8{
	{0xca, 0xfe, 0xba, 0xbe},
	{0xfe, 0xed, 0xfa, 0xce},
	{0xce, 0xfa, 0xed, 0xfe},
	{0xfe, 0xed, 0xfa, 0xcf},
	{0xcf, 0xfa, 0xed, 0xfe},
}

// getMachO reads and decodes a Mach-O file identifier.
//
// It returns an error if the file cannot be read or is not a Mach-O binary,
// otherwise it returns nil.
func getMachO(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	var ident [4]uint8
	if _, err = f.ReadAt(ident[0:], 0); err != nil {
		return err
	}

	for _, magic := range machoMagics {
		if ident == magic {
			return nil
		}
	}

	return errors.New("not a compatible Mach-O format: " + filename)
}
