// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package main

import (
	"bundlelibs/srcs/bundletool"
	u "bundlelibs/srcs/common"
)

func main() {

	u.PrintHeader1("(*) RUN SHARED LIBRARY BUNDLER")
	bundletool.RunBundlerTool()
}
