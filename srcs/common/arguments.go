// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package common

import (
	"errors"

	"github.com/akamensky/argparse"
)

// Exported constants that represent the kinds of accepted arguments.
const (
	BOOL = iota
	INT
	STRING
	LIST
)

// Exported struct that stores the destinations of parsed command line
// arguments, keyed by their long flag name.
type Arguments struct {
	BoolArg   map[string]*bool
	IntArg    map[string]*int
	StringArg map[string]*string
	ListArg   map[string]*[]string
}

// InitArguments initialises the argument maps and creates the argument
// parser of the tool.
//
// It returns a pointer to the parser and an error if any, otherwise it
// returns nil.
func (args *Arguments) InitArguments(name, description string) (*argparse.Parser,
	error) {

	args.BoolArg = make(map[string]*bool)
	args.IntArg = make(map[string]*int)
	args.StringArg = make(map[string]*string)
	args.ListArg = make(map[string]*[]string)

	p := argparse.NewParser(name, description)

	return p, nil
}

// InitArgParse registers a command line argument of the given kind to the
// parser and stores its destination in the corresponding argument map.
func (*Arguments) InitArgParse(p *argparse.Parser, args *Arguments, typeVar int,
	short, long string, options *argparse.Options) {

	switch typeVar {
	case BOOL:
		args.BoolArg[long] = p.Flag(short, long, options)
	case INT:
		args.IntArg[long] = p.Int(short, long, options)
	case STRING:
		args.StringArg[long] = p.String(short, long, options)
	case LIST:
		args.ListArg[long] = p.StringList(short, long, options)
	}
}

// ParserWrapper parses the given arguments and wraps the usage message of
// the parser into the returned error when parsing failed.
//
// It returns an error if any, otherwise it returns nil.
func ParserWrapper(p *argparse.Parser, args []string) error {
	if err := p.Parse(args); err != nil {
		return errors.New(p.Usage(err))
	}
	return nil
}
