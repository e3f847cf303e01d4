// Copyright 2019 The UNICORE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file
//
// Author: Gaulthier Gain <gaulthier.gain@uliege.be>

package common

import (
	"strconv"

	"github.com/awalterschulze/gographviz"
)

// GenerateGraph generates a directed dot graph from the given adjacency map
// and saves it to a '.dot' file. mapLabel optionally associates display
// labels to node names and can be nil.
func GenerateGraph(programName, fullPathName string, data map[string][]string,
	mapLabel map[string]string) {

	graphName := strconv.Quote(programName)

	graph := gographviz.NewGraph()
	if err := graph.SetName(graphName); err != nil {
		PrintWarning(err)
		return
	}
	if err := graph.SetDir(true); err != nil {
		PrintWarning(err)
		return
	}

	for key, values := range data {
		addGraphNode(graph, graphName, key, mapLabel)
		for _, value := range values {
			addGraphNode(graph, graphName, value, mapLabel)
			if err := graph.AddEdge(strconv.Quote(key), strconv.Quote(value),
				true, nil); err != nil {
				PrintWarning(err)
				return
			}
		}
	}

	if err := WriteToFile(fullPathName+".dot", []byte(graph.String())); err != nil {
		PrintWarning(err)
	} else {
		PrintOk("Graph saved into " + fullPathName + ".dot")
	}
}

// addGraphNode adds a single node to the given graph.
func addGraphNode(graph *gographviz.Graph, graphName, name string,
	mapLabel map[string]string) {

	attrs := map[string]string{"color": "lightblue", "style": "filled"}
	if label, in := mapLabel[name]; in {
		attrs["label"] = strconv.Quote(label)
	}

	if err := graph.AddNode(graphName, strconv.Quote(name), attrs); err != nil {
		PrintWarning(err)
	}
}
