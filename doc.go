/*
Package stagedup duplicates prims of a 3D scene graph along an axis.

Given a selection of prims on a stage, it creates count copies of each, placed
next to the source under the same parent and offset by index*distance along X,
Y or Z. Copies are either deep copies of the source subtree or lightweight
instanceable references to it.

# Concept

The library never owns the scene. A host (an editor plugin, the stagedup CLI,
the HTTP server or the MCP server) supplies a ports.Stage, the selection and
the four inputs, and receives a domain.Result holding the number of copies
made and a status line. The Duplicator keeps no state between calls.

Copies are named "{name}_{axis}{index:02d}", e.g. Box_x01. A name already in
use gets a numeric suffix (Box_x01_1) so existing prims are never overwritten.

# Usage

	package main

	import (
		"context"
		"fmt"

		"github.com/aretw0/stagedup"
		"github.com/aretw0/stagedup/pkg/dsl"
	)

	func main() {
		b := dsl.New("demo")
		b.Xform("/World")
		b.Mesh("/World/Box")
		stage := b.MustBuild()

		dup := stagedup.New()
		res := dup.Trigger(context.Background(), stage, []string{"/World/Box"}, map[string]any{
			"count":    3,
			"distance": 100,
			"axis":     "x",
		})
		fmt.Println(res.Status) // Done: Duplicated 3
	}

# Failure handling

Bad input, a missing stage or an empty selection are rejected before the stage
is touched; the Result carries the status and the cause in Err. After that,
nothing stops the loop: sources that do not resolve are skipped, copies that
cannot be created are not counted, and copies whose offset cannot be written
are kept and counted.
*/
package stagedup
