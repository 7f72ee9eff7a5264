package resolve

import (
	"fmt"
	"strings"

	"github.com/kilnproj/kiln/pkg/config"
)

// ExtensionGraph is the directed graph of cross-target extension, indexed
// positionally like the target table.
//
// Extends[i] lists, in declared order, the indices of the targets named in
// target i's extends list. Extended[i] is the inverse: the indices of the
// targets whose extends list names target i, in declaration order.
//
// The composition contract is one level only: a consumer folding target i
// concatenates, for each j in Extends[i] in order and then for i itself, the
// source files, include dirs, defines and libs. Deep chains are not
// flattened here.
type ExtensionGraph struct {
	Extends  [][]int
	Extended [][]int
}

// BuildExtensionGraph resolves every extends declaration against the target
// table. An unresolved name is fatal: a silently dropped extension would
// emit an incomplete project. Cycles are likewise rejected at construction
// time rather than left for consumers to chase.
func BuildExtensionGraph(proj *config.Project) (*ExtensionGraph, error) {
	n := len(proj.TargetNames)
	g := &ExtensionGraph{
		Extends:  make([][]int, n),
		Extended: make([][]int, n),
	}

	for i, name := range proj.TargetNames {
		t := proj.Targets[name]
		g.Extends[i] = make([]int, 0, len(t.Extends))
		g.Extended[i] = []int{}
		for _, ref := range t.Extends {
			j := proj.TargetIndex(ref)
			if j < 0 {
				return nil, config.NewReferenceError(
					fmt.Sprintf("no such target to extend: %s (extended by %s)", ref, name), nil)
			}
			g.Extends[i] = append(g.Extends[i], j)
		}
	}

	for i := range proj.TargetNames {
		for j := 0; j < n; j++ {
			for _, k := range g.Extends[j] {
				if k == i {
					g.Extended[i] = append(g.Extended[i], j)
					break
				}
			}
		}
	}

	if cycle := g.findCycle(); cycle != nil {
		names := make([]string, len(cycle))
		for i, idx := range cycle {
			names[i] = proj.TargetNames[idx]
		}
		return nil, config.NewReferenceError(
			fmt.Sprintf("extends cycle detected: %s", strings.Join(names, " -> ")), nil)
	}

	return g, nil
}

// findCycle runs a depth-first search over the forward adjacency and returns
// the first cycle found as a path of target indices, or nil.
func (g *ExtensionGraph) findCycle() []int {
	const (
		unvisited = iota
		inStack
		done
	)
	state := make([]int, len(g.Extends))
	var path []int

	var visit func(i int) []int
	visit = func(i int) []int {
		state[i] = inStack
		path = append(path, i)

		for _, j := range g.Extends[i] {
			switch state[j] {
			case inStack:
				// Close the loop for the error message.
				for k, idx := range path {
					if idx == j {
						return append(append([]int{}, path[k:]...), j)
					}
				}
			case unvisited:
				if cycle := visit(j); cycle != nil {
					return cycle
				}
			}
		}

		state[i] = done
		path = path[:len(path)-1]
		return nil
	}

	for i := range g.Extends {
		if state[i] == unvisited {
			if cycle := visit(i); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}
