package analysis

import (
	"accircuit/graph"
	"accircuit/types"
	"cmp"
	"slices"
)

// TopologyResult 拓扑分析结果, 仅作参考, 不影响求解值
type TopologyResult struct {
	Parallel []ParallelGroup
	Series   []SeriesPair
}

// Topology 识别并联组和串联对, 不需要先求解
//
//	并联: 两端节点相同(不分顺序)的元件, 两个及以上成组, Zeq = 1/Σ(1/z)
//	串联: 恰好连接两个无源元件的非地节点, Zeq = z1+z2
//
// 串联识别不合并串联链, 也不检查节点上是否连接了源。
func Topology(g *graph.Graph, omega float64) TopologyResult {
	return TopologyResult{
		Parallel: parallelGroups(g, omega),
		Series:   seriesPairs(g, omega),
	}
}

func pairOf(c types.Component) [2]types.NodeID {
	if c.B < c.A {
		return [2]types.NodeID{c.B, c.A}
	}
	return [2]types.NodeID{c.A, c.B}
}

func parallelGroups(g *graph.Graph, omega float64) []ParallelGroup {
	members := map[[2]types.NodeID][]int{}
	for i, c := range g.Components() {
		pair := pairOf(c)
		members[pair] = append(members[pair], i)
	}

	var groups []ParallelGroup
	components := g.Components()
	for pair, idx := range members {
		if len(idx) < 2 {
			continue
		}
		var y complex128
		names := make([]string, len(idx))
		for k, i := range idx {
			y += 1 / components[i].Impedance(omega)
			names[k] = components[i].Name
		}
		groups = append(groups, ParallelGroup{
			Nodes:     pair,
			Members:   names,
			Impedance: NewPhasor(1 / y),
		})
	}
	slices.SortFunc(groups, func(a, b ParallelGroup) int {
		if c := cmp.Compare(a.Nodes[0], b.Nodes[0]); c != 0 {
			return c
		}
		return cmp.Compare(a.Nodes[1], b.Nodes[1])
	})
	return groups
}

func seriesPairs(g *graph.Graph, omega float64) []SeriesPair {
	var pairs []SeriesPair
	components := g.Components()
	for _, id := range g.Nodes() {
		if g.Degree(id) != 2 {
			continue
		}
		idx := g.Incident(id)
		c1, c2 := components[idx[0]], components[idx[1]]
		pairs = append(pairs, SeriesPair{
			Node:      id,
			Members:   [2]string{c1.Name, c2.Name},
			Impedance: NewPhasor(c1.Impedance(omega) + c2.Impedance(omega)),
		})
	}
	return pairs
}
