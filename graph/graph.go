package graph

import (
	"accircuit/types"
	"cmp"
	"slices"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// NodeIndex 非地节点在 MNA 方程中的行号, 从0开始
type NodeIndex int

// Gnd 地节点索引, 不参与方程
const Gnd NodeIndex = -1

// Graph 解析用数据, 电路网络的只读快照
// 非地节点按名称排序编号, 同一网络多次构建得到相同的编号。
type Graph struct {
	nodes          []types.NodeID             // 非地节点, 按名称排序
	index          map[types.NodeID]NodeIndex // 节点 -> 行号
	components     []types.Component          // 无源元件
	voltageSources []types.VoltageSource      // 电压源
	currentSources []types.CurrentSource      // 电流源
	incident       map[types.NodeID][]int     // 节点 -> 关联无源元件下标
}

// NewGraph 创建图
// 网络中没有元件和源, 或者只有地节点时返回 types.ErrEmptyNetwork。
func NewGraph(net *types.Network) (*Graph, error) {
	if net.IsEmpty() {
		return nil, types.ErrEmptyNetwork
	}
	graph := &Graph{
		index:          map[types.NodeID]NodeIndex{types.Gnd: Gnd},
		components:     slices.Clone(net.Components),
		voltageSources: slices.Clone(net.VoltageSources),
		currentSources: slices.Clone(net.CurrentSources),
		incident:       map[types.NodeID][]int{},
	}
	for _, id := range net.Nodes() {
		if id == types.Gnd {
			continue
		}
		graph.index[id] = NodeIndex(len(graph.nodes))
		graph.nodes = append(graph.nodes, id)
	}
	for i, c := range graph.components {
		graph.incident[c.A] = append(graph.incident[c.A], i)
		graph.incident[c.B] = append(graph.incident[c.B], i)
	}
	return graph, nil
}

// NumNodes 非地节点数量
func (graph *Graph) NumNodes() int { return len(graph.nodes) }

// NumVoltageSources 电压源数量
func (graph *Graph) NumVoltageSources() int { return len(graph.voltageSources) }

// Size MNA 方程维度 n+m
func (graph *Graph) Size() int { return len(graph.nodes) + len(graph.voltageSources) }

// Index 节点行号, 地节点返回 Gnd, 未知节点返回 Gnd 和 false
func (graph *Graph) Index(id types.NodeID) (NodeIndex, bool) {
	i, ok := graph.index[id]
	if !ok {
		return Gnd, false
	}
	return i, true
}

// Node 行号对应的节点
func (graph *Graph) Node(i NodeIndex) types.NodeID {
	if i == Gnd {
		return types.Gnd
	}
	return graph.nodes[i]
}

// Nodes 非地节点, 按行号顺序
func (graph *Graph) Nodes() []types.NodeID { return graph.nodes }

// Components 无源元件
func (graph *Graph) Components() []types.Component { return graph.components }

// VoltageSources 电压源
func (graph *Graph) VoltageSources() []types.VoltageSource { return graph.voltageSources }

// CurrentSources 电流源
func (graph *Graph) CurrentSources() []types.CurrentSource { return graph.currentSources }

// Degree 节点关联的无源元件数量(不含源)
func (graph *Graph) Degree(id types.NodeID) int { return len(graph.incident[id]) }

// Incident 节点关联的无源元件下标, 按录入顺序
func (graph *Graph) Incident(id types.NodeID) []int { return graph.incident[id] }

// Floating 没有任何元件通路连接到地的节点分组
// 每组内按名称排序, 组之间按首个节点排序。用于解释奇异方程。
func (graph *Graph) Floating() [][]types.NodeID {
	g := simple.NewUndirectedGraph()
	id := func(n types.NodeID) int64 { return int64(graph.index[n]) + 1 } // 地节点为0
	g.AddNode(simple.Node(0))
	for i := range graph.nodes {
		g.AddNode(simple.Node(i + 1))
	}
	link := func(a, b types.NodeID) {
		if a == b {
			return
		}
		g.SetEdge(simple.Edge{F: simple.Node(id(a)), T: simple.Node(id(b))})
	}
	for _, c := range graph.components {
		link(c.A, c.B)
	}
	for _, vs := range graph.voltageSources {
		link(vs.Pos, vs.Neg)
	}
	for _, cs := range graph.currentSources {
		link(cs.From, cs.To)
	}

	var floating [][]types.NodeID
	for _, cc := range topo.ConnectedComponents(g) {
		group := make([]types.NodeID, 0, len(cc))
		grounded := false
		for _, n := range cc {
			if n.ID() == 0 {
				grounded = true
				break
			}
			group = append(group, graph.nodes[n.ID()-1])
		}
		if grounded {
			continue
		}
		slices.Sort(group)
		floating = append(floating, group)
	}
	slices.SortFunc(floating, func(a, b []types.NodeID) int {
		return cmp.Compare(a[0], b[0])
	})
	return floating
}
