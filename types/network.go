package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Network 电路网络, 记录节点/元件/源
// 所有实体只能通过 Add 系列方法录入, 录入时完成校验。
// 分析期间网络视为只读, 本身不做同步, 并发修改由调用方负责。
type Network struct {
	nodes          map[NodeID]struct{} // 节点集合, 始终包含 GND
	names          map[string]struct{} // 已使用的元件/源名称
	Components     []Component         // 无源元件, 按录入顺序
	VoltageSources []VoltageSource     // 电压源, 按录入顺序
	CurrentSources []CurrentSource     // 电流源, 按录入顺序
	nextNode       int                 // 自动命名计数
}

// NewNetwork 初始化, 节点集合为 {GND}
func NewNetwork() *Network {
	net := &Network{}
	net.Reset()
	return net
}

// Reset 清空电路, 只保留地节点
func (net *Network) Reset() {
	net.nodes = map[NodeID]struct{}{Gnd: {}}
	net.names = map[string]struct{}{}
	net.Components = nil
	net.VoltageSources = nil
	net.CurrentSources = nil
	net.nextNode = 0
}

// HasNode 节点是否存在
func (net *Network) HasNode(id NodeID) bool {
	_, ok := net.nodes[id]
	return ok
}

// Nodes 排序后的全部节点(含 GND)
func (net *Network) Nodes() []NodeID {
	nodes := make([]NodeID, 0, len(net.nodes))
	for id := range net.nodes {
		nodes = append(nodes, id)
	}
	slices.Sort(nodes)
	return nodes
}

// NodeCount 节点数量(含 GND)
func (net *Network) NodeCount() int { return len(net.nodes) }

// AddNode 添加节点, 名称为空时自动命名为 N0, N1...
func (net *Network) AddNode(name string) (NodeID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		for {
			id := NodeID(AutoNodePrefix + strconv.Itoa(net.nextNode))
			net.nextNode++
			if !net.HasNode(id) {
				net.nodes[id] = struct{}{}
				return id, nil
			}
		}
	}
	id := NodeID(name)
	if net.HasNode(id) {
		return "", invalid("add node", name, ErrDuplicateNode)
	}
	net.nodes[id] = struct{}{}
	return id, nil
}

// DeleteNode 删除节点, 被引用的节点和地节点不可删除
func (net *Network) DeleteNode(id NodeID) error {
	if !net.HasNode(id) {
		return invalid("delete node", string(id), ErrMissingNode)
	}
	if id == Gnd || net.isReferenced(id) {
		return invalid("delete node", string(id), ErrNodeInUse)
	}
	delete(net.nodes, id)
	return nil
}

// isReferenced 节点是否被任意元件或源引用
func (net *Network) isReferenced(id NodeID) bool {
	for _, c := range net.Components {
		if c.A == id || c.B == id {
			return true
		}
	}
	for _, vs := range net.VoltageSources {
		if vs.Pos == id || vs.Neg == id {
			return true
		}
	}
	for _, cs := range net.CurrentSources {
		if cs.From == id || cs.To == id {
			return true
		}
	}
	return false
}

// checkEndpoints 校验两端节点
func (net *Network) checkEndpoints(op string, a, b NodeID) error {
	if !net.HasNode(a) {
		return invalid(op, string(a), ErrMissingNode)
	}
	if !net.HasNode(b) {
		return invalid(op, string(b), ErrMissingNode)
	}
	if a == b {
		return invalid(op, string(a), ErrSameNode)
	}
	return nil
}

// checkName 校验名称, 为空时按前缀自动生成
func (net *Network) checkName(op, name, prefix string, count int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		for i := count + 1; ; i++ {
			name = prefix + strconv.Itoa(i)
			if _, ok := net.names[name]; !ok {
				return name, nil
			}
		}
	}
	if _, ok := net.names[name]; ok {
		return "", invalid(op, name, ErrDuplicateName)
	}
	return name, nil
}

// positive 严格为正的有限值
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// AddComponent 添加无源元件
func (net *Network) AddComponent(c Component) (Component, error) {
	const op = "add component"
	if !c.Type.IsValid() {
		return c, invalid(op, c.Name, ErrUnknownType)
	}
	if !positive(c.Value) {
		return c, invalid(op, "value", ErrNonPositive)
	}
	if err := net.checkEndpoints(op, c.A, c.B); err != nil {
		return c, err
	}
	name, err := net.checkName(op, c.Name, c.Type.Prefix(), net.countType(c.Type))
	if err != nil {
		return c, err
	}
	c.Name = name
	net.names[name] = struct{}{}
	net.Components = append(net.Components, c)
	return c, nil
}

// countType 指定类型元件数量
func (net *Network) countType(t ElementType) (n int) {
	for _, c := range net.Components {
		if c.Type == t {
			n++
		}
	}
	return n
}

// checkSource 校验源参数
func checkSource(op string, s Source) error {
	if !positive(s.Peak) {
		return invalid(op, "peak", ErrNonPositive)
	}
	if !positive(s.Frequency) {
		return invalid(op, "frequency", ErrNonPositive)
	}
	if math.IsNaN(s.Phase) || math.IsInf(s.Phase, 0) {
		return invalid(op, "phase", fmt.Errorf("phase must be finite, got %v", s.Phase))
	}
	return nil
}

// AddVoltageSource 添加独立电压源
func (net *Network) AddVoltageSource(vs VoltageSource) (VoltageSource, error) {
	const op = "add voltage source"
	if err := checkSource(op, vs.Source); err != nil {
		return vs, err
	}
	if err := net.checkEndpoints(op, vs.Pos, vs.Neg); err != nil {
		return vs, err
	}
	name, err := net.checkName(op, vs.Name, "V", len(net.VoltageSources))
	if err != nil {
		return vs, err
	}
	vs.Name = name
	net.names[name] = struct{}{}
	net.VoltageSources = append(net.VoltageSources, vs)
	return vs, nil
}

// AddCurrentSource 添加独立电流源
func (net *Network) AddCurrentSource(cs CurrentSource) (CurrentSource, error) {
	const op = "add current source"
	if err := checkSource(op, cs.Source); err != nil {
		return cs, err
	}
	if err := net.checkEndpoints(op, cs.From, cs.To); err != nil {
		return cs, err
	}
	name, err := net.checkName(op, cs.Name, "I", len(net.CurrentSources))
	if err != nil {
		return cs, err
	}
	cs.Name = name
	net.names[name] = struct{}{}
	net.CurrentSources = append(net.CurrentSources, cs)
	return cs, nil
}

// IsEmpty 没有元件和源, 或者只有地节点
func (net *Network) IsEmpty() bool {
	if len(net.nodes) <= 1 {
		return true
	}
	return len(net.Components) == 0 && len(net.VoltageSources) == 0 && len(net.CurrentSources) == 0
}

// Frequency 分析频率: 第一个电压源, 否则第一个电流源, 否则 def
func (net *Network) Frequency(def float64) float64 {
	switch {
	case len(net.VoltageSources) > 0:
		return net.VoltageSources[0].Frequency
	case len(net.CurrentSources) > 0:
		return net.CurrentSources[0].Frequency
	}
	return def
}

// Clone 深拷贝
func (net *Network) Clone() *Network {
	c := &Network{
		nodes:          make(map[NodeID]struct{}, len(net.nodes)),
		names:          make(map[string]struct{}, len(net.names)),
		Components:     slices.Clone(net.Components),
		VoltageSources: slices.Clone(net.VoltageSources),
		CurrentSources: slices.Clone(net.CurrentSources),
		nextNode:       net.nextNode,
	}
	for id := range net.nodes {
		c.nodes[id] = struct{}{}
	}
	for n := range net.names {
		c.names[n] = struct{}{}
	}
	return c
}

// Fingerprint 网络内容的规范哈希, 节点按名称排序, 元件和源按录入顺序
func (net *Network) Fingerprint() string {
	h := sha256.New()
	for _, id := range net.Nodes() {
		fmt.Fprintf(h, "N %s\n", id)
	}
	for _, c := range net.Components {
		fmt.Fprintf(h, "%s %d %s %s %x\n", c.Name, c.Type, c.A, c.B, math.Float64bits(c.Value))
	}
	for _, vs := range net.VoltageSources {
		fmt.Fprintf(h, "%s V%d %s %s %x %x %x\n", vs.Name, vs.Waveform, vs.Pos, vs.Neg,
			math.Float64bits(vs.Peak), math.Float64bits(vs.Frequency), math.Float64bits(vs.Phase))
	}
	for _, cs := range net.CurrentSources {
		fmt.Fprintf(h, "%s I%d %s %s %x %x %x\n", cs.Name, cs.Waveform, cs.From, cs.To,
			math.Float64bits(cs.Peak), math.Float64bits(cs.Frequency), math.Float64bits(cs.Phase))
	}
	return hex.EncodeToString(h.Sum(nil))
}
