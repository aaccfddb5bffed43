package analysis

import (
	"accircuit/maths"
	"accircuit/types"
	"math"
)

// Phasor 相量, 同时保存复数值与极坐标形式
type Phasor struct {
	Re  float64 `json:"re"`
	Im  float64 `json:"im"`
	Mag float64 `json:"mag"` // 模值
	Deg float64 `json:"deg"` // 角度, 范围 (-180°, 180°]
}

// NewPhasor 由复数创建相量
func NewPhasor(z complex128) Phasor {
	mag, deg := maths.Polar(z)
	return Phasor{Re: real(z), Im: imag(z), Mag: mag, Deg: deg}
}

// Complex 复数值
func (p Phasor) Complex() complex128 { return complex(p.Re, p.Im) }

// IsFinite 各分量都不是 NaN/Inf
func (p Phasor) IsFinite() bool {
	for _, v := range [...]float64{p.Re, p.Im, p.Mag, p.Deg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// NodeVoltage 节点电压
type NodeVoltage struct {
	Node    types.NodeID `json:"node"`
	Voltage Phasor       `json:"voltage"`
}

// ComponentResult 无源元件的阻抗/电压/电流
// 电压为 V(A)-V(B), 电流从 A 流向 B。
type ComponentResult struct {
	Component types.Component `json:"component"`
	Impedance Phasor          `json:"impedance"`
	Voltage   Phasor          `json:"voltage"`
	Current   Phasor          `json:"current"`
}

// VoltageSourceResult 电压源支路电流
type VoltageSourceResult struct {
	Source  types.VoltageSource `json:"source"`
	Current Phasor              `json:"current"`
}

// CurrentSourceResult 电流源端电压 V(From)-V(To)
type CurrentSourceResult struct {
	Source  types.CurrentSource `json:"source"`
	Voltage Phasor              `json:"voltage"`
}

// ParallelGroup 连接在同一对节点之间的元件组
type ParallelGroup struct {
	Nodes     [2]types.NodeID `json:"nodes"` // 节点对, 按名称排序
	Members   []string        `json:"members"`
	Impedance Phasor          `json:"impedance"`
}

// SeriesPair 只连接两个元件的节点, 两元件视为串联
type SeriesPair struct {
	Node      types.NodeID `json:"node"`
	Members   [2]string    `json:"members"`
	Impedance Phasor       `json:"impedance"`
}

// Report 一次分析的完整结果, 创建后只读
type Report struct {
	Frequency      float64               `json:"frequency"` // 分析频率(Hz)
	Omega          float64               `json:"omega"`     // 角频率
	Nodes          []NodeVoltage         `json:"nodes"`     // 地节点在首位, 其余按名称排序
	Components     []ComponentResult     `json:"components"`
	VoltageSources []VoltageSourceResult `json:"voltage_sources"`
	CurrentSources []CurrentSourceResult `json:"current_sources"`
	Parallel       []ParallelGroup       `json:"parallel"`
	Series         []SeriesPair          `json:"series"`
}

// IsFinite 报告中所有相量都有限
func (r *Report) IsFinite() bool {
	var phasors []Phasor
	for _, nv := range r.Nodes {
		phasors = append(phasors, nv.Voltage)
	}
	for _, c := range r.Components {
		phasors = append(phasors, c.Impedance, c.Voltage, c.Current)
	}
	for _, vs := range r.VoltageSources {
		phasors = append(phasors, vs.Current)
	}
	for _, cs := range r.CurrentSources {
		phasors = append(phasors, cs.Voltage)
	}
	for _, g := range r.Parallel {
		phasors = append(phasors, g.Impedance)
	}
	for _, s := range r.Series {
		phasors = append(phasors, s.Impedance)
	}
	for _, p := range phasors {
		if !p.IsFinite() {
			return false
		}
	}
	return true
}

// NodeVoltage 按节点查找电压
func (r *Report) NodeVoltage(id types.NodeID) (Phasor, bool) {
	for _, nv := range r.Nodes {
		if nv.Node == id {
			return nv.Voltage, true
		}
	}
	return Phasor{}, false
}

// Component 按名称查找元件结果
func (r *Report) Component(name string) (ComponentResult, bool) {
	for _, c := range r.Components {
		if c.Component.Name == name {
			return c, true
		}
	}
	return ComponentResult{}, false
}
