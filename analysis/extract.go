package analysis

import (
	"accircuit/graph"
	"accircuit/mna"
	"accircuit/types"
)

// extract 从解向量得到节点电压/元件电流/源结果
func extract(g *graph.Graph, m *mna.MNA, frequency float64) *Report {
	voltage := func(id types.NodeID) complex128 {
		i, _ := g.Index(id)
		return m.GetNodeVoltage(i)
	}

	report := &Report{
		Frequency: frequency,
		Omega:     m.Omega,
		Nodes:     make([]NodeVoltage, 0, g.NumNodes()+1),
	}
	report.Nodes = append(report.Nodes, NodeVoltage{Node: types.Gnd, Voltage: NewPhasor(0)})
	for _, id := range g.Nodes() {
		report.Nodes = append(report.Nodes, NodeVoltage{Node: id, Voltage: NewPhasor(voltage(id))})
	}

	for _, c := range g.Components() {
		z := c.Impedance(m.Omega)
		v := voltage(c.A) - voltage(c.B)
		report.Components = append(report.Components, ComponentResult{
			Component: c,
			Impedance: NewPhasor(z),
			Voltage:   NewPhasor(v),
			Current:   NewPhasor(v / z),
		})
	}
	for k, vs := range g.VoltageSources() {
		report.VoltageSources = append(report.VoltageSources, VoltageSourceResult{
			Source:  vs,
			Current: NewPhasor(m.GetVoltageSourceCurrent(mna.VoltageID(k))),
		})
	}
	for _, cs := range g.CurrentSources() {
		report.CurrentSources = append(report.CurrentSources, CurrentSourceResult{
			Source:  cs,
			Voltage: NewPhasor(voltage(cs.From) - voltage(cs.To)),
		})
	}
	return report
}
