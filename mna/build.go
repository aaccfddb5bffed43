package mna

import (
	"accircuit/graph"
	"accircuit/types"
	"log/slog"
	"math"
)

// Build 根据图快照和角频率构建MNA方程
// 两端都接地的元件或源不产生任何贡献, 仅记录调试日志。
func Build(g *graph.Graph, omega float64, logger *slog.Logger) *MNA {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := NewMNA(g.NumNodes(), g.NumVoltageSources())
	m.Omega = omega
	index := func(id types.NodeID) graph.NodeIndex {
		i, _ := g.Index(id)
		return i
	}

	for _, c := range g.Components() {
		n1, n2 := index(c.A), index(c.B)
		if n1 == Gnd && n2 == Gnd {
			logger.Debug("skip grounded element", "name", c.Name, "type", c.Type.String())
			continue
		}
		m.StampAdmittance(n1, n2, c.Admittance(omega))
	}
	for k, vs := range g.VoltageSources() {
		n1, n2 := index(vs.Pos), index(vs.Neg)
		if n1 == Gnd && n2 == Gnd {
			logger.Debug("skip grounded element", "name", vs.Name, "type", "voltage source")
			continue
		}
		m.StampVoltageSource(n1, n2, VoltageID(k), vs.Phasor())
	}
	for _, cs := range g.CurrentSources() {
		n1, n2 := index(cs.From), index(cs.To)
		if n1 == Gnd && n2 == Gnd {
			logger.Debug("skip grounded element", "name", cs.Name, "type", "current source")
			continue
		}
		m.StampCurrentSource(n1, n2, cs.Phasor())
	}
	logger.Debug("mna built",
		"nodes", m.NodesNum,
		"voltage_sources", m.VoltageSourcesNum,
		"omega", omega,
		"nonzero", m.A.NonZeroCount(),
	)
	return m
}

// Omega 频率换算为角频率 ω=2πf
func Omega(frequency float64) float64 {
	return 2 * math.Pi * frequency
}
