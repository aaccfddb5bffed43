// Package accircuit 线性 RLC 电路的单频稳态相量分析。
//
//	cir := accircuit.NewCircuit()
//	err := cir.Load("divider.net")
//	report, err := cir.Analyze()
package accircuit

import (
	"accircuit/analysis"
	"accircuit/graph"
	"accircuit/load"
	"accircuit/mna"
	"accircuit/types"
)

// Circuit 电路, 持有可编辑的网络
type Circuit struct {
	*types.Network
}

// NewCircuit 初始化, 只包含地节点
func NewCircuit() *Circuit {
	return &Circuit{Network: types.NewNetwork()}
}

// Load 加载电路文件, 按扩展名选择网表或 TOML 格式, 替换当前网络
func (cir *Circuit) Load(filename string) error {
	net, err := load.ReadFile(filename)
	if err != nil {
		return err
	}
	cir.Network = net
	return nil
}

// Export 导出电路文件, 按扩展名选择格式
func (cir *Circuit) Export(filename string) error {
	return load.WriteFile(filename, cir.Network)
}

// Analyze 稳态分析
func (cir *Circuit) Analyze(opts ...analysis.Option) (*analysis.Report, error) {
	return analysis.Analyze(cir.Network, opts...)
}

// MNA 得到未求解的 MNA 方程, 用于检查加盖结果
func (cir *Circuit) MNA(defaultFrequency float64) (*mna.MNA, error) {
	g, err := graph.NewGraph(cir.Network)
	if err != nil {
		return nil, err
	}
	return mna.Build(g, mna.Omega(cir.Frequency(defaultFrequency)), nil), nil
}

// Topology 拓扑分析, 不需要求解
func (cir *Circuit) Topology(defaultFrequency float64) (analysis.TopologyResult, error) {
	g, err := graph.NewGraph(cir.Network)
	if err != nil {
		return analysis.TopologyResult{}, err
	}
	return analysis.Topology(g, mna.Omega(cir.Frequency(defaultFrequency))), nil
}
