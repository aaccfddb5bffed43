package load

import (
	"accircuit/types"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// tomlCircuit TOML 电路文件
//
//	nodes = ["A", "B"]
//
//	[[component]]
//	name = "R1"
//	type = "resistor"
//	value = 1000.0
//	a = "A"
//	b = "B"
//
//	[[voltage_source]]
//	pos = "A"
//	neg = "GND"
//	peak = 10.0
//	frequency = 60.0
type tomlCircuit struct {
	Nodes          []string            `toml:"nodes,omitempty"`
	Components     []tomlComponent     `toml:"component,omitempty"`
	VoltageSources []tomlVoltageSource `toml:"voltage_source,omitempty"`
	CurrentSources []tomlCurrentSource `toml:"current_source,omitempty"`
}

type tomlComponent struct {
	Name  string            `toml:"name,omitempty"`
	Type  types.ElementType `toml:"type"`
	Value float64           `toml:"value"`
	A     string            `toml:"a"`
	B     string            `toml:"b"`
}

type tomlVoltageSource struct {
	Name      string         `toml:"name,omitempty"`
	Waveform  types.Waveform `toml:"waveform"`
	Peak      float64        `toml:"peak"`
	Frequency float64        `toml:"frequency"`
	Phase     float64        `toml:"phase"`
	Pos       string         `toml:"pos"`
	Neg       string         `toml:"neg"`
}

type tomlCurrentSource struct {
	Name      string         `toml:"name,omitempty"`
	Waveform  types.Waveform `toml:"waveform"`
	Peak      float64        `toml:"peak"`
	Frequency float64        `toml:"frequency"`
	Phase     float64        `toml:"phase"`
	From      string         `toml:"from"`
	To        string         `toml:"to"`
}

// ReadTOML 加载 TOML 电路文件, 未知字段视为错误
// 元件引用的节点不需要在 nodes 中声明。
func ReadTOML(r io.Reader) (*types.Network, error) {
	var file tomlCircuit
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	net := types.NewNetwork()
	for _, name := range file.Nodes {
		if _, err := node(net, name); err != nil {
			return nil, err
		}
	}
	pair := func(a, b string) (types.NodeID, types.NodeID, error) {
		return nodePair(net, []string{a, b})
	}
	for i, c := range file.Components {
		a, b, err := pair(c.A, c.B)
		if err == nil {
			_, err = net.AddComponent(types.Component{Name: c.Name, Type: c.Type, Value: c.Value, A: a, B: b})
		}
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i+1, err)
		}
	}
	for i, vs := range file.VoltageSources {
		pos, neg, err := pair(vs.Pos, vs.Neg)
		if err == nil {
			_, err = net.AddVoltageSource(types.VoltageSource{
				Source: types.Source{Name: vs.Name, Waveform: vs.Waveform, Peak: vs.Peak, Frequency: vs.Frequency, Phase: vs.Phase},
				Pos:    pos, Neg: neg,
			})
		}
		if err != nil {
			return nil, fmt.Errorf("voltage_source %d: %w", i+1, err)
		}
	}
	for i, cs := range file.CurrentSources {
		from, to, err := pair(cs.From, cs.To)
		if err == nil {
			_, err = net.AddCurrentSource(types.CurrentSource{
				Source: types.Source{Name: cs.Name, Waveform: cs.Waveform, Peak: cs.Peak, Frequency: cs.Frequency, Phase: cs.Phase},
				From:   from, To: to,
			})
		}
		if err != nil {
			return nil, fmt.Errorf("current_source %d: %w", i+1, err)
		}
	}
	return net, nil
}

// WriteTOML 导出 TOML 电路文件
// 节点名会被读成地节点时返回 ErrGroundAlias。
func WriteTOML(w io.Writer, net *types.Network) error {
	if err := checkGroundAlias(net); err != nil {
		return err
	}
	var file tomlCircuit
	for _, id := range net.Nodes() {
		if !id.IsGnd() {
			file.Nodes = append(file.Nodes, string(id))
		}
	}
	for _, c := range net.Components {
		file.Components = append(file.Components, tomlComponent{
			Name: c.Name, Type: c.Type, Value: c.Value, A: string(c.A), B: string(c.B),
		})
	}
	for _, vs := range net.VoltageSources {
		file.VoltageSources = append(file.VoltageSources, tomlVoltageSource{
			Name: vs.Name, Waveform: vs.Waveform, Peak: vs.Peak, Frequency: vs.Frequency, Phase: vs.Phase,
			Pos: string(vs.Pos), Neg: string(vs.Neg),
		})
	}
	for _, cs := range net.CurrentSources {
		file.CurrentSources = append(file.CurrentSources, tomlCurrentSource{
			Name: cs.Name, Waveform: cs.Waveform, Peak: cs.Peak, Frequency: cs.Frequency, Phase: cs.Phase,
			From: string(cs.From), To: string(cs.To),
		})
	}
	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	_, err = w.Write(data)
	return err
}
