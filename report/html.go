package report

import (
	"accircuit/analysis"
	"accircuit/types"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	echarts "github.com/go-echarts/go-echarts/v2/types"
)

var legendOpts = opts.Legend{
	Type:   "scroll",
	Orient: "vertical",
	Right:  "10",
	Top:    "20",
	Bottom: "20",
}

// HTML 生成单页图表: 电路连接网络图、节点电压、元件电流
// 幅值和相位分开绘制。
func HTML(w io.Writer, r *analysis.Report) error {
	page := components.NewPage()
	page.SetPageTitle(fmt.Sprintf("AC analysis @ %gHz", r.Frequency))
	page.AddCharts(
		networkGraph(r),
		phasorBars("节点电压", "节点电压幅值(V)与相位(°)", nodeSeries(r)),
		phasorBars("元件电流", "元件电流幅值(A)与相位(°)", componentSeries(r)),
	)
	return page.Render(w)
}

// 网络图中节点和元件共用一个命名空间, 名称加前缀区分
const (
	nodeKeyPrefix    = "node:"
	elementKeyPrefix = "el:"
)

func nodeKey(id types.NodeID) string { return nodeKeyPrefix + string(id) }

func elementKey(name string) string { return elementKeyPrefix + name }

// networkGraph 元件与节点的连接网络图, 连线值为元件电流幅值
func networkGraph(r *analysis.Report) *charts.Graph {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: echarts.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{
			Title:    "电路节点信息",
			Subtitle: fmt.Sprintf("电路连接节点网络图 (%gHz)", r.Frequency),
		}),
		charts.WithLegendOpts(legendOpts),
	)

	var nodes []opts.GraphNode
	var links []opts.GraphLink
	for _, nv := range r.Nodes {
		node := opts.GraphNode{
			Name:     nodeKey(nv.Node),
			Category: 1,
			Value:    float32(nv.Voltage.Mag),
			Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
		}
		if nv.Node == types.Gnd {
			node.ItemStyle = &opts.ItemStyle{Color: "#000000de"}
		}
		nodes = append(nodes, node)
	}
	element := func(name string, value float64, a, b types.NodeID) {
		key := elementKey(name)
		nodes = append(nodes, opts.GraphNode{
			Name:     key,
			Category: 0,
			Value:    float32(value),
			Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
		})
		links = append(links,
			opts.GraphLink{Source: key, Target: nodeKey(a), Value: float32(value)},
			opts.GraphLink{Source: key, Target: nodeKey(b), Value: float32(value)},
		)
	}
	for _, c := range r.Components {
		element(c.Component.Name, c.Current.Mag, c.Component.A, c.Component.B)
	}
	for _, vs := range r.VoltageSources {
		element(vs.Source.Name, vs.Current.Mag, vs.Source.Pos, vs.Source.Neg)
	}
	for _, cs := range r.CurrentSources {
		element(cs.Source.Name, cs.Source.Peak, cs.Source.From, cs.Source.To)
	}

	graph.AddSeries("电路列表", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Categories: []*opts.GraphCategory{
				{Name: "元件", ItemStyle: &opts.ItemStyle{Color: "#c71979b7"}},
				{Name: "节点", ItemStyle: &opts.ItemStyle{Color: "#1987c7b7"}},
			},
			Roam:               opts.Bool(true),
			Force:              &opts.GraphForce{Repulsion: 80},
			EdgeLabel:          &opts.EdgeLabel{Show: opts.Bool(false)},
			FocusNodeAdjacency: opts.Bool(true),
		}),
	)
	return graph
}

// series 一组相量及其名称
type series struct {
	names   []string
	phasors []analysis.Phasor
}

func nodeSeries(r *analysis.Report) series {
	var s series
	for _, nv := range r.Nodes {
		if nv.Node == types.Gnd {
			continue
		}
		s.names = append(s.names, string(nv.Node))
		s.phasors = append(s.phasors, nv.Voltage)
	}
	return s
}

func componentSeries(r *analysis.Report) series {
	var s series
	for _, c := range r.Components {
		s.names = append(s.names, c.Component.Name)
		s.phasors = append(s.phasors, c.Current)
	}
	return s
}

// phasorBars 幅值与相位柱状图, 相位使用第二个Y轴
func phasorBars(title, subtitle string, s series) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: echarts.ThemeWesteros}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithLegendOpts(legendOpts),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "magnitude", Scale: opts.Bool(true)}),
	)
	bar.ExtendYAxis(opts.YAxis{Name: "phase", Min: -180, Max: 180})

	mag := make([]opts.BarData, len(s.phasors))
	deg := make([]opts.BarData, len(s.phasors))
	for i, p := range s.phasors {
		mag[i] = opts.BarData{Name: s.names[i], Value: p.Mag}
		deg[i] = opts.BarData{Name: s.names[i], Value: p.Deg}
	}
	bar.SetXAxis(s.names).
		AddSeries("magnitude", mag).
		AddSeries("phase", deg, charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}))
	return bar
}
