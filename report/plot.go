package report

import (
	"accircuit/analysis"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// 相量图尺寸
var (
	PlotWidth  = 6 * vg.Inch
	PlotHeight = 6 * vg.Inch
)

// PhasorPlot 节点电压相量图, 每个非地节点从原点画一条到 (Re, Im) 的线段
// format 为 png/svg/pdf 等 gonum/plot 支持的格式。
func PhasorPlot(w io.Writer, r *analysis.Report, format string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Node voltage phasors @ %gHz", r.Frequency)
	p.X.Label.Text = "Re (V)"
	p.Y.Label.Text = "Im (V)"
	p.Add(plotter.NewGrid())

	limit := 0.0
	i := 0
	for _, nv := range r.Nodes {
		if nv.Voltage.Mag == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(plotter.XYs{
			{X: 0, Y: 0},
			{X: nv.Voltage.Re, Y: nv.Voltage.Im},
		})
		if err != nil {
			return fmt.Errorf("phasor %s: %w", nv.Node, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("%s %.3g∠%.1f°", nv.Node, nv.Voltage.Mag, nv.Voltage.Deg), line, points)
		limit = math.Max(limit, nv.Voltage.Mag)
		i++
	}
	if limit == 0 {
		limit = 1
	}
	// 坐标轴对称, 保持相位角直观
	p.X.Min, p.X.Max = -limit*1.1, limit*1.1
	p.Y.Min, p.Y.Max = -limit*1.1, limit*1.1
	p.Legend.Top = true

	wt, err := p.WriterTo(PlotWidth, PlotHeight, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// PlotFormat 由文件扩展名得到绘图格式, 默认 png
func PlotFormat(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff":
		return ext
	}
	return "png"
}
