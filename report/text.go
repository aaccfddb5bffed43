// Package report 将分析结果输出为文本、JSON、HTML 图表和相量图。
package report

import (
	"accircuit/analysis"
	"accircuit/utils"
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// DefaultPrecision 默认有效数字
const DefaultPrecision = 4

// Text 文本报告
//
//	Analysis Frequency / Node Voltages / Component Currents /
//	Voltage Source Currents / Current Source Voltages /
//	Equivalent Parallel Impedances / Equivalent Series Impedances
//
// 相量格式为 |z| ∠deg°。输出到终端时标题带样式, 其它情况为纯文本。
func Text(w io.Writer, r *analysis.Report, precision int) error {
	if precision < 1 {
		precision = DefaultPrecision
	}
	renderer := lipgloss.NewRenderer(w)
	header := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	label := renderer.NewStyle().Foreground(lipgloss.Color("8"))

	out := bufio.NewWriter(w)
	phasor := func(p analysis.Phasor, unit string) string {
		return fmt.Sprintf("%s%s ∠%s°", utils.FormatSI(p.Mag, precision), unit, strconv.FormatFloat(p.Deg, 'f', 2, 64))
	}
	section := func(title string, empty string, n int) bool {
		fmt.Fprintln(out, header.Render(title))
		if n == 0 {
			fmt.Fprintf(out, "  %s\n", label.Render(empty))
			return false
		}
		return true
	}

	fmt.Fprintf(out, "%s %sHz (ω = %s rad/s)\n\n", header.Render("Analysis Frequency:"),
		utils.FormatSI(r.Frequency, precision), strconv.FormatFloat(r.Omega, 'g', precision, 64))

	if section("Node Voltages", "no nodes found", len(r.Nodes)) {
		for _, nv := range r.Nodes {
			fmt.Fprintf(out, "  %s: %s\n", nv.Node, phasor(nv.Voltage, "V"))
		}
	}
	fmt.Fprintln(out)

	if section("Component Currents", "no components found", len(r.Components)) {
		for _, c := range r.Components {
			comp := c.Component
			fmt.Fprintf(out, "  %s (%s %s%s, %s → %s): I = %s, V = %s, Z = %s\n",
				comp.Name, comp.Type, utils.FormatSI(comp.Value, precision), comp.Type.Unit(), comp.A, comp.B,
				phasor(c.Current, "A"), phasor(c.Voltage, "V"), phasor(c.Impedance, "Ω"))
		}
	}
	fmt.Fprintln(out)

	if section("Voltage Source Currents", "no voltage sources found", len(r.VoltageSources)) {
		for _, vs := range r.VoltageSources {
			fmt.Fprintf(out, "  %s (%s → %s): %s\n", vs.Source.Name, vs.Source.Pos, vs.Source.Neg, phasor(vs.Current, "A"))
		}
	}
	fmt.Fprintln(out)

	if section("Current Source Voltages", "no current sources found", len(r.CurrentSources)) {
		for _, cs := range r.CurrentSources {
			fmt.Fprintf(out, "  %s (%s → %s): %s\n", cs.Source.Name, cs.Source.From, cs.Source.To, phasor(cs.Voltage, "V"))
		}
	}
	fmt.Fprintln(out)

	if section("Equivalent Parallel Impedances", "no parallel components found", len(r.Parallel)) {
		for _, g := range r.Parallel {
			fmt.Fprintf(out, "  %s–%s %v: %s\n", g.Nodes[0], g.Nodes[1], g.Members, phasor(g.Impedance, "Ω"))
		}
	}
	fmt.Fprintln(out)

	if section("Equivalent Series Impedances", "no series components found", len(r.Series)) {
		for _, s := range r.Series {
			fmt.Fprintf(out, "  at %s %v: %s\n", s.Node, s.Members, phasor(s.Impedance, "Ω"))
		}
	}
	return out.Flush()
}
