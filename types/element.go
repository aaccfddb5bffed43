package types

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// NodeID 节点标识, 由名称唯一确定
type NodeID string

// IsGnd 是否为参考地
func (id NodeID) IsGnd() bool { return id == Gnd }

// Waveform 激励波形标记
// 分析只使用其基波相量, 非正弦波形按同样方式处理。
type Waveform int

// 波形类型
const (
	WfSine     Waveform = iota // 正弦
	WfSquare                   // 方波
	WfTriangle                 // 三角波
)

var waveformName = [...]string{
	WfSine:     "Sine",
	WfSquare:   "Square",
	WfTriangle: "Triangle",
}

// String 波形名称
func (wf Waveform) String() string {
	if wf >= 0 && int(wf) < len(waveformName) {
		return waveformName[wf]
	}
	return "Unknown"
}

// ParseWaveform 解析波形名称, 不区分大小写, 空字符串视为正弦
func ParseWaveform(s string) (Waveform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sine", "sin":
		return WfSine, nil
	case "square", "sq":
		return WfSquare, nil
	case "triangle", "tri":
		return WfTriangle, nil
	}
	return WfSine, fmt.Errorf("unknown waveform %q", s)
}

// MarshalText 文本序列化
func (wf Waveform) MarshalText() ([]byte, error) { return []byte(wf.String()), nil }

// UnmarshalText 文本反序列化
func (wf *Waveform) UnmarshalText(b []byte) (err error) {
	*wf, err = ParseWaveform(string(b))
	return err
}

// Component 无源元件(电阻/电容/电感), 两端无方向
type Component struct {
	Name  string      // 元件名称(如 R1)
	Type  ElementType // 元件类型
	Value float64     // 元件值, 基本单位 Ω/F/H
	A, B  NodeID      // 两端节点
}

// Impedance 复阻抗
func (c Component) Impedance(omega float64) complex128 {
	return c.Type.Impedance(c.Value, omega)
}

// Admittance 复导纳
func (c Component) Admittance(omega float64) complex128 {
	return c.Type.Admittance(c.Value, omega)
}

// String 格式化输出
func (c Component) String() string {
	return fmt.Sprintf("%s %s %g%s between %s and %s", c.Name, c.Type, c.Value, c.Type.Unit(), c.A, c.B)
}

// Source 独立源公共参数
type Source struct {
	Name      string   // 源名称
	Waveform  Waveform // 波形标记
	Peak      float64  // 峰值
	Frequency float64  // 频率(Hz)
	Phase     float64  // 相位(度)
}

// Phasor 源的相量 peak·e^{jφ}
func (s Source) Phasor() complex128 {
	return cmplx.Rect(s.Peak, s.Phase*math.Pi/180)
}

// VoltageSource 独立电压源, 约束 V(Pos)-V(Neg) = 相量
type VoltageSource struct {
	Source
	Pos, Neg NodeID // 正极/负极
}

// String 格式化输出
func (vs VoltageSource) String() string {
	return fmt.Sprintf("%s %s %gV %gHz ∠%g° between %s and %s",
		vs.Name, vs.Waveform, vs.Peak, vs.Frequency, vs.Phase, vs.Pos, vs.Neg)
}

// CurrentSource 独立电流源, 从 From 节点抽出电流并注入 To 节点
type CurrentSource struct {
	Source
	From, To NodeID // 流出/流入节点
}

// String 格式化输出
func (cs CurrentSource) String() string {
	return fmt.Sprintf("%s %s %gA %gHz ∠%g° between %s and %s",
		cs.Name, cs.Waveform, cs.Peak, cs.Frequency, cs.Phase, cs.From, cs.To)
}
