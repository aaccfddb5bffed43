package analysis

import (
	"accircuit/graph"
	"accircuit/maths"
	"accircuit/mna"
	"accircuit/types"
	"errors"
	"fmt"
	"log/slog"
)

type options struct {
	logger           *slog.Logger
	defaultFrequency float64
}

// Option 分析选项
type Option func(*options)

// WithLogger 设置日志, 默认丢弃
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDefaultFrequency 网络中没有源时使用的频率, 非正数被忽略
func WithDefaultFrequency(f float64) Option {
	return func(o *options) {
		if f > 0 {
			o.defaultFrequency = f
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:           slog.New(slog.DiscardHandler),
		defaultFrequency: types.DefaultFrequency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Analyze 单频稳态分析
// 网络在分析期间只读, 相同网络多次分析得到相同结果。
// 失败时不返回部分结果:
//
//	types.ErrEmptyNetwork   网络为空
//	*SingularSystemError    方程奇异 (errors.Is maths.ErrSingular)
//	ErrNumericalFault       方程或结果中出现 NaN/Inf, 如理想 LC 谐振的并联等效阻抗
func Analyze(net *types.Network, opts ...Option) (report *Report, err error) {
	o := newOptions(opts)
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("analysis panicked", "panic", r)
			report, err = nil, fmt.Errorf("analysis: %w: %v", ErrNumericalFault, r)
		}
	}()

	g, err := graph.NewGraph(net)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	frequency := net.Frequency(o.defaultFrequency)
	omega := mna.Omega(frequency)
	o.logger.Debug("analysis start",
		"frequency", frequency,
		"nodes", g.NumNodes(),
		"components", len(g.Components()),
		"voltage_sources", g.NumVoltageSources(),
		"current_sources", len(g.CurrentSources()),
	)

	m := mna.Build(g, omega, o.logger)
	if !m.GetA().IsFinite() || !m.GetZ().IsFinite() {
		o.logger.Warn("non-finite stamp", "omega", omega)
		return nil, fmt.Errorf("analysis: %w: non-finite matrix entry", ErrNumericalFault)
	}
	if err := m.Solve(); err != nil {
		if errors.Is(err, maths.ErrSingular) {
			serr := &SingularSystemError{Floating: g.Floating()}
			o.logger.Warn("singular system", "floating", serr.Floating)
			return nil, fmt.Errorf("analysis: %w", serr)
		}
		return nil, fmt.Errorf("analysis: %w", err)
	}
	if !m.GetX().IsFinite() {
		return nil, fmt.Errorf("analysis: %w: non-finite solution", ErrNumericalFault)
	}

	report = extract(g, m, frequency)
	topo := Topology(g, omega)
	report.Parallel, report.Series = topo.Parallel, topo.Series
	if !report.IsFinite() {
		o.logger.Warn("non-finite result", "frequency", frequency)
		return nil, fmt.Errorf("analysis: %w: non-finite result", ErrNumericalFault)
	}
	o.logger.Info("analysis done",
		"frequency", frequency,
		"parallel_groups", len(report.Parallel),
		"series_pairs", len(report.Series),
	)
	return report, nil
}
