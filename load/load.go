// Package load 读写电路文件: 行式网表和 TOML。
package load

import (
	"accircuit/load/ast"
	"accircuit/types"
	"accircuit/utils"
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// LoadString 加载网表字符串
func LoadString(s string) (*types.Network, error) {
	return ReadNetlist(strings.NewReader(s))
}

// ReadNetlist 加载行式网表
//
//	.node A B                 节点声明
//	.value RL 4.7k            变量, 通过 %RL 引用
//	R1 A GND 1k               无源元件: 名称前缀 R/C/L, 两端节点, 值
//	V1 A GND SINE 10 60 0     电压源: 正极 负极 [波形] 峰值 频率 [相位]
//	I1 GND B 10m 60 90        电流源: 流出 流入 [波形] 峰值 频率 [相位]
//
// 引用未声明的节点时自动创建, 0 和 gnd 都表示地节点。
func ReadNetlist(r io.Reader) (*types.Network, error) {
	tree, err := ast.NewParseTree(r)
	if err != nil {
		return nil, err
	}
	net := types.NewNetwork()
	for _, n := range tree.NodeNodes {
		id := nodeID(n.Name)
		if net.HasNode(id) {
			continue
		}
		if _, err := net.AddNode(string(id)); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
	}
	for _, n := range tree.ElementNodes {
		if err := loadElement(net, n); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
	}
	return net, nil
}

// nodeID 网表节点名, 地节点统一为 GND
func nodeID(name string) types.NodeID {
	switch strings.ToLower(name) {
	case "0", "gnd":
		return types.Gnd
	}
	return types.NodeID(name)
}

// node 取节点, 不存在时创建
func node(net *types.Network, name string) (types.NodeID, error) {
	id := nodeID(name)
	if net.HasNode(id) {
		return id, nil
	}
	return net.AddNode(string(id))
}

func nodePair(net *types.Network, fields utils.NetList) (a, b types.NodeID, err error) {
	if len(fields) < 2 {
		return "", "", fmt.Errorf("%w: expected two nodes", ast.ErrSyntax)
	}
	if a, err = node(net, fields[0]); err != nil {
		return "", "", err
	}
	if b, err = node(net, fields[1]); err != nil {
		return "", "", err
	}
	return a, b, nil
}

func loadElement(net *types.Network, n *ast.ElementNode) error {
	prefix := strings.ToUpper(n.Name[:1])
	switch prefix {
	case "V", "I":
		src, err := parseSource(n)
		if err != nil {
			return err
		}
		a, b, err := nodePair(net, n.Fields)
		if err != nil {
			return err
		}
		if prefix == "V" {
			_, err = net.AddVoltageSource(types.VoltageSource{Source: src, Pos: a, Neg: b})
		} else {
			_, err = net.AddCurrentSource(types.CurrentSource{Source: src, From: a, To: b})
		}
		return err
	}

	t := types.GetPrefixType(prefix)
	if t == types.TypeUnknown {
		return fmt.Errorf("%w %q", types.ErrUnknownType, n.Name)
	}
	if len(n.Fields) != 3 {
		return fmt.Errorf("%w: %s expects 2 nodes and a value", ast.ErrSyntax, n.Name)
	}
	value, err := n.Fields.ParseValue(2)
	if err != nil {
		return err
	}
	a, b, err := nodePair(net, n.Fields)
	if err != nil {
		return err
	}
	_, err = net.AddComponent(types.Component{Name: n.Name, Type: t, Value: value, A: a, B: b})
	return err
}

// parseSource 解析源参数 [波形] 峰值 频率 [相位]
func parseSource(n *ast.ElementNode) (types.Source, error) {
	src := types.Source{Name: n.Name}
	args := n.Fields[min(2, len(n.Fields)):]
	if len(args) > 0 && !args.IsValue(0) {
		wf, err := types.ParseWaveform(args[0])
		if err != nil {
			return src, err
		}
		src.Waveform = wf
		args = args[1:]
	}
	if len(args) < 2 || len(args) > 3 {
		return src, fmt.Errorf("%w: %s expects [waveform] peak frequency [phase]", ast.ErrSyntax, n.Name)
	}
	var err error
	if src.Peak, err = args.ParseValue(0); err != nil {
		return src, err
	}
	if src.Frequency, err = args.ParseValue(1); err != nil {
		return src, err
	}
	if src.Phase, err = args.ParseValueDefault(2, 0); err != nil {
		return src, err
	}
	return src, nil
}

// 导出错误
var (
	ErrNetlistName = errors.New("name cannot be written to a netlist") // 含空白或注释标记, 应改用 TOML
	ErrGroundAlias = errors.New("node name reads back as ground")      // 0/gnd 之类的非地节点
)

// WriteNetlist 导出行式网表, 读回后得到相同的网络
// 名称含空白或注释标记时返回 ErrNetlistName, 节点名会被读成地节点时返回 ErrGroundAlias。
func WriteNetlist(w io.Writer, net *types.Network) error {
	if err := checkGroundAlias(net); err != nil {
		return err
	}
	if err := checkNetlistNames(net); err != nil {
		return err
	}
	writer := bufio.NewWriter(w)
	fmt.Fprintln(writer, "# accircuit netlist")
	var declared []string
	for _, id := range net.Nodes() {
		if !id.IsGnd() {
			declared = append(declared, string(id))
		}
	}
	if len(declared) > 0 {
		fmt.Fprintf(writer, ".node %s\n", strings.Join(declared, " "))
	}
	for _, c := range net.Components {
		fmt.Fprintf(writer, "%s %s %s %s\n", netName(c.Name, c.Type.Prefix()), c.A, c.B, utils.FormatFloat(c.Value))
	}
	for _, vs := range net.VoltageSources {
		fmt.Fprintf(writer, "%s %s %s %s\n", netName(vs.Name, "V"), vs.Pos, vs.Neg, formatSource(vs.Source))
	}
	for _, cs := range net.CurrentSources {
		fmt.Fprintf(writer, "%s %s %s %s\n", netName(cs.Name, "I"), cs.From, cs.To, formatSource(cs.Source))
	}
	fmt.Fprintln(writer, ".end")
	return writer.Flush()
}

// checkGroundAlias 非地节点的名称不能是地节点别名
func checkGroundAlias(net *types.Network) error {
	for _, id := range net.Nodes() {
		if !id.IsGnd() && nodeID(string(id)).IsGnd() {
			return fmt.Errorf("%w: node %q", ErrGroundAlias, id)
		}
	}
	return nil
}

// checkNetlistNames 检查所有节点和元件/源名称能否原样读回
func checkNetlistNames(net *types.Network) error {
	for _, id := range net.Nodes() {
		if !id.IsGnd() && !netlistToken(string(id)) {
			return fmt.Errorf("%w: node %q", ErrNetlistName, id)
		}
	}
	var names []string
	for _, c := range net.Components {
		names = append(names, c.Name)
	}
	for _, vs := range net.VoltageSources {
		names = append(names, vs.Name)
	}
	for _, cs := range net.CurrentSources {
		names = append(names, cs.Name)
	}
	for _, name := range names {
		if !netlistToken(name) {
			return fmt.Errorf("%w: element %q", ErrNetlistName, name)
		}
	}
	return nil
}

// netlistToken 单个字段: 非空, 不含空白和注释标记, 不以点命令/变量/行注释符号开头
func netlistToken(s string) bool {
	if s == "" || strings.ContainsFunc(s, unicode.IsSpace) {
		return false
	}
	for _, mark := range []string{"#", "//", "/*", "*/"} {
		if strings.Contains(s, mark) {
			return false
		}
	}
	return !strings.ContainsAny(s[:1], ".%*")
}

// netName 网表中名称首字母决定类型, 不匹配时补上前缀
func netName(name, prefix string) string {
	if name != "" && strings.EqualFold(name[:1], prefix) {
		return name
	}
	return prefix + name
}

func formatSource(s types.Source) string {
	return fmt.Sprintf("%s %s %s %s", strings.ToUpper(s.Waveform.String()),
		utils.FormatFloat(s.Peak), utils.FormatFloat(s.Frequency), utils.FormatFloat(s.Phase))
}
