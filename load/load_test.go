package load

import (
	"accircuit/load/ast"
	"accircuit/types"
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const sample = `# RC low pass
.node A B OUT
.value RS 1k
V1 A 0 SINE 10 1k 0
R1 A B %RS
C1 B gnd 100n
L1 B OUT 2.2m
R2 OUT GND 4.7k
I1 GND OUT square 10m 1k 90
`

// sameNetwork 比较节点集合与全部元件/源
func sameNetwork(t *testing.T, want, got *types.Network) {
	t.Helper()
	if diff := cmp.Diff(want.Nodes(), got.Nodes()); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreUnexported(types.Network{})); diff != "" {
		t.Errorf("network mismatch (-want +got):\n%s", diff)
	}
}

func TestReadNetlist(t *testing.T) {
	net, err := LoadString(sample)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	wantNodes := []types.NodeID{"A", "B", types.Gnd, "OUT"}
	if diff := cmp.Diff(wantNodes, net.Nodes()); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	wantComponents := []types.Component{
		{Name: "R1", Type: types.TypeResistor, Value: 1000, A: "A", B: "B"},
		{Name: "C1", Type: types.TypeCapacitor, Value: 100e-9, A: "B", B: types.Gnd},
		{Name: "L1", Type: types.TypeInductor, Value: 2.2e-3, A: "B", B: "OUT"},
		{Name: "R2", Type: types.TypeResistor, Value: 4700, A: "OUT", B: types.Gnd},
	}
	if diff := cmp.Diff(wantComponents, net.Components); diff != "" {
		t.Errorf("components mismatch (-want +got):\n%s", diff)
	}
	wantVS := []types.VoltageSource{{
		Source: types.Source{Name: "V1", Waveform: types.WfSine, Peak: 10, Frequency: 1000},
		Pos:    "A", Neg: types.Gnd,
	}}
	if diff := cmp.Diff(wantVS, net.VoltageSources); diff != "" {
		t.Errorf("voltage sources mismatch (-want +got):\n%s", diff)
	}
	wantCS := []types.CurrentSource{{
		Source: types.Source{Name: "I1", Waveform: types.WfSquare, Peak: 0.01, Frequency: 1000, Phase: 90},
		From:   types.Gnd, To: "OUT",
	}}
	if diff := cmp.Diff(wantCS, net.CurrentSources); diff != "" {
		t.Errorf("current sources mismatch (-want +got):\n%s", diff)
	}
}

func TestReadNetlistImplicitNodes(t *testing.T) {
	net, err := LoadString("V1 X 0 5 50\nR1 X Y 10\nR2 Y 0 10\n")
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	if !net.HasNode("X") || !net.HasNode("Y") {
		t.Errorf("implicit nodes not created: %v", net.Nodes())
	}
	vs := net.VoltageSources[0]
	if vs.Waveform != types.WfSine || vs.Phase != 0 || vs.Peak != 5 || vs.Frequency != 50 {
		t.Errorf("source defaults = %+v", vs)
	}
}

func TestReadNetlistErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"unknown prefix", "Q1 A B 1\n", types.ErrUnknownType},
		{"missing value", "R1 A B\n", ast.ErrSyntax},
		{"self loop", "R1 A A 1k\n", types.ErrSameNode},
		{"negative value", "R1 A GND -1k\n", types.ErrNonPositive},
		{"zero frequency", "V1 A GND 1 0\n", types.ErrNonPositive},
		{"source arity", "V1 A GND SINE 1\n", ast.ErrSyntax},
		{"duplicate name", "R1 A GND 1\nR1 A GND 2\n", types.ErrDuplicateName},
		{"syntax", ".bogus\n", ast.ErrSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadString(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	_, err := LoadString("V1 A GND ramp 1 60\n")
	if err == nil || !strings.Contains(err.Error(), "unknown waveform") {
		t.Errorf("expected unknown waveform error, got %v", err)
	}
	_, err = LoadString("R1 A GND 1x\n")
	if err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("expected line number in error, got %v", err)
	}
}

func TestNetlistRoundTrip(t *testing.T) {
	net, err := LoadString(sample)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	// 未连接的节点同样保留
	if _, err := net.AddNode("SPARE"); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteNetlist(&buf, net); err != nil {
		t.Fatalf("WriteNetlist failed: %v", err)
	}
	back, err := ReadNetlist(&buf)
	if err != nil {
		t.Fatalf("ReadNetlist failed: %v\n%s", err, buf.String())
	}
	sameNetwork(t, net, back)
	if net.Fingerprint() != back.Fingerprint() {
		t.Errorf("fingerprint changed")
	}
}

func TestNetlistExportPrefixesName(t *testing.T) {
	net := types.NewNetwork()
	a, _ := net.AddNode("A")
	if _, err := net.AddComponent(types.Component{Name: "load", Type: types.TypeResistor, Value: 50, A: a, B: types.Gnd}); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteNetlist(&buf, net); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Rload A GND 50\n") {
		t.Errorf("unexpected export:\n%s", buf.String())
	}
}

// TestNetlistUnwritableNames 读回后会被当作注释或拆成多个字段的名称不能写入网表, TOML 不受影响
func TestNetlistUnwritableNames(t *testing.T) {
	tests := []struct {
		name string
		node string // 节点名
		elem string // 元件名
	}{
		{"space in node", "a b", "R1"},
		{"hash in node", "x#1", "R1"},
		{"line comment in node", "p//q", "R1"},
		{"block comment in node", "p/*q", "R1"},
		{"leading star", "*n", "R1"},
		{"leading dot", ".n", "R1"},
		{"variable reference", "%n", "R1"},
		{"space in element", "A", "R 1"},
		{"hash in element", "A", "R#1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := types.NewNetwork()
			a, err := net.AddNode(tt.node)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := net.AddComponent(types.Component{Name: tt.elem, Type: types.TypeResistor, Value: 1e3, A: a, B: types.Gnd}); err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			if err := WriteNetlist(&buf, net); !errors.Is(err, ErrNetlistName) {
				t.Fatalf("expected ErrNetlistName, got %v\n%s", err, buf.String())
			}

			buf.Reset()
			if err := WriteTOML(&buf, net); err != nil {
				t.Fatalf("WriteTOML failed: %v", err)
			}
			back, err := ReadTOML(&buf)
			if err != nil {
				t.Fatalf("ReadTOML failed: %v", err)
			}
			sameNetwork(t, net, back)
		})
	}
}

// TestExportGroundAlias 名为 gnd/0 的普通节点读回会变成地节点, 两种格式都拒绝导出
func TestExportGroundAlias(t *testing.T) {
	for _, name := range []string{"gnd", "Gnd", "0"} {
		t.Run(name, func(t *testing.T) {
			net := types.NewNetwork()
			a, err := net.AddNode(name)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := net.AddComponent(types.Component{Type: types.TypeResistor, Value: 1e3, A: a, B: types.Gnd}); err != nil {
				t.Fatal(err)
			}
			var buf bytes.Buffer
			if err := WriteNetlist(&buf, net); !errors.Is(err, ErrGroundAlias) {
				t.Errorf("WriteNetlist: expected ErrGroundAlias, got %v", err)
			}
			if err := WriteTOML(&buf, net); !errors.Is(err, ErrGroundAlias) {
				t.Errorf("WriteTOML: expected ErrGroundAlias, got %v", err)
			}
		})
	}
}

func TestTOMLRoundTrip(t *testing.T) {
	net, err := LoadString(sample)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteTOML(&buf, net); err != nil {
		t.Fatalf("WriteTOML failed: %v", err)
	}
	for _, want := range []string{"[[component]]", "[[voltage_source]]", "[[current_source]]", "type = 'Capacitor'"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("toml output missing %q:\n%s", want, buf.String())
		}
	}
	back, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("ReadTOML failed: %v", err)
	}
	sameNetwork(t, net, back)
}

func TestReadTOML(t *testing.T) {
	src := `
nodes = ["A"]

[[component]]
type = "R"
value = 1000.0
a = "A"
b = "GND"

[[voltage_source]]
pos = "A"
neg = "0"
peak = 10.0
frequency = 60.0
`
	net, err := ReadTOML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadTOML failed: %v", err)
	}
	if net.Components[0].Name != "R1" || net.VoltageSources[0].Name != "V1" {
		t.Errorf("auto names not assigned: %+v %+v", net.Components, net.VoltageSources)
	}
	if net.VoltageSources[0].Neg != types.Gnd {
		t.Errorf("ground alias not applied")
	}

	_, err = ReadTOML(strings.NewReader("[[component]]\ncolor = 'red'\n"))
	if err == nil {
		t.Errorf("expected error for unknown field")
	}
	_, err = ReadTOML(strings.NewReader("[[component]]\ntype = 'resistor'\nvalue = 0.0\na = 'A'\nb = 'GND'\n"))
	if !errors.Is(err, types.ErrNonPositive) {
		t.Errorf("expected ErrNonPositive, got %v", err)
	}
}

func TestReadWriteFile(t *testing.T) {
	net, err := LoadString(sample)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, name := range []string{"circuit.net", "circuit.toml"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, net); err != nil {
			t.Fatalf("WriteFile(%s) failed: %v", name, err)
		}
		back, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s) failed: %v", name, err)
		}
		if net.Fingerprint() != back.Fingerprint() {
			t.Errorf("%s: fingerprint changed", name)
		}
	}
	if FormatOf("x.TOML") != FormatTOML || FormatOf("x.cir") != FormatNetlist {
		t.Errorf("FormatOf mismatch")
	}
	if FormatTOML.String() != "toml" || FormatNetlist.String() != "netlist" {
		t.Errorf("Format.String mismatch")
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.net")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
