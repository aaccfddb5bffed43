package types

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func newTestNetwork(t *testing.T, nodes ...string) *Network {
	t.Helper()
	net := NewNetwork()
	for _, n := range nodes {
		if _, err := net.AddNode(n); err != nil {
			t.Fatalf("AddNode(%q) failed: %v", n, err)
		}
	}
	return net
}

func TestNetworkAddNode(t *testing.T) {
	net := newTestNetwork(t, "A")
	if _, err := net.AddNode("A"); !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("duplicate node: got %v, want ErrDuplicateNode", err)
	}
	if _, err := net.AddNode("GND"); !errors.Is(err, ErrDuplicateNode) {
		t.Fatalf("duplicate ground: got %v, want ErrDuplicateNode", err)
	}
	// 自动命名跳过已有名称
	if _, err := net.AddNode("N0"); err != nil {
		t.Fatal(err)
	}
	id, err := net.AddNode("")
	if err != nil {
		t.Fatal(err)
	}
	if id != "N1" {
		t.Errorf("auto name = %q, want N1", id)
	}
	want := []NodeID{"A", "GND", "N0", "N1"}
	got := net.Nodes()
	if len(got) != len(want) {
		t.Fatalf("Nodes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Nodes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNetworkAddComponentValidation(t *testing.T) {
	net := newTestNetwork(t, "A", "B")
	tests := []struct {
		name string
		c    Component
		want error
	}{
		{"zero value", Component{Type: TypeResistor, Value: 0, A: "A", B: Gnd}, ErrNonPositive},
		{"negative value", Component{Type: TypeCapacitor, Value: -1e-6, A: "A", B: Gnd}, ErrNonPositive},
		{"nan value", Component{Type: TypeInductor, Value: math.NaN(), A: "A", B: Gnd}, ErrNonPositive},
		{"same node", Component{Type: TypeResistor, Value: 1, A: "A", B: "A"}, ErrSameNode},
		{"missing node", Component{Type: TypeResistor, Value: 1, A: "A", B: "Z"}, ErrMissingNode},
		{"unknown type", Component{Type: TypeUnknown, Value: 1, A: "A", B: "B"}, ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := net.AddComponent(tt.c)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not a *ValidationError", err)
			}
		})
	}
	if len(net.Components) != 0 {
		t.Errorf("rejected components were stored: %v", net.Components)
	}
}

func TestNetworkAutoNames(t *testing.T) {
	net := newTestNetwork(t, "A")
	r1, err := net.AddComponent(Component{Type: TypeResistor, Value: 100, A: "A", B: Gnd})
	if err != nil {
		t.Fatal(err)
	}
	r2, err := net.AddComponent(Component{Type: TypeResistor, Value: 200, A: "A", B: Gnd})
	if err != nil {
		t.Fatal(err)
	}
	c1, err := net.AddComponent(Component{Type: TypeCapacitor, Value: 1e-6, A: "A", B: Gnd})
	if err != nil {
		t.Fatal(err)
	}
	if r1.Name != "R1" || r2.Name != "R2" || c1.Name != "C1" {
		t.Errorf("names = %s %s %s, want R1 R2 C1", r1.Name, r2.Name, c1.Name)
	}
	if _, err := net.AddComponent(Component{Name: "R1", Type: TypeResistor, Value: 1, A: "A", B: Gnd}); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate name: got %v", err)
	}
}

func TestNetworkSources(t *testing.T) {
	net := newTestNetwork(t, "A")
	src := Source{Peak: 10, Frequency: 50, Phase: 30}
	if _, err := net.AddVoltageSource(VoltageSource{Source: src, Pos: "A", Neg: Gnd}); err != nil {
		t.Fatal(err)
	}
	bad := []Source{
		{Peak: 0, Frequency: 50},
		{Peak: 1, Frequency: 0},
		{Peak: 1, Frequency: -50},
	}
	for _, s := range bad {
		if _, err := net.AddCurrentSource(CurrentSource{Source: s, From: "A", To: Gnd}); !errors.Is(err, ErrNonPositive) {
			t.Errorf("source %+v: got %v, want ErrNonPositive", s, err)
		}
	}
	if _, err := net.AddVoltageSource(VoltageSource{Source: src, Pos: Gnd, Neg: Gnd}); !errors.Is(err, ErrSameNode) {
		t.Errorf("same node source: got %v", err)
	}
	p := net.VoltageSources[0].Phasor()
	if math.Abs(cmplx.Abs(p)-10) > 1e-12 || math.Abs(cmplx.Phase(p)*180/math.Pi-30) > 1e-9 {
		t.Errorf("phasor = %v, want 10∠30°", p)
	}
}

func TestNetworkDeleteNode(t *testing.T) {
	net := newTestNetwork(t, "A", "B")
	if _, err := net.AddComponent(Component{Type: TypeResistor, Value: 1, A: "A", B: Gnd}); err != nil {
		t.Fatal(err)
	}
	if err := net.DeleteNode("A"); !errors.Is(err, ErrNodeInUse) {
		t.Errorf("delete referenced node: got %v", err)
	}
	if err := net.DeleteNode(Gnd); !errors.Is(err, ErrNodeInUse) {
		t.Errorf("delete ground: got %v", err)
	}
	if err := net.DeleteNode("B"); err != nil {
		t.Errorf("delete free node: %v", err)
	}
	if net.HasNode("B") {
		t.Error("node B still present")
	}
}

func TestNetworkReset(t *testing.T) {
	net := newTestNetwork(t, "A", "B")
	net.AddComponent(Component{Type: TypeResistor, Value: 1, A: "A", B: "B"})
	net.AddCurrentSource(CurrentSource{Source: Source{Peak: 1, Frequency: 1}, From: "A", To: Gnd})
	net.Reset()
	nodes := net.Nodes()
	if len(nodes) != 1 || nodes[0] != Gnd {
		t.Errorf("nodes after reset = %v, want [GND]", nodes)
	}
	if len(net.Components) != 0 || len(net.VoltageSources) != 0 || len(net.CurrentSources) != 0 {
		t.Error("entity lists not empty after reset")
	}
	if !net.IsEmpty() {
		t.Error("network not empty after reset")
	}
}

func TestNetworkFrequency(t *testing.T) {
	net := newTestNetwork(t, "A")
	if f := net.Frequency(60); f != 60 {
		t.Errorf("default frequency = %v", f)
	}
	net.AddCurrentSource(CurrentSource{Source: Source{Peak: 1, Frequency: 400}, From: "A", To: Gnd})
	if f := net.Frequency(60); f != 400 {
		t.Errorf("current source frequency = %v", f)
	}
	net.AddVoltageSource(VoltageSource{Source: Source{Peak: 1, Frequency: 50}, Pos: "A", Neg: Gnd})
	if f := net.Frequency(60); f != 50 {
		t.Errorf("voltage source frequency = %v", f)
	}
}

func TestNetworkFingerprint(t *testing.T) {
	a := newTestNetwork(t, "A")
	a.AddComponent(Component{Type: TypeResistor, Value: 1000, A: "A", B: Gnd})
	b := a.Clone()
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("clone fingerprint differs")
	}
	b.AddComponent(Component{Type: TypeResistor, Value: 1000, A: "A", B: Gnd})
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatal("fingerprint did not change after edit")
	}
	if len(a.Components) != 1 {
		t.Fatal("clone shares component storage")
	}
}

func TestElementImpedancePhase(t *testing.T) {
	omega := 2 * math.Pi * 1000
	zc := TypeCapacitor.Impedance(1e-6, omega)
	if real(zc) != 0 || imag(zc) >= 0 {
		t.Errorf("capacitor impedance %v is not pure negative imaginary", zc)
	}
	if math.Abs(cmplx.Abs(zc)-1/(omega*1e-6)) > 1e-9 {
		t.Errorf("|Zc| = %v, want %v", cmplx.Abs(zc), 1/(omega*1e-6))
	}
	zl := TypeInductor.Impedance(1e-3, omega)
	if real(zl) != 0 || imag(zl) != omega*1e-3 {
		t.Errorf("inductor impedance = %v", zl)
	}
	for _, et := range []ElementType{TypeResistor, TypeCapacitor, TypeInductor} {
		z := et.Impedance(2.5, omega)
		y := et.Admittance(2.5, omega)
		if cmplx.Abs(z*y-1) > 1e-12 {
			t.Errorf("%s: Z·Y = %v, want 1", et, z*y)
		}
	}
}

func TestElementTypeNames(t *testing.T) {
	for _, et := range []ElementType{TypeResistor, TypeCapacitor, TypeInductor} {
		if GetNameType(et.String()) != et {
			t.Errorf("GetNameType(%q) != %v", et.String(), et)
		}
		if GetPrefixType(et.Prefix()) != et {
			t.Errorf("GetPrefixType(%q) != %v", et.Prefix(), et)
		}
		var back ElementType
		b, _ := et.MarshalText()
		if err := back.UnmarshalText(b); err != nil || back != et {
			t.Errorf("text round trip %v -> %v (%v)", et, back, err)
		}
	}
	if _, err := ParseWaveform("sawtooth"); err == nil {
		t.Error("unknown waveform accepted")
	}
}
