package ast

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewParseTree(t *testing.T) {
	src := `* title line
# full line comment
.node A B
.value RLOAD 4.7k
R1 A B %RLOAD   // trailing comment
C1 B GND 1u # another
/* block
   comment */ L1 B GND 10m
V1 A GND SINE 10 60 0 /* inline */
.end
R9 X Y 1
`
	tree, err := NewParseTree(strings.NewReader(src))
	if err != nil {
		t.Fatalf("NewParseTree failed: %v", err)
	}

	var got []string
	for _, n := range tree.ElementNodes {
		got = append(got, n.Name+" "+n.Fields.String())
	}
	want := []string{
		"R1 A B 4.7k",
		"C1 B GND 1u",
		"L1 B GND 10m",
		"V1 A GND SINE 10 60 0",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
	if len(tree.NodeNodes) != 2 || tree.NodeNodes[1].Name != "B" {
		t.Errorf("NodeNodes = %v", tree.NodeNodes)
	}
	if tree.ValueNodes["RLOAD"] != "4.7k" {
		t.Errorf("ValueNodes = %v", tree.ValueNodes)
	}
	if tree.ElementNodes[2].Line != 8 {
		t.Errorf("L1 line = %d, want 8", tree.ElementNodes[2].Line)
	}
	var comments []string
	for _, c := range tree.CommentNodes {
		comments = append(comments, c.Text)
	}
	wantComments := []string{"title line", "full line comment", "trailing comment", "another", "block", "comment", "inline"}
	if diff := cmp.Diff(wantComments, comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(tree.String(), "4 elements") {
		t.Errorf("String() = %q", tree.String())
	}
}

func TestNewParseTreeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line string
	}{
		{"unknown command", "R1 A GND 1\n.tran 1 2\n", "line 2"},
		{"bad value command", ".value X\n", "line 1"},
		{"empty node command", ".node\n", "line 1"},
		{"undefined variable", "R1 A GND %R\n", "line 1"},
		{"bad token", "R1 A GND 1\n1k A B\n", "line 2"},
		{"open block", "/* never closed\nR1 A GND 1\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParseTree(strings.NewReader(tt.src))
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("expected ErrSyntax, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.line) {
				t.Errorf("error %q does not mention %s", err, tt.line)
			}
		})
	}
}
