package graph

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bisect/pkg/partition"
	"github.com/matzehuels/bisect/pkg/partition/kl"
)

func TestNewResult(t *testing.T) {
	b, err := Build(Reference())
	if err != nil {
		t.Fatal(err)
	}
	opt, err := kl.New(b.Graph, b.A, b.B, kl.Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	res, err := opt.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	out := NewResult(b, res)
	if out.FinalCut != res.FinalCut || out.InitialCut != res.InitialCut {
		t.Errorf("cuts = %d/%d, want %d/%d", out.InitialCut, out.FinalCut, res.InitialCut, res.FinalCut)
	}
	if len(out.Passes) != len(res.Passes) {
		t.Fatalf("passes = %d, want %d", len(out.Passes), len(res.Passes))
	}
	if len(out.Passes[0].Exchanges) != 6 {
		t.Errorf("first pass exchanges = %d, want 6", len(out.Passes[0].Exchanges))
	}
	if len(out.Partitions) != 2 || len(out.Partitions[0].Nodes) != 6 {
		t.Errorf("partitions = %+v", out.Partitions)
	}

	data, err := MarshalResult(out)
	if err != nil {
		t.Fatal(err)
	}
	back, err := UnmarshalResult(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.FinalCut != out.FinalCut || back.Partitions[1].Name != "B" {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestBisectionApply(t *testing.T) {
	b, err := Build(Reference())
	if err != nil {
		t.Fatal(err)
	}
	sides := []Side{
		{Name: "A", Nodes: []string{"a", "b", "c", "g", "h", "i"}},
		{Name: "B", Nodes: []string{"d", "e", "f", "j", "k", "l"}},
	}
	if err := b.Apply(sides); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	got := NewResult(b, &kl.Result{}).Partitions
	for i, s := range sides {
		if strings.Join(got[i].Nodes, ",") != strings.Join(s.Nodes, ",") {
			t.Errorf("side %s = %v, want %v", s.Name, got[i].Nodes, s.Nodes)
		}
	}

	if err := b.Apply([]Side{{Name: "C", Nodes: []string{"a"}}}); !errors.Is(err, partition.ErrUnknownPartition) {
		t.Errorf("unknown side: %v", err)
	}
	if err := b.Apply([]Side{{Name: "A", Nodes: []string{"zz"}}}); !errors.Is(err, partition.ErrUnknownNode) {
		t.Errorf("unknown node: %v", err)
	}
}
