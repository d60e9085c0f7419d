package weft

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExtractNilTree(t *testing.T) {
	p := Extract(nil)
	if !p.IsEmpty() {
		t.Errorf("Extract(nil) = %+v, want empty projection", p)
	}
}

func TestExtractEmptyTree(t *testing.T) {
	p := Extract(&ContentTree{})
	if !p.IsEmpty() {
		t.Errorf("Extract(empty) = %+v, want empty projection", p)
	}
}

func TestExtractTextNodes(t *testing.T) {
	tree := &ContentTree{Nodes: []Node{
		{ID: "n1", Type: "text", Text: &NodeText{Text: "Hello", HTML: "<p>Hello</p>"}},
		{ID: "n2", Type: "text", Text: &NodeText{Text: "", HTML: ""}},
		{ID: "n3", Type: "image"},
		{ID: "n4", Type: "text", Text: &NodeText{Text: "World", HTML: "World"}},
	}}

	p := Extract(tree)
	want := Projection{Nodes: []ProjectedNode{
		{NodeID: "n1", Text: "<p>Hello</p>"},
		{NodeID: "n4", Text: "World"},
	}}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("Extract() = %+v, want %+v", p, want)
	}
}

func TestExtractOverrides(t *testing.T) {
	tree := &ContentTree{Nodes: []Node{
		{ID: "c1", Type: "component-instance", PropertyOverrides: []PropertyOverride{
			{PropertyID: "p1", Text: TextValue{Text: "Heading"}},
			{PropertyID: "", Text: TextValue{Text: "anonymous"}},
			{PropertyID: "p2", Text: TextValue{Text: ""}},
			{PropertyID: "p3", Text: TextValue{Text: "Subheading"}},
		}},
	}}

	p := Extract(tree)
	if len(p.Nodes) != 1 {
		t.Fatalf("Extract() node count = %d, want 1", len(p.Nodes))
	}
	got := p.Nodes[0]
	if got.NodeID != "c1" {
		t.Errorf("NodeID = %q, want %q", got.NodeID, "c1")
	}
	want := []ProjectedOverride{
		{PropertyID: "p1", Text: "Heading"},
		{PropertyID: "p3", Text: "Subheading"},
	}
	if !reflect.DeepEqual(got.Overrides, want) {
		t.Errorf("Overrides = %+v, want %+v", got.Overrides, want)
	}
}

// A node whose overrides are all empty contributes nothing.
func TestExtractDropsAllEmptyOverrideNode(t *testing.T) {
	tree := &ContentTree{Nodes: []Node{
		{ID: "c1", PropertyOverrides: []PropertyOverride{
			{PropertyID: "p1", Text: TextValue{Text: ""}},
		}},
		{ID: "n1", Text: &NodeText{HTML: "kept"}},
	}}

	p := Extract(tree)
	if len(p.Nodes) != 1 || p.Nodes[0].NodeID != "n1" {
		t.Errorf("Extract() = %+v, want only node n1", p)
	}
}

// Overrides take precedence: a node carrying both overrides and inline text
// is projected as an override node.
func TestExtractOverridesWinOverText(t *testing.T) {
	tree := &ContentTree{Nodes: []Node{
		{
			ID:   "c1",
			Text: &NodeText{HTML: "inline"},
			PropertyOverrides: []PropertyOverride{
				{PropertyID: "p1", Text: TextValue{Text: "override"}},
			},
		},
	}}

	p := Extract(tree)
	if len(p.Nodes) != 1 {
		t.Fatalf("node count = %d, want 1", len(p.Nodes))
	}
	if p.Nodes[0].Text != "" || len(p.Nodes[0].Overrides) != 1 {
		t.Errorf("Extract() = %+v, want override variant only", p.Nodes[0])
	}
}

func TestExtractIdempotent(t *testing.T) {
	tree := &ContentTree{Nodes: []Node{
		{ID: "n1", Text: &NodeText{HTML: "<h1>Title</h1>"}},
		{ID: "c1", PropertyOverrides: []PropertyOverride{
			{PropertyID: "p1", Text: TextValue{Text: "CTA"}},
		}},
	}}

	once := Extract(tree)
	twice := Extract(once.Tree())
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Extract(Extract(t).Tree()) = %+v, want %+v", twice, once)
	}
}

func TestExtractDoesNotMutateTree(t *testing.T) {
	tree := &ContentTree{Nodes: []Node{
		{ID: "n1", Text: &NodeText{Text: "Hello", HTML: "<p>Hello</p>"}},
	}}
	before, _ := json.Marshal(tree)

	_ = Extract(tree)

	after, _ := json.Marshal(tree)
	if string(before) != string(after) {
		t.Errorf("tree mutated by Extract:\nbefore %s\nafter  %s", before, after)
	}
}

func TestProjectionLeafCount(t *testing.T) {
	p := Projection{Nodes: []ProjectedNode{
		{NodeID: "n1", Text: "a"},
		{NodeID: "c1", Overrides: []ProjectedOverride{
			{PropertyID: "p1", Text: "b"},
			{PropertyID: "p2", Text: "c"},
		}},
	}}
	if got := p.LeafCount(); got != 3 {
		t.Errorf("LeafCount() = %d, want 3", got)
	}
}
