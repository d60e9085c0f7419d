package weft

// Extract walks a content tree in original node order and projects its
// translatable text. Override-bearing nodes contribute their non-empty
// overrides, text-bearing nodes their inline HTML payload; nodes without any
// non-empty text are omitted. A nil tree or an absent node sequence is a
// valid empty state, not an error, so Extract always succeeds.
//
// Extract is pure: it never mutates the tree, and extracting the tree form
// of an already-extracted projection yields the same projection.
func Extract(tree *ContentTree) Projection {
	var out Projection
	if tree == nil {
		return out
	}

	for _, n := range tree.Nodes {
		if len(n.PropertyOverrides) > 0 {
			var overrides []ProjectedOverride
			for _, ov := range n.PropertyOverrides {
				if ov.PropertyID == "" || ov.Text.Text == "" {
					continue
				}
				overrides = append(overrides, ProjectedOverride{
					PropertyID: ov.PropertyID,
					Text:       ov.Text.Text,
				})
			}
			if len(overrides) > 0 {
				out.Nodes = append(out.Nodes, ProjectedNode{
					NodeID:    n.ID,
					Overrides: overrides,
				})
			}
			continue
		}

		if n.Text != nil && n.Text.HTML != "" {
			out.Nodes = append(out.Nodes, ProjectedNode{
				NodeID: n.ID,
				Text:   n.Text.HTML,
			})
		}
	}

	return out
}

// Tree re-expresses a projection as a content tree. It is the inverse used
// to check extraction idempotence and to preview a projection with tree
// tooling; the resulting tree carries only what the projection holds.
func (p Projection) Tree() *ContentTree {
	tree := &ContentTree{}
	for _, n := range p.Nodes {
		node := Node{ID: n.NodeID}
		if len(n.Overrides) > 0 {
			for _, ov := range n.Overrides {
				node.PropertyOverrides = append(node.PropertyOverrides, PropertyOverride{
					PropertyID: ov.PropertyID,
					Text:       TextValue{Text: ov.Text},
				})
			}
		} else {
			node.Text = &NodeText{HTML: n.Text}
		}
		tree.Nodes = append(tree.Nodes, node)
	}
	return tree
}
