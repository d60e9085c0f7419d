package weft

import "fmt"

// ValidateShape checks a translation result against the projection it was
// produced from: same node count, same node identities in the same order,
// same override identities per node, and matching node variants. Only text
// values may differ. Any divergence is a StructuralMismatchError.
//
// Text-bearing leaves additionally have their markup skeleton compared, so a
// translation that drops or invents tags inside an HTML payload is rejected
// rather than written to the store.
func ValidateShape(want Projection, got *TranslationResult) error {
	if got == nil {
		return &StructuralMismatchError{Message: "no translated structure"}
	}
	if len(got.Nodes) != len(want.Nodes) {
		return &StructuralMismatchError{
			Message: fmt.Sprintf("expected %d nodes, got %d", len(want.Nodes), len(got.Nodes)),
		}
	}

	for i, wn := range want.Nodes {
		gn := got.Nodes[i]
		if gn.NodeID != wn.NodeID {
			return &StructuralMismatchError{
				Message: fmt.Sprintf("node %d: expected id %q, got %q", i, wn.NodeID, gn.NodeID),
			}
		}

		if len(wn.Overrides) > 0 {
			if len(gn.Overrides) != len(wn.Overrides) {
				return &StructuralMismatchError{
					Message: fmt.Sprintf("node %s: expected %d overrides, got %d",
						wn.NodeID, len(wn.Overrides), len(gn.Overrides)),
				}
			}
			for j, wo := range wn.Overrides {
				if gn.Overrides[j].PropertyID != wo.PropertyID {
					return &StructuralMismatchError{
						Message: fmt.Sprintf("node %s override %d: expected property %q, got %q",
							wn.NodeID, j, wo.PropertyID, gn.Overrides[j].PropertyID),
					}
				}
			}
			continue
		}

		if len(gn.Overrides) > 0 {
			return &StructuralMismatchError{
				Message: fmt.Sprintf("node %s: text node came back with overrides", wn.NodeID),
			}
		}
		if gn.Text == "" {
			return &StructuralMismatchError{
				Message: fmt.Sprintf("node %s: translated text is empty", wn.NodeID),
			}
		}
		if !SameMarkup(wn.Text, gn.Text) {
			return &StructuralMismatchError{
				Message: fmt.Sprintf("node %s: translated markup skeleton differs from source", wn.NodeID),
			}
		}
	}

	return nil
}
