package weft

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Edit is a reviewer's change to a translation result. Exactly two edit
// surfaces exist and they stay mutually consistent: RawStructureEdit replaces
// the serialized structure wholesale, FlatTextEdit rebinds edited leaf text
// by position. A nil Edit round-trips the original.
type Edit interface {
	isEdit()
}

// FlatTextEdit carries a newline-joined sequence of leaf text values, one
// line per leaf, in the same traversal order FlatText produces.
type FlatTextEdit struct {
	Text string
}

func (FlatTextEdit) isEdit() {}

// RawStructureEdit carries the full serialized structure as edited by the
// reviewer. It replaces the result only if it reparses with the same
// identity key-set.
type RawStructureEdit struct {
	Raw []byte
}

func (RawStructureEdit) isEdit() {}

// Reconcile merges a reviewer's edit back into a translation result,
// returning a fresh structure. The original is never mutated.
func Reconcile(original *TranslationResult, edit Edit) (*TranslationResult, error) {
	switch e := edit.(type) {
	case nil:
		return original.Clone(), nil
	case FlatTextEdit:
		return ApplyFlatEdit(original, e.Text), nil
	case RawStructureEdit:
		return ApplyRawEdit(original, e.Raw)
	default:
		return nil, &InvalidInputError{Message: fmt.Sprintf("unsupported edit type %T", edit)}
	}
}

// FlatText renders the leaf text values of a result as one line per leaf,
// in the traversal order used by extraction. ApplyFlatEdit relies on this
// exact order for positional rebinding.
func FlatText(r *TranslationResult) string {
	var lines []string
	forEachLeaf(r, func(text *string) {
		lines = append(lines, *text)
	})
	return strings.Join(lines, "\n")
}

// ApplyFlatEdit splits the edited text on newlines and rebinds each line to
// the next leaf by strict positional index. Leaves beyond the edited line
// count keep their pre-edit text; edited lines beyond the leaf count are
// ignored. The result is a fresh structure.
func ApplyFlatEdit(r *TranslationResult, edited string) *TranslationResult {
	out := r.Clone()
	if out == nil {
		return nil
	}
	lines := strings.Split(edited, "\n")
	i := 0
	forEachLeaf(out, func(text *string) {
		if i < len(lines) {
			*text = strings.TrimSpace(lines[i])
		}
		i++
	})
	return out
}

// ApplyRawEdit reparses an edited serialized structure and accepts it only
// if it is well-formed and its identity key-set matches the original's.
// Divergence is a StructuralMismatchError; a parse failure is an
// InvalidInputError carrying the decode detail.
func ApplyRawEdit(original *TranslationResult, raw []byte) (*TranslationResult, error) {
	var edited TranslationResult
	if err := json.Unmarshal(raw, &edited); err != nil {
		return nil, &InvalidInputError{Message: fmt.Sprintf("edited structure is not well-formed: %v", err)}
	}
	if err := validateKeySet(original, &edited); err != nil {
		return nil, err
	}
	return &edited, nil
}

// WritePayload maps a result's node and property identities back onto the
// store's write schema, with text payloads flattened to plain strings.
func WritePayload(r *TranslationResult) WriteRequest {
	var req WriteRequest
	if r == nil {
		return req
	}
	for _, n := range r.Nodes {
		wn := WriteNode{NodeID: n.NodeID, Text: n.Text}
		for _, ov := range n.Overrides {
			wn.PropertyOverrides = append(wn.PropertyOverrides, WriteOverride{
				PropertyID: ov.PropertyID,
				Text:       ov.Text,
			})
		}
		req.Nodes = append(req.Nodes, wn)
	}
	return req
}

// forEachLeaf visits every text leaf in extraction order. Both the flat view
// and flat-edit rebinding go through this single traversal, which is what
// keeps the two aligned.
func forEachLeaf(r *TranslationResult, fn func(text *string)) {
	if r == nil {
		return
	}
	for i := range r.Nodes {
		n := &r.Nodes[i]
		if len(n.Overrides) > 0 {
			for j := range n.Overrides {
				fn(&n.Overrides[j].Text)
			}
			continue
		}
		if n.Text != "" {
			fn(&n.Text)
		}
	}
}

// validateKeySet checks that the edited result carries exactly the identity
// key-set of the original: no node or (node, property) pair missing, none
// invented.
func validateKeySet(want, got *TranslationResult) error {
	wantKeys := identityKeys(want)
	gotKeys := identityKeys(got)

	for key := range wantKeys {
		if !gotKeys[key] {
			return &StructuralMismatchError{Message: fmt.Sprintf("edited structure omits %s", key)}
		}
	}
	for key := range gotKeys {
		if !wantKeys[key] {
			return &StructuralMismatchError{Message: fmt.Sprintf("edited structure introduces %s", key)}
		}
	}
	return nil
}

func identityKeys(r *TranslationResult) map[string]bool {
	keys := make(map[string]bool)
	if r == nil {
		return keys
	}
	for _, n := range r.Nodes {
		if len(n.Overrides) == 0 {
			keys["node "+n.NodeID] = true
			continue
		}
		for _, ov := range n.Overrides {
			keys["node "+n.NodeID+" property "+ov.PropertyID] = true
		}
	}
	return keys
}
