// Package weft provides a node-preserving translation pipeline for hosted
// site content.
package weft

import (
	"bytes"
	"encoding/json"
)

// ContentTree is a structured document as returned by the content store's
// DOM endpoints. Only the node sequence is interpreted; everything else the
// store returns is ignored. The tree is read-only to the pipeline.
type ContentTree struct {
	Nodes []Node `json:"nodes"`
}

// Node is one element of a content tree. Two shapes occur: override-bearing
// nodes carry PropertyOverrides, text-bearing nodes carry an inline Text
// payload. A node never carries both.
type Node struct {
	ID                string             `json:"id"`
	Type              string             `json:"type,omitempty"`
	Text              *NodeText          `json:"text,omitempty"`
	PropertyOverrides []PropertyOverride `json:"propertyOverrides,omitempty"`
}

// NodeText is the inline payload of a text-bearing node. HTML is the
// translatable form; Text is the store's plain-text rendering of it.
type NodeText struct {
	Text string `json:"text,omitempty"`
	HTML string `json:"html,omitempty"`
}

// PropertyOverride is a per-node property substitution carrying leaf text.
// Overrides are unique per (node, property) pair and their order within a
// node is significant.
type PropertyOverride struct {
	PropertyID string    `json:"propertyId"`
	Text       TextValue `json:"text"`
}

// TextValue decodes the two text payload shapes the store emits: an object
// {"text": "..."} on reads, and a bare string in write payloads.
type TextValue struct {
	Text string
}

// UnmarshalJSON accepts either a bare string or an object with a "text" key.
func (v *TextValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &v.Text)
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	v.Text = obj.Text
	return nil
}

// MarshalJSON emits the object form used by the store's read schema.
func (v TextValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text string `json:"text"`
	}{Text: v.Text})
}

// Projection is the translator-facing extraction of a content tree: an
// ordered sequence of nodes holding only non-empty leaf text. Every identity
// in a Projection exists in the source tree; a Projection never introduces
// new identities.
type Projection struct {
	Nodes []ProjectedNode `json:"nodes"`
}

// IsEmpty reports whether the projection holds no translatable nodes.
func (p Projection) IsEmpty() bool {
	return len(p.Nodes) == 0
}

// LeafCount returns the number of text leaves in extraction order.
func (p Projection) LeafCount() int {
	n := 0
	for _, node := range p.Nodes {
		if len(node.Overrides) > 0 {
			n += len(node.Overrides)
		} else if node.Text != "" {
			n++
		}
	}
	return n
}

// ProjectedNode is one entry of a Projection. Exactly one of Text and
// Overrides is populated, mirroring the two node shapes.
type ProjectedNode struct {
	NodeID    string              `json:"nodeId"`
	Text      string              `json:"text,omitempty"`
	Overrides []ProjectedOverride `json:"propertyOverrides,omitempty"`
}

// UnmarshalJSON tolerates the identity aliasing observed in write payloads:
// some shapes use "id" where others use "nodeId". Both are accepted on read;
// "nodeId" wins when both are present.
func (n *ProjectedNode) UnmarshalJSON(data []byte) error {
	var aux struct {
		NodeID    string              `json:"nodeId"`
		ID        string              `json:"id"`
		Text      string              `json:"text,omitempty"`
		Overrides []ProjectedOverride `json:"propertyOverrides,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	n.NodeID = aux.NodeID
	if n.NodeID == "" {
		n.NodeID = aux.ID
	}
	n.Text = aux.Text
	n.Overrides = aux.Overrides
	return nil
}

// ProjectedOverride is the translator-facing form of a PropertyOverride.
type ProjectedOverride struct {
	PropertyID string `json:"propertyId"`
	Text       string `json:"text"`
}

// UnmarshalJSON tolerates the text payload drifting back to the read-schema
// object form {"text": "..."} in translated output.
func (o *ProjectedOverride) UnmarshalJSON(data []byte) error {
	var aux struct {
		PropertyID string          `json:"propertyId"`
		Text       json.RawMessage `json:"text"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.PropertyID = aux.PropertyID
	if len(aux.Text) == 0 {
		o.Text = ""
		return nil
	}
	var tv TextValue
	if err := tv.UnmarshalJSON(aux.Text); err != nil {
		return err
	}
	o.Text = tv.Text
	return nil
}

// TranslationResult is a Projection whose text values have been replaced by
// translated text. Identity fields, ordering and counts are identical to the
// Projection it was produced from; only text differs.
type TranslationResult struct {
	Nodes []ProjectedNode `json:"nodes"`
}

// Clone returns a deep copy. Reconciliation always produces fresh structures
// so an edited variant never corrupts the original.
func (r *TranslationResult) Clone() *TranslationResult {
	if r == nil {
		return nil
	}
	out := &TranslationResult{Nodes: make([]ProjectedNode, len(r.Nodes))}
	for i, n := range r.Nodes {
		cp := n
		if len(n.Overrides) > 0 {
			cp.Overrides = make([]ProjectedOverride, len(n.Overrides))
			copy(cp.Overrides, n.Overrides)
		}
		out.Nodes[i] = cp
	}
	return out
}

// LocaleTarget is one non-primary locale a translation batch is run against.
// LocaleID addresses DOM writes; CMSLocaleID addresses collection item
// writes. The two identifier spaces are distinct and never interchangeable.
type LocaleTarget struct {
	LocaleID    string
	CMSLocaleID string
	Tag         string
	DisplayName string
}

// WriteRequest is the payload accepted by the store's DOM write endpoints.
type WriteRequest struct {
	Nodes []WriteNode `json:"nodes"`
}

// WriteNode maps a translated node back onto the write schema. Text payloads
// are flat strings on write.
type WriteNode struct {
	NodeID            string          `json:"nodeId"`
	Text              string          `json:"text,omitempty"`
	PropertyOverrides []WriteOverride `json:"propertyOverrides,omitempty"`
}

// WriteOverride is the write-schema form of a property override.
type WriteOverride struct {
	PropertyID string `json:"propertyId"`
	Text       string `json:"text"`
}

// PreservedTerms are multi-word brand and product names that stay in the
// source language regardless of target locale.
var PreservedTerms = []string{
	"P2P",
	"MT5",
	"Deriv X",
	"Deriv cTrader",
	"SmartTrader",
	"Deriv Trader",
	"Deriv GO",
	"Deriv Bot",
	"Binary Bot",
}

// BrandPrefix is the lead token whose immediately following word is kept in
// the source language by contextual judgement ("Deriv Blog", "Deriv Life").
const BrandPrefix = "Deriv"
