package cms

import "github.com/fluxlocale/weft"

// Project builds a translation projection from an item's field data. Field
// names serve as node identities; only configured translate-fields with
// non-empty string values appear, in the configuration's field order so the
// flat-text surface stays positionally stable across runs.
func Project(fieldData map[string]any, cfg CollectionConfig) weft.Projection {
	var p weft.Projection
	for _, field := range cfg.Translate {
		value, ok := fieldData[field].(string)
		if !ok || value == "" {
			continue
		}
		p.Nodes = append(p.Nodes, weft.ProjectedNode{NodeID: field, Text: value})
	}
	return p
}

// Merge folds a translation result back into a complete field data map for
// the locale patch: translated fields take their new values, every other
// field passes through unchanged. The input map is not mutated.
func Merge(fieldData map[string]any, result *weft.TranslationResult) map[string]any {
	out := make(map[string]any, len(fieldData))
	for k, v := range fieldData {
		out[k] = v
	}
	if result == nil {
		return out
	}
	for _, n := range result.Nodes {
		if _, exists := out[n.NodeID]; exists && n.Text != "" {
			out[n.NodeID] = n.Text
		}
	}
	return out
}

// Identifier returns the item's display identifier per the configuration,
// falling back to the slug and then to the item id.
func Identifier(fieldData map[string]any, cfg CollectionConfig, itemID string) string {
	if v, ok := fieldData[cfg.ItemIdentifier].(string); ok && v != "" {
		return v
	}
	if v, ok := fieldData["slug"].(string); ok && v != "" {
		return v
	}
	return itemID
}
