// Package ingest turns design-tool token exports into canonical catalog
// tokens: format detection, normalization, and source discovery.
package ingest

import "encoding/json"

// Format classifies a token-export document shape.
type Format string

const (
	// FormatDTCG is the W3C design-tokens community-group shape: nested
	// groups whose leaves carry $type/$value.
	FormatDTCG Format = "dtcg-variables"

	// FormatStyleDictionary is the design-tool variables export: a
	// top-level collections array with modes and variables.
	FormatStyleDictionary Format = "style-dictionary"

	// FormatFlat is the loose legacy shape: nested groups whose leaves
	// carry a bare "value" key.
	FormatFlat Format = "flat"

	// FormatUnknown is returned for anything unrecognized.
	FormatUnknown Format = "unknown"
)

// Detect classifies an arbitrary parsed JSON value into one of the known
// token-export shapes. It is pure and total: unrecognized shapes return
// FormatUnknown, never an error. Detection order is fixed: collections
// array first, then $type/$value leaves, then bare value leaves.
func Detect(doc any) Format {
	root, ok := doc.(map[string]any)
	if !ok {
		return FormatUnknown
	}

	if isStyleDictionary(root) {
		return FormatStyleDictionary
	}
	if hasLeafWithKeys(root, "$value", 0) {
		return FormatDTCG
	}
	if hasLeafWithKeys(root, "value", 0) {
		return FormatFlat
	}
	return FormatUnknown
}

// DetectBytes decodes raw JSON and classifies it. Malformed JSON is an
// unrecognized shape, not an error.
func DetectBytes(data []byte) Format {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return FormatUnknown
	}
	return Detect(doc)
}

// isStyleDictionary reports whether the root carries a collections array
// whose entries have modes or variables.
func isStyleDictionary(root map[string]any) bool {
	collections, ok := root["collections"].([]any)
	if !ok {
		return false
	}
	for _, entry := range collections {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := m["modes"]; ok {
			return true
		}
		if _, ok := m["variables"]; ok {
			return true
		}
	}
	return false
}

// maxDetectDepth bounds the leaf probe so detection stays total even on
// pathological self-referencing decodes.
const maxDetectDepth = 32

// hasLeafWithKeys walks nested objects looking for any map that carries the
// given key, which marks it as a token leaf.
func hasLeafWithKeys(node map[string]any, key string, depth int) bool {
	if depth > maxDetectDepth {
		return false
	}
	if _, ok := node[key]; ok {
		return true
	}
	for _, v := range node {
		if child, ok := v.(map[string]any); ok {
			if hasLeafWithKeys(child, key, depth+1) {
				return true
			}
		}
	}
	return false
}
