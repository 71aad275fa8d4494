package ingest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// Result is the outcome of normalizing one export document. Errors holds
// per-leaf parse failures; they never abort the walk, so Tokens carries
// everything that parsed.
type Result struct {
	Tokens   []catalog.Token `json:"tokens"`
	Errors   []string        `json:"errors"`
	Metadata Metadata        `json:"metadata"`
}

// Metadata summarizes a normalization pass.
type Metadata struct {
	Format      Format         `json:"format"`
	TotalParsed int            `json:"total_parsed"`
	Categories  map[string]int `json:"categories"`
}

// Normalize detects the format of doc and walks it into a flat token list.
// Unknown formats produce an empty result with a single error entry.
func Normalize(doc any) *Result {
	res := &Result{
		Errors:   []string{},
		Metadata: Metadata{Categories: map[string]int{}},
	}
	res.Metadata.Format = Detect(doc)

	switch res.Metadata.Format {
	case FormatDTCG:
		walkDTCG(res, doc.(map[string]any), nil, "")
	case FormatFlat:
		walkFlat(res, doc.(map[string]any), nil)
	case FormatStyleDictionary:
		walkStyleDictionary(res, doc.(map[string]any))
	default:
		res.Errors = append(res.Errors, "unrecognized token document shape")
	}

	res.Metadata.TotalParsed = len(res.Tokens)
	return res
}

// NormalizeBytes decodes raw JSON and normalizes it.
func NormalizeBytes(data []byte) (*Result, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse token JSON: %w", err)
	}
	return Normalize(doc), nil
}

// appendToken finishes a leaf: it derives category, variable, and sort order,
// parses the value, and records either the token or a per-leaf error.
func appendToken(res *Result, path []string, typ string, rawValue any, description string) {
	tokenPath := strings.Join(path, "/")
	category := catalog.CategoryForPath(tokenPath)

	value, err := catalog.ParseValue(category, typ, rawValue)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", tokenPath, err))
		return
	}

	res.Tokens = append(res.Tokens, catalog.Token{
		Name:        path[len(path)-1],
		Path:        tokenPath,
		Category:    category,
		Type:        typ,
		Value:       value,
		CSSVariable: catalog.CSSVariableForPath(tokenPath),
		SortOrder:   len(res.Tokens),
		Description: description,
	})
	res.Metadata.Categories[string(category)]++
}

// sortedKeys returns map keys in lexical order so walk order (and therefore
// SortOrder) is deterministic across runs.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- dtcg-variables ---

// walkDTCG descends nested groups. A map carrying $value is a leaf; its
// $type, or the nearest group-level $type above it, tags the value.
func walkDTCG(res *Result, node map[string]any, path []string, inheritedType string) {
	if raw, ok := node["$value"]; ok {
		if len(path) == 0 {
			res.Errors = append(res.Errors, "$value at document root has no path")
			return
		}
		typ := inheritedType
		if t, ok := node["$type"].(string); ok {
			typ = t
		}
		description, _ := node["$description"].(string)
		appendToken(res, path, typ, raw, description)
		return
	}

	// Group-level $type applies to every descendant without its own tag.
	if t, ok := node["$type"].(string); ok {
		inheritedType = t
	}

	for _, key := range sortedKeys(node) {
		if strings.HasPrefix(key, "$") {
			continue
		}
		child, ok := node[key].(map[string]any)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: expected a group or token, got %T", strings.Join(append(path, key), "/"), node[key]))
			continue
		}
		walkDTCG(res, child, append(path, key), inheritedType)
	}
}

// --- flat ---

// walkFlat descends nested groups whose leaves carry a bare value key.
// The type tag comes from an optional sibling "type" key, or is inferred
// from the value's shape.
func walkFlat(res *Result, node map[string]any, path []string) {
	if raw, ok := node["value"]; ok {
		if len(path) == 0 {
			res.Errors = append(res.Errors, "value at document root has no path")
			return
		}
		typ, _ := node["type"].(string)
		if typ == "" {
			typ = inferFlatType(strings.Join(path, "/"), raw)
		}
		description, _ := node["description"].(string)
		if description == "" {
			description, _ = node["comment"].(string)
		}
		appendToken(res, path, typ, raw, description)
		return
	}

	for _, key := range sortedKeys(node) {
		child, ok := node[key].(map[string]any)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: expected a group or token, got %T", strings.Join(append(path, key), "/"), node[key]))
			continue
		}
		walkFlat(res, child, append(path, key))
	}
}

// inferFlatType guesses a type tag for untagged flat leaves. The path's
// category does most of the work; the value shape settles colors vs strings.
func inferFlatType(path string, raw any) string {
	switch v := raw.(type) {
	case string:
		if strings.HasPrefix(v, "#") || strings.HasPrefix(v, "rgb") || strings.HasPrefix(v, "hsl") {
			return "color"
		}
	case float64:
		return "number"
	}

	switch catalog.CategoryForPath(path) {
	case catalog.CategoryColor:
		return "color"
	case catalog.CategorySpacing, catalog.CategoryRadius, catalog.CategoryGrid:
		return "dimension"
	case catalog.CategoryShadow:
		return "shadow"
	}
	return ""
}

// --- style-dictionary ---

// walkStyleDictionary reads a design-tool variables export: a collections
// array where each collection carries modes (or bare variables). Only the
// first mode of each collection is normalized; skipped modes are reported
// in Errors so callers see them, rather than silently merging.
func walkStyleDictionary(res *Result, root map[string]any) {
	collections, _ := root["collections"].([]any)
	for i, entry := range collections {
		coll, ok := entry.(map[string]any)
		if !ok {
			res.Errors = append(res.Errors, fmt.Sprintf("collections[%d]: expected an object, got %T", i, entry))
			continue
		}
		collName, _ := coll["name"].(string)
		if collName == "" {
			collName = fmt.Sprintf("Collection %d", i+1)
		}

		variables, ok := coll["variables"].([]any)
		if !ok {
			modes, _ := coll["modes"].([]any)
			if len(modes) == 0 {
				res.Errors = append(res.Errors, fmt.Sprintf("collection %q: no modes or variables", collName))
				continue
			}
			first, ok := modes[0].(map[string]any)
			if !ok {
				res.Errors = append(res.Errors, fmt.Sprintf("collection %q: malformed mode entry", collName))
				continue
			}
			variables, _ = first["variables"].([]any)
			for _, skipped := range modes[1:] {
				if m, ok := skipped.(map[string]any); ok {
					name, _ := m["name"].(string)
					res.Errors = append(res.Errors, fmt.Sprintf("collection %q: mode %q skipped (only the default mode is normalized)", collName, name))
				}
			}
		}

		for j, v := range variables {
			variable, ok := v.(map[string]any)
			if !ok {
				res.Errors = append(res.Errors, fmt.Sprintf("collection %q variables[%d]: expected an object, got %T", collName, j, v))
				continue
			}
			name, _ := variable["name"].(string)
			if name == "" {
				res.Errors = append(res.Errors, fmt.Sprintf("collection %q variables[%d]: missing name", collName, j))
				continue
			}
			typ, _ := variable["type"].(string)
			description, _ := variable["description"].(string)

			path := append([]string{collName}, strings.Split(strings.Trim(name, "/"), "/")...)
			appendToken(res, path, typ, variable["value"], description)
		}
	}
}
