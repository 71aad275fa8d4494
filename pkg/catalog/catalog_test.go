package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

func colorToken(path, hex string, order int) Token {
	segs := strings.Split(path, "/")
	return Token{
		Name:        segs[len(segs)-1],
		Path:        path,
		Category:    CategoryColor,
		Type:        "color",
		Value:       Value{Kind: KindColor, Color: &ColorValue{Hex: hex, Opacity: 1}},
		CSSVariable: CSSVariableForPath(path),
		SortOrder:   order,
	}
}

func minimalValidLibrary() *Library {
	return &Library{
		Name:    "test",
		Version: "1.0",
		Themes: []Theme{
			{
				ID:   "t1",
				Name: "Default",
				Slug: "default",
				Tokens: []Token{
					colorToken("Color/Primary/500", "#657E79", 0),
					colorToken("Color/Secondary/500", "#223344", 1),
				},
			},
		},
		Components: []Component{
			{
				ID:           "c1",
				Name:         "Button",
				Slug:         "button",
				Description:  "A clickable button",
				Category:     "actions",
				Status:       StatusPublished,
				Props:        []Prop{{Name: "variant", Type: "string"}},
				Variants:     []Variant{{Name: "primary"}},
				LinkedTokens: []string{"Color/Primary/500"},
			},
		},
	}
}

func writeTempLibrary(t *testing.T, lib *Library) string {
	t.Helper()
	data, err := json.MarshalIndent(lib, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// --- Theme.Validate() tests ---

func TestThemeValidate_Valid(t *testing.T) {
	lib := minimalValidLibrary()
	errs := lib.Themes[0].Validate()
	assert.Empty(t, errs)
}

func TestThemeValidate_EmptyName(t *testing.T) {
	lib := minimalValidLibrary()
	lib.Themes[0].Name = ""
	errs := lib.Themes[0].Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "theme name is required")
}

func TestThemeValidate_DuplicateTokenPath(t *testing.T) {
	lib := minimalValidLibrary()
	lib.Themes[0].Tokens = append(lib.Themes[0].Tokens, colorToken("Color/Primary/500", "#000000", 2))
	errs := lib.Themes[0].Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "duplicate token path")
}

func TestThemeValidate_DuplicateCSSVariable(t *testing.T) {
	lib := minimalValidLibrary()
	// Distinct paths colliding after slugification.
	extra := colorToken("Color/Primary 500", "#000000", 2)
	lib.Themes[0].Tokens = append(lib.Themes[0].Tokens, extra)
	errs := lib.Themes[0].Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "derive the same css variable")
}

func TestThemeValidate_MalformedVariable(t *testing.T) {
	lib := minimalValidLibrary()
	lib.Themes[0].Tokens[0].CSSVariable = "--Color_Primary"
	errs := lib.Themes[0].Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "malformed css variable")
}

func TestThemeValidate_CustomTypefaceNeedsURL(t *testing.T) {
	lib := minimalValidLibrary()
	lib.Themes[0].Typefaces = []Typeface{
		{Family: "Inter", Weight: 400, Source: TypefaceSourceCustom},
	}
	errs := lib.Themes[0].Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "needs a file URL")
}

// --- Component.Validate() tests ---

func TestComponentValidate_Valid(t *testing.T) {
	lib := minimalValidLibrary()
	errs := lib.Components[0].Validate()
	assert.Empty(t, errs)
}

func TestComponentValidate_InvalidStatus(t *testing.T) {
	lib := minimalValidLibrary()
	lib.Components[0].Status = "archived"
	errs := lib.Components[0].Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "invalid status")
}

func TestComponentValidate_PropMissingType(t *testing.T) {
	lib := minimalValidLibrary()
	lib.Components[0].Props = []Prop{{Name: "variant"}}
	errs := lib.Components[0].Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "type is required")
}

func TestComponentValidate_RejectsIDShapedLinkedToken(t *testing.T) {
	lib := minimalValidLibrary()
	lib.Components[0].LinkedTokens = []string{"b3c4a1de-1234-4abc-9def-001122334455"}
	errs := lib.Components[0].Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "must be token paths")
}

// --- Library.Validate() tests ---

func TestLibraryValidate_Valid(t *testing.T) {
	lib := minimalValidLibrary()
	assert.Empty(t, lib.Validate())
}

func TestLibraryValidate_UnresolvedLinkedToken(t *testing.T) {
	lib := minimalValidLibrary()
	lib.Components[0].LinkedTokens = []string{"Color/Missing"}
	errs := lib.Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "does not match any token path")
}

func TestLibraryValidate_DuplicateThemeSlug(t *testing.T) {
	lib := minimalValidLibrary()
	dup := lib.Themes[0]
	dup.ID = "t2"
	dup.Tokens = nil
	lib.Themes = append(lib.Themes, dup)
	errs := lib.Validate()
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "duplicate theme slug")
}

// --- BuildIndex() tests ---

func TestBuildIndex_Lookups(t *testing.T) {
	lib := minimalValidLibrary()
	idx := lib.BuildIndex()

	require.Contains(t, idx.ThemeBySlug, "default")
	tok, ok := idx.TokenByPath["Color/Primary/500"]
	require.True(t, ok)
	assert.Equal(t, "--color-primary-500", tok.CSSVariable)
	assert.Len(t, idx.TokensByCategory[CategoryColor], 2)
	require.Contains(t, idx.ComponentBySlug, "button")
}

// --- LoadFromFile / LoadFromBytes tests ---

func TestLoadFromFile_RoundTrip(t *testing.T) {
	lib := minimalValidLibrary()
	path := writeTempLibrary(t, lib)

	loaded, idx, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NotNil(t, idx)
	assert.Equal(t, "test", loaded.Name)
	require.Len(t, loaded.Themes, 1)

	tok, ok := idx.TokenByPath["Color/Primary/500"]
	require.True(t, ok)
	require.Equal(t, KindColor, tok.Value.Kind)
	assert.Equal(t, "#657E79", tok.Value.Color.Hex)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read library file")
}

func TestLoadFromBytes_InvalidJSON(t *testing.T) {
	_, _, err := LoadFromBytes([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse library JSON")
}

func TestLoadFromBytes_ValidationFailure(t *testing.T) {
	lib := minimalValidLibrary()
	lib.Components[0].Status = "bogus"
	data, err := json.Marshal(lib)
	require.NoError(t, err)

	_, _, err = LoadFromBytes(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "library validation failed")
}
