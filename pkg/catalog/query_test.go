package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helpers ---

func queryFixture() *QueryService {
	lib := &Library{
		Name:    "test",
		Version: "1.0",
		Themes: []Theme{
			{
				ID:   "t1",
				Name: "Default",
				Slug: "default",
				Tokens: []Token{
					colorToken("Color/Primary/500", "#657E79", 1),
					colorToken("Color/Accent", "#FF0000", 0),
					{
						Name:        "md",
						Path:        "Spacing/md",
						Category:    CategorySpacing,
						Type:        "dimension",
						Value:       Value{Kind: KindDimension, Dimension: &DimensionValue{Value: 16, Unit: "px"}},
						CSSVariable: "--spacing-md",
						SortOrder:   2,
						Description: "Base layout gap",
					},
				},
			},
		},
		Components: []Component{
			{
				ID: "c1", Name: "Button", Slug: "button", Category: "actions",
				Status: StatusPublished, Description: "A clickable button",
				LinkedTokens: []string{"Color/Primary/500"},
			},
			{
				ID: "c2", Name: "Dialog", Slug: "dialog", Category: "overlay",
				Status: StatusDraft, Description: "A modal dialog overlay",
			},
		},
	}
	return NewQueryService(lib, lib.BuildIndex())
}

// --- themes ---

func TestGetTheme_BySlugAndID(t *testing.T) {
	q := queryFixture()

	th, ok := q.GetTheme("default")
	require.True(t, ok)
	assert.Equal(t, "Default", th.Name)

	th, ok = q.GetTheme("t1")
	require.True(t, ok)
	assert.Equal(t, "default", th.Slug)

	_, ok = q.GetTheme("missing")
	assert.False(t, ok)
}

// --- tokens ---

func TestGetTokens_AllOrderedByCategoryThenSort(t *testing.T) {
	q := queryFixture()
	tokens := q.GetTokens("")
	require.Len(t, tokens, 3)
	assert.Equal(t, "Color/Accent", tokens[0].Path)
	assert.Equal(t, "Color/Primary/500", tokens[1].Path)
	assert.Equal(t, "Spacing/md", tokens[2].Path)
}

func TestGetTokens_ByCategory(t *testing.T) {
	q := queryFixture()
	tokens := q.GetTokens("color")
	assert.Len(t, tokens, 2)
	assert.Empty(t, q.GetTokens("shadow"))
}

func TestGetTokenByPath(t *testing.T) {
	q := queryFixture()
	tok, ok := q.GetTokenByPath("Spacing/md")
	require.True(t, ok)
	assert.Equal(t, "--spacing-md", tok.CSSVariable)

	_, ok = q.GetTokenByPath("Spacing/xl")
	assert.False(t, ok)
}

// --- components ---

func TestListComponents_NoFilter(t *testing.T) {
	q := queryFixture()
	assert.Len(t, q.ListComponents("", ""), 2)
}

func TestListComponents_ByCategory(t *testing.T) {
	q := queryFixture()
	comps := q.ListComponents("actions", "")
	require.Len(t, comps, 1)
	assert.Equal(t, "Button", comps[0].Name)
}

func TestListComponents_ByKeyword(t *testing.T) {
	q := queryFixture()
	comps := q.ListComponents("", "modal")
	require.Len(t, comps, 1)
	assert.Equal(t, "Dialog", comps[0].Name)
}

func TestGetComponent_SlugThenName(t *testing.T) {
	q := queryFixture()

	comp, ok := q.GetComponent("button")
	require.True(t, ok)
	assert.Equal(t, "Button", comp.Name)

	comp, ok = q.GetComponent("Dialog")
	require.True(t, ok)
	assert.Equal(t, "dialog", comp.Slug)

	_, ok = q.GetComponent("missing")
	assert.False(t, ok)
}

func TestLinkedTokens_ResolvesPaths(t *testing.T) {
	q := queryFixture()
	comp, ok := q.GetComponent("button")
	require.True(t, ok)

	linked := q.LinkedTokens(comp)
	require.Len(t, linked, 1)
	assert.Equal(t, "--color-primary-500", linked[0].CSSVariable)
}

// --- search ---

func TestSearchTokens_ByPath(t *testing.T) {
	q := queryFixture()
	results := q.SearchTokens("primary")
	require.Len(t, results, 1)
	assert.Equal(t, "Color/Primary/500", results[0].Token.Path)
	assert.Equal(t, "path", results[0].MatchReason)
}

func TestSearchTokens_ByDescription(t *testing.T) {
	q := queryFixture()
	results := q.SearchTokens("layout gap")
	require.Len(t, results, 1)
	assert.Equal(t, "description", results[0].MatchReason)
}

func TestSearchTokens_Empty(t *testing.T) {
	q := queryFixture()
	assert.Nil(t, q.SearchTokens(""))
	assert.Empty(t, q.SearchTokens("zzz_nonexistent"))
}

// --- filters ---

func TestPublishedComponents(t *testing.T) {
	q := queryFixture()
	pub := PublishedComponents(q.Library.Components)
	require.Len(t, pub, 1)
	assert.Equal(t, "Button", pub[0].Name)
}

func TestGroupByCategory(t *testing.T) {
	q := queryFixture()
	groups := GroupByCategory(q.GetTokens(""))
	assert.Len(t, groups[CategoryColor], 2)
	assert.Len(t, groups[CategorySpacing], 1)
}
