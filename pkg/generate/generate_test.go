package generate

import (
	"fmt"
	"time"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// --- shared fixtures ---

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixtureOptions() Options {
	return Options{
		ProjectName: "Acme DS",
		Version:     "1.2.0",
		GeneratedAt: fixedTime,
	}
}

func fixtureInput() Input {
	return Input{
		Themes: []catalog.Theme{
			{
				ID:   "t1",
				Name: "Default",
				Slug: "default",
				Tokens: []catalog.Token{
					{
						Name: "500", Path: "Color/Primary/500", Category: catalog.CategoryColor,
						Type: "color", CSSVariable: "--color-primary-500", SortOrder: 0,
						Value: catalog.Value{Kind: catalog.KindColor, Color: &catalog.ColorValue{Hex: "#657E79", Opacity: 1}},
					},
					{
						Name: "overlay", Path: "Color/Overlay", Category: catalog.CategoryColor,
						Type: "color", CSSVariable: "--color-overlay", SortOrder: 1,
						Value: catalog.Value{Kind: catalog.KindColor, Color: &catalog.ColorValue{Hex: "#000000", Opacity: 0.5}},
					},
					{
						Name: "md", Path: "Spacing/md", Category: catalog.CategorySpacing,
						Type: "dimension", CSSVariable: "--spacing-md", SortOrder: 2,
						Value: catalog.Value{Kind: catalog.KindDimension, Dimension: &catalog.DimensionValue{Value: 16, Unit: "px"}},
					},
					{
						Name: "Heading 1", Path: "Typography/Heading 1", Category: catalog.CategoryTypography,
						Type: "typography", CSSVariable: "--typography-heading-1", SortOrder: 3,
						Value: catalog.Value{Kind: catalog.KindTypography, Typography: &catalog.TypographyValue{
							FontFamily: "Inter",
							FontSize:   catalog.DimensionValue{Value: 32, Unit: "px"},
							FontWeight: "700",
							LineHeight: "1.2",
						}},
					},
					{
						Name: "Elevation 1", Path: "Shadow/Elevation 1", Category: catalog.CategoryShadow,
						Type: "shadow", CSSVariable: "--shadow-elevation-1", SortOrder: 4,
						Value: catalog.Value{Kind: catalog.KindShadow, Shadow: []catalog.ShadowLayer{
							{X: "0px", Y: "2px", Blur: "4px", Spread: "0px", Color: "rgba(0,0,0,0.2)"},
							{X: "0px", Y: "8px", Blur: "16px", Spread: "0px", Color: "rgba(0,0,0,0.1)"},
						}},
					},
					{
						Name: "sm", Path: "Radius/sm", Category: catalog.CategoryRadius,
						Type: "dimension", CSSVariable: "--radius-sm", SortOrder: 5,
						Value: catalog.Value{Kind: catalog.KindDimension, Dimension: &catalog.DimensionValue{Value: 4, Unit: "px"}},
					},
				},
				Typefaces: []catalog.Typeface{
					{Family: "Inter", Weight: 400, Source: catalog.TypefaceSourceGoogle},
					{Family: "Inter", Weight: 700, Source: catalog.TypefaceSourceGoogle},
					{Family: "Acme Sans", Weight: 500, Style: "normal", Source: catalog.TypefaceSourceCustom, URL: "https://assets.acme.test/fonts/acme-sans-500.woff2"},
				},
			},
		},
		Components: []catalog.Component{
			{
				ID: "c1", Name: "Button", Slug: "button", Category: "actions",
				Status:      catalog.StatusPublished,
				Description: "A clickable button",
				Props: []catalog.Prop{
					{Name: "variant", Type: "string", AllowedValues: []string{"primary", "ghost"}},
					{Name: "size", Type: "string", Default: "md"},
				},
				Variants:     []catalog.Variant{{Name: "primary"}, {Name: "ghost"}},
				LinkedTokens: []string{"Color/Primary/500"},
				Examples:     []catalog.Example{{Title: "Basic", Code: "<Button>Click</Button>"}},
			},
			{
				ID: "c2", Name: "Banner", Slug: "banner", Category: "feedback",
				Status: catalog.StatusDraft, Description: "Work in progress",
			},
		},
		Options: fixtureOptions(),
	}
}

func emptyInput() Input {
	return Input{Options: fixtureOptions()}
}

// hugeInput builds an arbitrarily large snapshot for budget tests.
func hugeInput(tokens, components int) Input {
	in := Input{Options: fixtureOptions()}
	theme := catalog.Theme{ID: "t1", Name: "Big", Slug: "big"}
	for i := 0; i < tokens; i++ {
		path := fmt.Sprintf("Color/Scale/%04d", i)
		theme.Tokens = append(theme.Tokens, catalog.Token{
			Name: fmt.Sprintf("%04d", i), Path: path, Category: catalog.CategoryColor,
			Type: "color", CSSVariable: catalog.CSSVariableForPath(path), SortOrder: i,
			Value: catalog.Value{Kind: catalog.KindColor, Color: &catalog.ColorValue{Hex: "#123456", Opacity: 1}},
		})
	}
	in.Themes = []catalog.Theme{theme}
	for i := 0; i < components; i++ {
		in.Components = append(in.Components, catalog.Component{
			Name: fmt.Sprintf("Widget%04d", i), Slug: fmt.Sprintf("widget-%04d", i),
			Category: "widgets", Status: catalog.StatusPublished,
			Props: []catalog.Prop{{Name: "variant", Type: "string"}},
		})
	}
	return in
}
