package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
	"github.com/KeleWarg/design-theme-library/pkg/generate"
	"github.com/KeleWarg/design-theme-library/pkg/store"
)

var (
	listTokenTheme      string
	listTokenCategory   string
	listComponentStatus string
)

func init() {
	listTokensCmd.Flags().StringVar(&listTokenTheme, "theme", "", "restrict to one theme (slug or id)")
	listTokensCmd.Flags().StringVar(&listTokenCategory, "category", "", "restrict to one category")
	listComponentsCmd.Flags().StringVar(&listComponentStatus, "status", "", "filter by status (draft or published)")

	listCmd.AddCommand(listThemesCmd, listTokensCmd, listComponentsCmd)
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List themes, tokens, or components in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var listThemesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List themes with token counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeListThemes(cmd.Context())
	},
}

var listTokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List design tokens with their CSS variables and values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeListTokens(cmd.Context())
	},
}

var listComponentsCmd = &cobra.Command{
	Use:   "components",
	Short: "List components with status and category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeListComponents(cmd.Context())
	},
}

func newTable() *tablewriter.Table {
	cnf := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}
	return tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(cnf))
}

func executeListThemes(ctx context.Context) error {
	st, err := store.Open(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer st.Close()

	summaries, err := st.ListThemes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list themes: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No themes yet. Use 'themelib ingest <file>' to add one.")
		return nil
	}

	table := newTable()
	table.Header("Name", "Slug", "Tokens", "ID")
	for _, s := range summaries {
		table.Append(s.Name, s.Slug, fmt.Sprintf("%d", s.TokenCount), s.ID)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal: %d themes\n", len(summaries))
	return nil
}

func executeListTokens(ctx context.Context) error {
	st, err := store.Open(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer st.Close()

	themes, err := selectThemes(ctx, st)
	if err != nil {
		return err
	}

	table := newTable()
	table.Header("Theme", "Path", "Category", "Variable", "Value")

	total := 0
	for _, theme := range themes {
		tokens := append([]catalog.Token(nil), theme.Tokens...)
		catalog.SortTokens(tokens)
		for _, tok := range tokens {
			if listTokenCategory != "" && !strings.EqualFold(string(tok.Category), listTokenCategory) {
				continue
			}
			value := strings.ReplaceAll(generate.CSSValue(tok), ",\n", ",")
			table.Append(theme.Name, tok.Path, string(tok.Category), tok.CSSVariable, value)
			total++
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal: %d tokens\n", total)
	return nil
}

func executeListComponents(ctx context.Context) error {
	st, err := store.Open(dbPath())
	if err != nil {
		return fmt.Errorf("failed to open library database: %w", err)
	}
	defer st.Close()

	comps, err := st.ListComponents(ctx, listComponentStatus)
	if err != nil {
		return fmt.Errorf("failed to list components: %w", err)
	}
	if len(comps) == 0 {
		fmt.Println("No components found.")
		return nil
	}

	table := newTable()
	table.Header("Name", "Slug", "Category", "Status", "Props")
	for _, c := range comps {
		table.Append(c.Name, c.Slug, c.Category, c.Status, fmt.Sprintf("%d", len(c.Props)))
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	fmt.Printf("\nTotal: %d components\n", len(comps))
	return nil
}

// selectThemes loads either the one theme named by --theme or every theme.
func selectThemes(ctx context.Context, st *store.Store) ([]catalog.Theme, error) {
	if listTokenTheme != "" {
		theme, err := st.GetThemeBySlug(ctx, listTokenTheme)
		if err != nil {
			theme, err = st.GetTheme(ctx, listTokenTheme)
		}
		if err != nil {
			return nil, fmt.Errorf("theme not found: %s", listTokenTheme)
		}
		return []catalog.Theme{*theme}, nil
	}

	summaries, err := st.ListThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list themes: %w", err)
	}
	themes := make([]catalog.Theme, 0, len(summaries))
	for _, s := range summaries {
		theme, err := st.GetTheme(ctx, s.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load theme %s: %w", s.ID, err)
		}
		themes = append(themes, *theme)
	}
	return themes, nil
}
