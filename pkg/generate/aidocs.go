package generate

import (
	"fmt"
	"strings"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// The AI-context generators share their section builders and differ only in
// verbosity and framing. Sections are always assembled tokens first, then
// components, then guidelines, so budget truncation (truncate.go) eats the
// least critical tail first.

// usageGuidelines is the closing section of every AI-context doc.
var usageGuidelines = []string{
	"Reference tokens through their CSS variables; never hardcode raw values.",
	"Token paths (e.g. Color/Primary/500) are the canonical identifiers when linking components to tokens.",
	"Use only published components; draft components are not part of the public design system.",
	"Respect component prop types and allowed values exactly as listed.",
	"Spacing, radius, and breakpoint values come from the token scale; do not invent intermediate values.",
}

// tokenGroups returns non-empty category groups in the fixed emission order.
func tokenGroups(in Input) []struct {
	category catalog.Category
	tokens   []catalog.Token
} {
	grouped := catalog.GroupByCategory(in.Tokens())
	var out []struct {
		category catalog.Category
		tokens   []catalog.Token
	}
	for _, cat := range catalog.CategoryOrder {
		if len(grouped[cat]) == 0 {
			continue
		}
		out = append(out, struct {
			category catalog.Category
			tokens   []catalog.Token
		}{cat, grouped[cat]})
	}
	return out
}

// propNames joins prop names for condensed component listings.
func propNames(comp catalog.Component) string {
	names := make([]string, len(comp.Props))
	for i, p := range comp.Props {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// variantNames joins variant names for condensed component listings.
func variantNames(comp catalog.Component) string {
	names := make([]string, len(comp.Variants))
	for i, v := range comp.Variants {
		names[i] = v.Name
	}
	return strings.Join(names, ", ")
}

// --- llms-txt: exhaustive reference ---

// LLMSGenerator emits LLMS.txt, the exhaustive single-file reference for
// AI assistants that can afford a large context.
type LLMSGenerator struct{}

func (g *LLMSGenerator) Format() catalog.Format { return catalog.FormatLLMSTxt }

func (g *LLMSGenerator) Generate(in Input) (*Output, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", in.Options.projectName())
	fmt.Fprintf(&b, "> Design system reference. Version %s, generated %s.\n\n",
		in.Options.version(), in.Options.GeneratedAt.UTC().Format("2006-01-02"))

	b.WriteString("## Design Tokens\n")
	groups := tokenGroups(in)
	if len(groups) == 0 {
		b.WriteString("\nNo tokens defined.\n")
	}
	for _, group := range groups {
		fmt.Fprintf(&b, "\n### %s\n\n", group.category)
		for _, tok := range group.tokens {
			fmt.Fprintf(&b, "- `%s`: %s (path: %s)", tok.CSSVariable, minifyValue(CSSValue(tok)), tok.Path)
			if tok.Description != "" {
				fmt.Fprintf(&b, " — %s", tok.Description)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n## Components\n")
	published := in.Published()
	if len(published) == 0 {
		b.WriteString("\nNo published components.\n")
	}
	for _, comp := range published {
		fmt.Fprintf(&b, "\n### %s", comp.Name)
		if comp.Category != "" {
			fmt.Fprintf(&b, " (%s)", comp.Category)
		}
		b.WriteString("\n\n")
		if comp.Description != "" {
			b.WriteString(comp.Description + "\n\n")
		}
		if len(comp.Props) > 0 {
			b.WriteString("Props:\n")
			for _, p := range comp.Props {
				fmt.Fprintf(&b, "- %s (%s)", p.Name, p.Type)
				if p.Required {
					b.WriteString(" [required]")
				}
				if p.Default != "" {
					fmt.Fprintf(&b, " default=%s", p.Default)
				}
				if len(p.AllowedValues) > 0 {
					fmt.Fprintf(&b, " values: %s", strings.Join(p.AllowedValues, " | "))
				}
				if p.Description != "" {
					fmt.Fprintf(&b, " — %s", p.Description)
				}
				b.WriteString("\n")
			}
		}
		if len(comp.Variants) > 0 {
			fmt.Fprintf(&b, "Variants: %s\n", variantNames(comp))
		}
		if len(comp.LinkedTokens) > 0 {
			fmt.Fprintf(&b, "Linked tokens: %s\n", strings.Join(comp.LinkedTokens, ", "))
		}
		for _, ex := range comp.Examples {
			fmt.Fprintf(&b, "\nExample — %s:\n\n```\n%s\n```\n", ex.Title, strings.TrimRight(ex.Code, "\n"))
		}
	}

	b.WriteString("\n## Usage Guidelines\n\n")
	for _, g := range usageGuidelines {
		b.WriteString("- " + g + "\n")
	}

	res := EnforceBudget(b.String(), BudgetLLMSTxt, CutMarkdown)
	out := &Output{Files: map[string]File{"LLMS.txt": TextFile(res.Content)}}
	if res.Warning != "" {
		out.Warnings = append(out.Warnings, res.Warning)
	}
	return out, nil
}

// --- cursor-rules: ultra-condensed machine-readable rules ---

// CursorRulesGenerator emits .cursor/rules/design-system.mdc: a YAML
// frontmatter header plus one condensed line per token and component.
type CursorRulesGenerator struct{}

func (g *CursorRulesGenerator) Format() catalog.Format { return catalog.FormatCursorRules }

func (g *CursorRulesGenerator) Generate(in Input) (*Output, error) {
	var b strings.Builder

	b.WriteString("---\n")
	fmt.Fprintf(&b, "description: %s design tokens and components\n", in.Options.projectName())
	b.WriteString("globs:\n  - \"**/*.tsx\"\n  - \"**/*.css\"\n")
	b.WriteString("alwaysApply: true\n")
	b.WriteString("---\n\n")

	b.WriteString("# Tokens\n")
	for _, group := range tokenGroups(in) {
		fmt.Fprintf(&b, "%s:", group.category)
		for _, tok := range group.tokens {
			fmt.Fprintf(&b, " %s=%s;", tok.CSSVariable, minifyValue(CSSValue(tok)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n# Components\n")
	for _, comp := range in.Published() {
		fmt.Fprintf(&b, "%s", comp.Name)
		if comp.Category != "" {
			fmt.Fprintf(&b, "[%s]", comp.Category)
		}
		if len(comp.Props) > 0 {
			fmt.Fprintf(&b, " props(%s)", propNames(comp))
		}
		if len(comp.Variants) > 0 {
			fmt.Fprintf(&b, " variants(%s)", variantNames(comp))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n# Rules\n")
	for _, g := range usageGuidelines {
		b.WriteString("- " + g + "\n")
	}

	res := EnforceBudget(b.String(), BudgetCursorRules, CutMarkdown)
	out := &Output{Files: map[string]File{"design-system.mdc": TextFile(res.Content)}}
	if res.Warning != "" {
		out.Warnings = append(out.Warnings, res.Warning)
	}
	return out, nil
}

// --- claude-md: balanced markdown reference with tables ---

// ClaudeMDGenerator emits .claude/rules/design-system.md (budgeted) plus a
// components.md companion carrying the detail that does not fit the
// primary file's budget.
type ClaudeMDGenerator struct{}

func (g *ClaudeMDGenerator) Format() catalog.Format { return catalog.FormatClaudeMD }

func (g *ClaudeMDGenerator) Generate(in Input) (*Output, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", in.Options.projectName())

	b.WriteString("## Tokens\n")
	for _, group := range tokenGroups(in) {
		fmt.Fprintf(&b, "\n### %s\n\n", group.category)
		b.WriteString("| Token | Variable | Value |\n|---|---|---|\n")
		for _, tok := range group.tokens {
			fmt.Fprintf(&b, "| %s | `%s` | %s |\n", tok.Path, tok.CSSVariable, minifyValue(CSSValue(tok)))
		}
	}

	b.WriteString("\n## Components\n\n")
	published := in.Published()
	if len(published) > 0 {
		b.WriteString("| Name | Category | Props | Variants |\n|---|---|---|---|\n")
		for _, comp := range published {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				comp.Name, comp.Category, propNames(comp), variantNames(comp))
		}
		b.WriteString("\nSee components.md for props, linked tokens, and examples.\n")
	} else {
		b.WriteString("No published components.\n")
	}

	b.WriteString("\n## Usage Guidelines\n\n")
	for _, g := range usageGuidelines {
		b.WriteString("- " + g + "\n")
	}

	res := EnforceBudget(b.String(), BudgetClaudeMD, CutMarkdown)
	out := &Output{Files: map[string]File{
		"design-system.md": TextFile(res.Content),
		"components.md":    TextFile(componentsMD(published)),
	}}
	if res.Warning != "" {
		out.Warnings = append(out.Warnings, res.Warning)
	}
	return out, nil
}

// componentsMD is the unbudgeted companion reference.
func componentsMD(published []catalog.Component) string {
	var b strings.Builder
	b.WriteString("# Components\n")
	if len(published) == 0 {
		b.WriteString("\nNo published components.\n")
		return b.String()
	}
	for _, comp := range published {
		fmt.Fprintf(&b, "\n## %s\n\n", comp.Name)
		if comp.Description != "" {
			b.WriteString(comp.Description + "\n\n")
		}
		if len(comp.Props) > 0 {
			b.WriteString("| Prop | Type | Required | Default |\n|---|---|---|---|\n")
			for _, p := range comp.Props {
				required := ""
				if p.Required {
					required = "yes"
				}
				fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.Name, p.Type, required, p.Default)
			}
			b.WriteString("\n")
		}
		if len(comp.Variants) > 0 {
			fmt.Fprintf(&b, "Variants: %s\n\n", variantNames(comp))
		}
		if len(comp.LinkedTokens) > 0 {
			fmt.Fprintf(&b, "Linked tokens: `%s`\n\n", strings.Join(comp.LinkedTokens, "`, `"))
		}
		for _, ex := range comp.Examples {
			fmt.Fprintf(&b, "### %s\n\n```\n%s\n```\n\n", ex.Title, strings.TrimRight(ex.Code, "\n"))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// --- project-knowledge: condensed plain-text reference ---

// ProjectKnowledgeGenerator emits project-knowledge.txt for assistants
// that take a small plain-text context document.
type ProjectKnowledgeGenerator struct{}

func (g *ProjectKnowledgeGenerator) Format() catalog.Format { return catalog.FormatProjectKnowledge }

func (g *ProjectKnowledgeGenerator) Generate(in Input) (*Output, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s — design system reference\n\n", strings.ToUpper(in.Options.projectName()))

	b.WriteString("TOKENS\n")
	for _, group := range tokenGroups(in) {
		fmt.Fprintf(&b, "%s:", group.category)
		for _, tok := range group.tokens {
			fmt.Fprintf(&b, " %s=%s", tok.CSSVariable, minifyValue(CSSValue(tok)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nCOMPONENTS\n")
	for _, comp := range in.Published() {
		fmt.Fprintf(&b, "%s", comp.Name)
		if comp.Category != "" {
			fmt.Fprintf(&b, " (%s)", comp.Category)
		}
		if len(comp.Props) > 0 {
			fmt.Fprintf(&b, ": props=%s", propNames(comp))
		}
		if len(comp.Variants) > 0 {
			fmt.Fprintf(&b, "; variants=%s", variantNames(comp))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nGUIDELINES\n")
	for _, g := range usageGuidelines {
		b.WriteString("- " + g + "\n")
	}

	res := EnforceBudget(b.String(), BudgetProjectKnowledge, CutPlain)
	out := &Output{Files: map[string]File{"project-knowledge.txt": TextFile(res.Content)}}
	if res.Warning != "" {
		out.Warnings = append(out.Warnings, res.Warning)
	}
	return out, nil
}
