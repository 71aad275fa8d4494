package generate

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// ClaudeSkillGenerator emits a skill directory: SKILL.md with YAML
// frontmatter describing when to use the skill, plus a reference.md with
// the token and component listings.
type ClaudeSkillGenerator struct{}

func (g *ClaudeSkillGenerator) Format() catalog.Format { return catalog.FormatClaudeSkill }

// skillFrontmatter is the SKILL.md metadata header.
type skillFrontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

func (g *ClaudeSkillGenerator) Generate(in Input) (*Output, error) {
	fm := skillFrontmatter{
		Name: catalog.Slugify(in.Options.projectName()),
		Description: fmt.Sprintf(
			"Apply the %s design system: use its tokens for colors, spacing, and typography, and build UIs from its published components.",
			in.Options.projectName()),
	}
	meta, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("marshal skill frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(meta)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", in.Options.projectName())
	b.WriteString("Use this skill when writing or reviewing UI code for this project.\n\n")
	b.WriteString("## Workflow\n\n")
	b.WriteString("1. Look up values in reference.md before writing styles; every color, spacing step, radius, and shadow has a token.\n")
	b.WriteString("2. Reference tokens through their CSS variables (the stylesheet export defines them on `:root`).\n")
	b.WriteString("3. Compose pages from the published components listed in reference.md, honoring their prop types and variants.\n")
	b.WriteString("\n## Guidelines\n\n")
	for _, g := range usageGuidelines {
		b.WriteString("- " + g + "\n")
	}

	return &Output{Files: map[string]File{
		"SKILL.md":     TextFile(b.String()),
		"reference.md": TextFile(skillReference(in)),
	}}, nil
}

// skillReference is the unbudgeted lookup table shipped next to SKILL.md.
func skillReference(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Reference\n\n## Tokens\n", in.Options.projectName())
	for _, group := range tokenGroups(in) {
		fmt.Fprintf(&b, "\n### %s\n\n", group.category)
		b.WriteString("| Path | Variable | Value |\n|---|---|---|\n")
		for _, tok := range group.tokens {
			fmt.Fprintf(&b, "| %s | `%s` | %s |\n", tok.Path, tok.CSSVariable, minifyValue(CSSValue(tok)))
		}
	}
	b.WriteString("\n## Components\n")
	published := in.Published()
	if len(published) == 0 {
		b.WriteString("\nNo published components.\n")
		return b.String()
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
			fmt.Fprintf(&b, "Props: %s\n", propNames(comp))
		}
		if len(comp.Variants) > 0 {
			fmt.Fprintf(&b, "Variants: %s\n", variantNames(comp))
		}
	}
	return b.String()
}
