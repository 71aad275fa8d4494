// Package export assembles complete theme packages: it resolves theme and
// component records through a Fetcher, fans the format generators out across
// a bounded worker pool, and merges their outputs into one flat file map
// with fixed destination prefixes.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
	"github.com/KeleWarg/design-theme-library/pkg/generate"
	"github.com/KeleWarg/design-theme-library/pkg/util"
)

// Fetcher resolves record ids into full snapshots. pkg/store implements it
// over SQLite; tests use in-memory fakes.
type Fetcher interface {
	GetTheme(ctx context.Context, id string) (*catalog.Theme, error)
	GetComponent(ctx context.Context, id string) (*catalog.Component, error)
}

// Request describes one package build.
type Request struct {
	ThemeIDs     []string         `json:"theme_ids"`
	ComponentIDs []string         `json:"component_ids"`
	Formats      []string         `json:"formats"`
	Options      generate.Options `json:"options"`
}

// Result is the assembled package. Keys are POSIX-relative paths. Errors
// holds per-format and per-record failures; the package is still usable
// when Errors is non-empty.
type Result struct {
	Files     map[string]generate.File
	FileCount int
	Errors    []string
	Warnings  []string
}

// Builder builds packages against a Fetcher.
type Builder struct {
	fetcher  Fetcher
	logger   *slog.Logger
	poolSize int

	// forFormat resolves formats to generators; swapped in tests.
	forFormat func(catalog.Format) (generate.Generator, bool)
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the builder's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithPoolSize overrides the generator worker-pool size.
func WithPoolSize(n int) Option {
	return func(b *Builder) { b.poolSize = n }
}

// NewBuilder creates a Builder.
func NewBuilder(fetcher Fetcher, opts ...Option) *Builder {
	b := &Builder{
		fetcher:   fetcher,
		logger:    slog.Default(),
		poolSize:  util.GetOptimalPoolSize(),
		forFormat: generate.ForFormat,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// prefixFor maps a generator format to its destination directory within the
// package. Formats without a prefix land at the package root.
func prefixFor(f catalog.Format) string {
	switch f {
	case catalog.FormatCSS, catalog.FormatSCSS, catalog.FormatJSON, catalog.FormatTailwind:
		return "dist/"
	case catalog.FormatCursorRules:
		return ".cursor/rules/"
	case catalog.FormatClaudeMD:
		return ".claude/rules/"
	case catalog.FormatMCPServer:
		return "mcp-server/"
	case catalog.FormatClaudeSkill:
		return "skill/"
	default:
		return ""
	}
}

// generatorRun is one generator's outcome, written to its own slot during
// the fan-out so no map is shared while generators run.
type generatorRun struct {
	format catalog.Format
	output *generate.Output
	err    error
}

// BuildPackage resolves the request's records, runs the requested
// generators, and merges everything into one package. It returns an error
// only when the always-required files (LLMS.txt, package.json, README.md)
// cannot be produced; every other failure degrades to Result.Errors.
func (b *Builder) BuildPackage(ctx context.Context, req Request) (*Result, error) {
	res := &Result{Files: map[string]generate.File{}}

	formats, unknown := expandFormats(req.Formats)
	for _, id := range unknown {
		res.Errors = append(res.Errors, fmt.Sprintf("unknown format %q", id))
		b.logger.Warn("unknown format requested", "format", id)
	}

	input := b.resolve(ctx, req, res)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runs := b.runGenerators(ctx, formats, input)

	for _, run := range runs {
		if run.err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", run.format, run.err))
			b.logger.Warn("generator failed", "format", run.format, "error", run.err)
			continue
		}
		res.Warnings = append(res.Warnings, run.output.Warnings...)
		prefix := prefixFor(run.format)
		for name, file := range run.output.Files {
			key := prefix + name
			if _, exists := res.Files[key]; exists {
				res.Errors = append(res.Errors, fmt.Sprintf("%s: duplicate package path %q", run.format, key))
				continue
			}
			res.Files[key] = file
		}
	}

	b.addFontAssets(input, res)
	b.addComponentCode(input, res)

	if _, ok := res.Files["LLMS.txt"]; !ok {
		return nil, fmt.Errorf("build package: required file LLMS.txt could not be generated")
	}
	if err := b.addManifest(req, formats, input, res); err != nil {
		return nil, fmt.Errorf("build package: %w", err)
	}
	b.addReadme(input, res)

	res.FileCount = len(res.Files)
	b.logger.Info("package built",
		"files", res.FileCount,
		"formats", len(formats),
		"errors", len(res.Errors))
	return res, nil
}

// expandFormats parses the requested format ids, expanding full-package
// (and its "all" alias) to every concrete format. LLMS.txt is mandatory in
// every package, so llms-txt is always included. Empty means full package.
// Unrecognized ids are returned separately; the build continues with the
// formats that parsed.
func expandFormats(ids []string) ([]catalog.Format, []string) {
	if len(ids) == 0 {
		return catalog.AllFormats(), nil
	}

	seen := make(map[catalog.Format]bool)
	var formats []catalog.Format
	var unknown []string
	add := func(f catalog.Format) {
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}

	full := false
	for _, id := range ids {
		f, ok := catalog.ParseFormat(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		if f == catalog.FormatFullPackage {
			full = true
			continue
		}
		add(f)
	}
	if full {
		return catalog.AllFormats(), unknown
	}
	add(catalog.FormatLLMSTxt)
	return formats, unknown
}

// resolve fetches the requested records. Per-record failures become Result
// errors; the build continues with whatever resolved.
func (b *Builder) resolve(ctx context.Context, req Request, res *Result) generate.Input {
	input := generate.Input{Options: req.Options}

	for _, id := range req.ThemeIDs {
		theme, err := b.fetcher.GetTheme(ctx, id)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("theme %s: %v", id, err))
			continue
		}
		input.Themes = append(input.Themes, *theme)
	}
	for _, id := range req.ComponentIDs {
		comp, err := b.fetcher.GetComponent(ctx, id)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("component %s: %v", id, err))
			continue
		}
		input.Components = append(input.Components, *comp)
	}
	return input
}

// runGenerators fans the generators out across a bounded pool. Each writes
// to its own slot; a panic inside a generator is recovered into that
// format's error and never takes the build down.
func (b *Builder) runGenerators(ctx context.Context, formats []catalog.Format, input generate.Input) []generatorRun {
	runs := make([]generatorRun, len(formats))

	var wg sync.WaitGroup
	sem := make(chan struct{}, b.poolSize)
	for i, f := range formats {
		runs[i].format = f
		gen, ok := b.forFormat(f)
		if !ok {
			runs[i].err = fmt.Errorf("no generator registered")
			continue
		}
		if err := ctx.Err(); err != nil {
			runs[i].err = err
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(slot *generatorRun, gen generate.Generator) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					slot.err = fmt.Errorf("generator panic: %v", r)
				}
			}()
			slot.output, slot.err = gen.Generate(input)
		}(&runs[i], gen)
	}
	wg.Wait()

	return runs
}

// addFontAssets emits dist/fonts.css plus the opaque font file references
// whenever the snapshot carries typefaces.
func (b *Builder) addFontAssets(input generate.Input, res *Result) {
	typefaces := input.Typefaces()
	if len(typefaces) == 0 {
		return
	}
	css, assets := generate.FontFaceCSS(typefaces)
	if css != "" {
		res.Files["dist/fonts.css"] = generate.TextFile(css)
	}
	for key, ref := range assets {
		ref := ref
		res.Files[key] = generate.File{Asset: &ref}
	}
}

// addComponentCode passes published component source through under
// components/. The code is opaque text; its original extension is not
// recorded, so snippets ship as .tsx, the library's component language.
func (b *Builder) addComponentCode(input generate.Input, res *Result) {
	for _, comp := range input.Published() {
		if comp.Code == "" {
			continue
		}
		slug := comp.Slug
		if slug == "" {
			slug = catalog.Slugify(comp.Name)
		}
		res.Files["components/"+slug+".tsx"] = generate.TextFile(comp.Code)
	}
}

// manifest is the root package.json describing the exported package.
type manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	GeneratedAt string   `json:"generated_at"`
	Formats     []string `json:"formats"`
	Themes      []string `json:"themes"`
	Components  []string `json:"components"`
}

func (b *Builder) addManifest(req Request, formats []catalog.Format, input generate.Input, res *Result) error {
	m := manifest{
		Name:        catalog.Slugify(projectName(req.Options)),
		Version:     version(req.Options),
		Description: fmt.Sprintf("%s design token and component package", projectName(req.Options)),
		GeneratedAt: req.Options.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Formats:     make([]string, 0, len(formats)),
		Themes:      make([]string, 0, len(input.Themes)),
		Components:  make([]string, 0, len(input.Components)),
	}
	for _, f := range formats {
		m.Formats = append(m.Formats, string(f))
	}
	for _, th := range input.Themes {
		m.Themes = append(m.Themes, th.Name)
	}
	for _, comp := range input.Components {
		m.Components = append(m.Components, comp.Name)
	}
	sort.Strings(m.Formats)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	res.Files["package.json"] = generate.TextFile(string(data) + "\n")
	return nil
}

func (b *Builder) addReadme(input generate.Input, res *Result) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", projectName(input.Options))
	fmt.Fprintf(&sb, "Generated design system package, version %s.\n\n", version(input.Options))
	sb.WriteString("## Contents\n\n")
	sb.WriteString("- `dist/` — stylesheets (CSS/SCSS), token data (JSON), Tailwind config, font-face rules\n")
	sb.WriteString("- `fonts/` — custom font files referenced by dist/fonts.css\n")
	sb.WriteString("- `components/` — published component source\n")
	sb.WriteString("- `LLMS.txt` — exhaustive AI-assistant reference\n")
	sb.WriteString("- `.cursor/rules/`, `.claude/rules/` — editor-assistant rule files\n")
	sb.WriteString("- `mcp-server/` — runnable MCP server exposing tokens and components\n")
	sb.WriteString("- `skill/` — agent skill definition\n")
	sb.WriteString("\n## Usage\n\n")
	sb.WriteString("Link `dist/theme.css` (and `dist/fonts.css` if present) into your page, ")
	sb.WriteString("then reference tokens through their CSS custom properties.\n")
	res.Files["README.md"] = generate.TextFile(sb.String())
}

func projectName(o generate.Options) string {
	if o.ProjectName == "" {
		return "Design System"
	}
	return o.ProjectName
}

func version(o generate.Options) string {
	if o.Version == "" {
		return "0.0.0"
	}
	return o.Version
}
