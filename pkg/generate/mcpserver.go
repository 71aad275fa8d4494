package generate

import (
	"encoding/json"
	"fmt"

	"github.com/KeleWarg/design-theme-library/pkg/catalog"
)

// MCPServerGenerator emits a ready-to-run TypeScript MCP server that
// answers token and component queries over the exported data. This is
// template instantiation parameterized only by project name, version, and
// the exported records: identical input yields byte-identical output.
type MCPServerGenerator struct{}

func (g *MCPServerGenerator) Format() catalog.Format { return catalog.FormatMCPServer }

// exported wire shapes for src/data.json.
type exportedToken struct {
	Path        string `json:"path"`
	Variable    string `json:"variable"`
	Category    string `json:"category"`
	Type        string `json:"type,omitempty"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type exportedComponent struct {
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Category     string             `json:"category,omitempty"`
	Status       string             `json:"status"`
	Description  string             `json:"description,omitempty"`
	Props        []catalog.Prop     `json:"props,omitempty"`
	Variants     []catalog.Variant  `json:"variants,omitempty"`
	LinkedTokens []string           `json:"linked_tokens,omitempty"`
	Examples     []catalog.Example  `json:"examples,omitempty"`
}

func (g *MCPServerGenerator) Generate(in Input) (*Output, error) {
	tokens := make([]exportedToken, 0, len(in.Tokens()))
	for _, tok := range in.Tokens() {
		tokens = append(tokens, exportedToken{
			Path:        tok.Path,
			Variable:    tok.CSSVariable,
			Category:    string(tok.Category),
			Type:        tok.Type,
			Value:       minifyValue(CSSValue(tok)),
			Description: tok.Description,
		})
	}

	components := make([]exportedComponent, 0, len(in.Components))
	for _, comp := range in.Components {
		components = append(components, exportedComponent{
			Name:         comp.Name,
			Slug:         comp.Slug,
			Category:     comp.Category,
			Status:       comp.Status,
			Description:  comp.Description,
			Props:        comp.Props,
			Variants:     comp.Variants,
			LinkedTokens: comp.LinkedTokens,
			Examples:     comp.Examples,
		})
	}

	data, err := json.MarshalIndent(map[string]any{
		"project":    in.Options.projectName(),
		"version":    in.Options.version(),
		"tokens":     tokens,
		"components": components,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal server data: %w", err)
	}

	slug := catalog.Slugify(in.Options.projectName())

	return &Output{Files: map[string]File{
		"package.json":            TextFile(mcpPackageJSON(slug, in.Options.version())),
		"tsconfig.json":           TextFile(mcpTSConfig),
		"src/data.json":           TextFile(string(data) + "\n"),
		"src/types.ts":            TextFile(mcpTypesTS),
		"src/index.ts":            TextFile(mcpIndexTS(in.Options.projectName())),
		"src/tools/tokens.ts":     TextFile(mcpTokenToolsTS),
		"src/tools/components.ts": TextFile(mcpComponentToolsTS),
	}}, nil
}

func mcpPackageJSON(slug, version string) string {
	return fmt.Sprintf(`{
  "name": "%s-mcp",
  "version": "%s",
  "description": "MCP server exposing design tokens and components",
  "type": "module",
  "bin": { "%s-mcp": "dist/index.js" },
  "scripts": {
    "build": "tsc",
    "start": "node dist/index.js"
  },
  "dependencies": {
    "@modelcontextprotocol/sdk": "^1.0.0",
    "zod": "^3.23.0"
  },
  "devDependencies": {
    "typescript": "^5.4.0"
  }
}
`, slug, version, slug)
}

const mcpTSConfig = `{
  "compilerOptions": {
    "target": "ES2022",
    "module": "Node16",
    "moduleResolution": "Node16",
    "outDir": "dist",
    "rootDir": "src",
    "strict": true,
    "resolveJsonModule": true,
    "esModuleInterop": true
  },
  "include": ["src/**/*"]
}
`

const mcpTypesTS = `export interface Token {
  path: string;
  variable: string;
  category: string;
  type?: string;
  value: string;
  description?: string;
}

export interface Prop {
  name: string;
  type: string;
  required?: boolean;
  default?: string;
  description?: string;
  allowed_values?: string[];
}

export interface Variant {
  name: string;
  description?: string;
  props?: Record<string, string>;
}

export interface Example {
  title: string;
  code: string;
}

export interface Component {
  name: string;
  slug: string;
  category?: string;
  status: string;
  description?: string;
  props?: Prop[];
  variants?: Variant[];
  linked_tokens?: string[];
  examples?: Example[];
}

export interface DesignData {
  project: string;
  version: string;
  tokens: Token[];
  components: Component[];
}
`

func mcpIndexTS(projectName string) string {
	return fmt.Sprintf(`import { McpServer } from "@modelcontextprotocol/sdk/server/mcp.js";
import { StdioServerTransport } from "@modelcontextprotocol/sdk/server/stdio.js";
import { registerTokenTools } from "./tools/tokens.js";
import { registerComponentTools } from "./tools/components.js";
import data from "./data.json" with { type: "json" };
import type { DesignData } from "./types.js";

const designData = data as DesignData;

const server = new McpServer({
  name: %q,
  version: designData.version,
});

registerTokenTools(server, designData);
registerComponentTools(server, designData);

const transport = new StdioServerTransport();
await server.connect(transport);
`, projectName)
}

const mcpTokenToolsTS = `import { z } from "zod";
import type { McpServer } from "@modelcontextprotocol/sdk/server/mcp.js";
import type { DesignData, Token } from "../types.js";

export function registerTokenTools(server: McpServer, data: DesignData): void {
  server.tool(
    "get_tokens",
    "List design tokens, optionally filtered by category",
    { category: z.string().optional() },
    async ({ category }) => {
      let tokens: Token[] = data.tokens;
      if (category) {
        tokens = tokens.filter((t) => t.category === category);
      }
      return { content: [{ type: "text", text: JSON.stringify(tokens, null, 2) }] };
    },
  );

  server.tool(
    "search_tokens",
    "Search tokens by path, variable name, or description",
    { query: z.string() },
    async ({ query }) => {
      const q = query.toLowerCase();
      const matches = data.tokens.filter(
        (t) =>
          t.path.toLowerCase().includes(q) ||
          t.variable.includes(q) ||
          (t.description ?? "").toLowerCase().includes(q),
      );
      return { content: [{ type: "text", text: JSON.stringify(matches, null, 2) }] };
    },
  );
}
`

const mcpComponentToolsTS = `import { z } from "zod";
import type { McpServer } from "@modelcontextprotocol/sdk/server/mcp.js";
import type { DesignData } from "../types.js";

export function registerComponentTools(server: McpServer, data: DesignData): void {
  server.tool(
    "list_components",
    "List components, optionally filtered by category",
    { category: z.string().optional() },
    async ({ category }) => {
      let components = data.components;
      if (category) {
        components = components.filter((c) => c.category === category);
      }
      const summary = components.map(({ name, slug, category, status, description }) => ({
        name,
        slug,
        category,
        status,
        description,
      }));
      return { content: [{ type: "text", text: JSON.stringify(summary, null, 2) }] };
    },
  );

  server.tool(
    "get_component",
    "Get a component's full definition by slug or name",
    { key: z.string() },
    async ({ key }) => {
      const k = key.toLowerCase();
      const component = data.components.find(
        (c) => c.slug === key || c.name.toLowerCase() === k,
      );
      if (!component) {
        return {
          content: [{ type: "text", text: "component not found: " + key }],
          isError: true,
        };
      }
      return { content: [{ type: "text", text: JSON.stringify(component, null, 2) }] };
    },
  );
}
`
