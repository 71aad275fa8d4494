package mcp

import "github.com/mark3labs/mcp-go/mcp"

func listThemesTool() mcp.Tool {
	return mcp.NewTool("list_themes",
		mcp.WithDescription("List themes in the library with their token counts"),
	)
}

func getThemeTool() mcp.Tool {
	return mcp.NewTool("get_theme",
		mcp.WithDescription("Get a full theme snapshot (tokens and typefaces) by slug or id"),
		mcp.WithString("theme", mcp.Required(),
			mcp.Description("Theme slug or id")),
	)
}

func getTokensTool() mcp.Tool {
	return mcp.NewTool("get_tokens",
		mcp.WithDescription("List design tokens with serialized CSS values, optionally filtered by theme and category"),
		mcp.WithString("theme",
			mcp.Description("Theme slug or id; tokens from every theme when omitted")),
		mcp.WithString("category",
			mcp.Description("One of: color, spacing, typography, shadow, radius, grid, other")),
	)
}

func searchTokensTool() mcp.Tool {
	return mcp.NewTool("search_tokens",
		mcp.WithDescription("Search tokens by path, name, CSS variable, or description"),
		mcp.WithString("query", mcp.Required(),
			mcp.Description("Case-insensitive substring to search for")),
	)
}

func listComponentsTool() mcp.Tool {
	return mcp.NewTool("list_components",
		mcp.WithDescription("List components, optionally filtered by category and/or keyword"),
		mcp.WithString("category",
			mcp.Description("Component category filter")),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive match against name and description")),
	)
}

func getComponentTool() mcp.Tool {
	return mcp.NewTool("get_component",
		mcp.WithDescription("Get a component's full definition (props, variants, linked tokens, examples) by slug or name"),
		mcp.WithString("component", mcp.Required(),
			mcp.Description("Component slug or name")),
	)
}

func buildPackageTool() mcp.Tool {
	return mcp.NewTool("build_package",
		mcp.WithDescription("Build an export package and return its file listing"),
		mcp.WithString("themes",
			mcp.Description("Comma-separated theme slugs or ids; every theme when omitted")),
		mcp.WithString("components",
			mcp.Description("Comma-separated component slugs or names; every component when omitted")),
		mcp.WithString("formats",
			mcp.Description("Comma-separated format ids (css, scss, json, tailwind, llms-txt, cursor-rules, claude-md, project-knowledge, mcp-server, claude-skill) or full-package")),
		mcp.WithString("project_name",
			mcp.Description("Project name stamped into generated files")),
		mcp.WithString("version",
			mcp.Description("Package version")),
	)
}
