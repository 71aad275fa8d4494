package generate

import (
	"fmt"
	"strings"
)

// Byte budgets for the AI-context doc generators. Budgets keep the files
// small enough that coding assistants load them whole on every request.
const (
	BudgetLLMSTxt          = 102400
	BudgetCursorRules      = 3072
	BudgetClaudeMD         = 3072
	BudgetProjectKnowledge = 2560
)

// CutStyle selects the truncation marker and the structures a cut must not
// split.
type CutStyle int

const (
	// CutPlain appends a comment line; cuts only respect line boundaries.
	CutPlain CutStyle = iota

	// CutMarkdown appends a closing note; cuts additionally avoid landing
	// inside an open table, fenced code block, or YAML frontmatter block.
	CutMarkdown
)

// BudgetResult is the outcome of enforcing one budget.
type BudgetResult struct {
	Content   string
	Truncated bool
	Warning   string
}

func (s CutStyle) marker() string {
	switch s {
	case CutMarkdown:
		return "\n\n> Truncated to fit the size budget. Regenerate with fewer themes or components for full coverage."
	default:
		return "\n# truncated: size budget reached"
	}
}

// EnforceBudget trims content to at most budget bytes. The cut lands on the
// last newline boundary that leaves room for a truncation marker, backed up
// further if it would split an open markdown structure. Content under
// budget passes through untouched. The result always fits the budget unless
// no safe cut exists at all, in which case the best achievable truncation is
// returned with a warning.
func EnforceBudget(content string, budget int, style CutStyle) BudgetResult {
	if len(content) <= budget {
		return BudgetResult{Content: content}
	}

	marker := style.marker()
	limit := budget - len(marker)
	if limit <= 0 {
		// Budget can't even hold the marker; hard-cut at a line boundary.
		cut := lastNewlineBefore(content, budget)
		return BudgetResult{
			Content:   content[:cut],
			Truncated: true,
			Warning:   fmt.Sprintf("output truncated from %d to %d bytes; size budget %d leaves no room for a truncation notice", len(content), cut, budget),
		}
	}

	cut := lastNewlineBefore(content, limit)
	if style == CutMarkdown {
		cut = safeMarkdownCut(content, cut)
	}

	result := content[:cut] + marker
	warning := fmt.Sprintf("output truncated from %d to %d bytes to fit the %d-byte budget", len(content), len(result), budget)
	if len(result) > budget {
		// Backing out of an open structure could not reach the budget.
		warning = fmt.Sprintf("output truncated from %d to %d bytes but still exceeds the %d-byte budget: no safe cut point inside", len(content), len(result), budget)
	}
	return BudgetResult{Content: result, Truncated: true, Warning: warning}
}

// lastNewlineBefore returns the index of the last '\n' strictly before
// limit, or 0 when none exists.
func lastNewlineBefore(content string, limit int) int {
	if limit > len(content) {
		limit = len(content)
	}
	idx := strings.LastIndexByte(content[:limit], '\n')
	if idx < 0 {
		return 0
	}
	return idx
}

// safeMarkdownCut backs a candidate cut out of any open markdown structure:
// YAML frontmatter, fenced code blocks, and tables. The returned index is
// always <= cut and always on a line boundary (or 0).
func safeMarkdownCut(content string, cut int) int {
	if end, inside := frontmatterEnd(content); inside && cut < end {
		// Cutting inside frontmatter would leave it unterminated; the only
		// safe point before the structure opened is the very start.
		return 0
	}

	cut = backOutOfFence(content, cut)
	cut = backOutOfTable(content, cut)
	return cut
}

// frontmatterEnd locates the byte index just past the closing "---" line of
// a leading YAML frontmatter block.
func frontmatterEnd(content string) (int, bool) {
	if !strings.HasPrefix(content, "---\n") {
		return 0, false
	}
	rest := content[4:]
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return 0, false
	}
	end := 4 + idx + len("\n---")
	if nl := strings.IndexByte(content[end:], '\n'); nl >= 0 {
		end += nl + 1
	} else {
		end = len(content)
	}
	return end, true
}

// backOutOfFence moves the cut before the opening ``` when an odd number of
// fence lines precede it.
func backOutOfFence(content string, cut int) int {
	head := content[:cut]
	open := -1
	inFence := false
	for pos := 0; pos < len(head); {
		lineEnd := strings.IndexByte(head[pos:], '\n')
		var line string
		if lineEnd < 0 {
			line = head[pos:]
			lineEnd = len(head) - pos
		} else {
			line = head[pos : pos+lineEnd]
		}
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			if inFence {
				open = pos
			}
		}
		pos += lineEnd + 1
	}
	if inFence && open >= 0 {
		if open == 0 {
			return 0
		}
		return open - 1 // the newline ending the previous line
	}
	return cut
}

// backOutOfTable moves the cut before a table when the line right before it
// is a table row and the table continues past the cut.
func backOutOfTable(content string, cut int) int {
	if cut <= 0 || cut >= len(content) {
		return cut
	}
	if !isTableLine(lineBefore(content, cut)) || !isTableLine(lineAfter(content, cut)) {
		return cut
	}

	// Walk back over the contiguous run of table lines.
	for cut > 0 {
		prev := lastNewlineBefore(content, cut)
		if !isTableLine(content[prevLineStart(content, cut):cut]) {
			break
		}
		cut = prev
	}
	return cut
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// lineBefore returns the text of the line ending at index end (exclusive),
// where content[end] is a '\n'.
func lineBefore(content string, end int) string {
	return content[prevLineStart(content, end):end]
}

// lineAfter returns the text of the line starting just past the '\n' at idx.
func lineAfter(content string, idx int) string {
	start := idx + 1
	if start >= len(content) {
		return ""
	}
	end := strings.IndexByte(content[start:], '\n')
	if end < 0 {
		return content[start:]
	}
	return content[start : start+end]
}

// prevLineStart returns the index where the line ending at end begins.
func prevLineStart(content string, end int) int {
	start := strings.LastIndexByte(content[:end], '\n')
	return start + 1
}
