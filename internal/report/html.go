package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Stylesmith Scan Report</title>
    <style>
        :root {
            --bg-color: #0d1117;
            --text-color: #c9d1d9;
            --heading-color: #58a6ff;
            --border-color: #30363d;
            --table-bg: #161b22;
            --code-bg: #1f2428;
            --accent: #58a6ff;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont,
                'Segoe UI', Helvetica, Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-color);
            line-height: 1.6;
            max-width: 900px;
            margin: 0 auto;
            padding: 2rem;
        }
        h1 {
            color: var(--heading-color);
            border-bottom: 1px solid var(--border-color);
            padding-bottom: 0.5rem;
        }
        h2 { color: var(--heading-color); margin-top: 2rem; }
        h3 { color: var(--text-color); }
        table {
            width: 100%%;
            border-collapse: collapse;
            margin: 1rem 0;
            background-color: var(--table-bg);
        }
        th, td {
            border: 1px solid var(--border-color);
            padding: 0.75rem;
            text-align: left;
        }
        th { background-color: var(--code-bg); }
        code {
            background-color: var(--code-bg);
            padding: 0.2rem 0.4rem;
            border-radius: 3px;
            font-family: 'Cascadia Code', Consolas, monospace;
        }
        a { color: var(--accent); text-decoration: none; }
        a:hover { text-decoration: underline; }
        blockquote {
            border-left: 3px solid var(--accent);
            margin: 1rem 0;
            padding-left: 1rem;
            color: #8b949e;
        }
        ul { padding-left: 1.5rem; }
        li { margin: 0.5rem 0; }
    </style>
</head>
<body>
%s
</body>
</html>`

// HTML renders the report as a standalone dark-themed page.
func (g *Generator) HTML(now time.Time) string {
	return fmt.Sprintf(htmlShell, markdownToHTML(g.Markdown(now)))
}

var (
	inlineLink   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	inlineBold   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	inlineCode   = regexp.MustCompile("`([^`]+)`")
	inlineItalic = regexp.MustCompile(`\*([^*]+)\*`)
)

// markdownToHTML converts the limited markdown subset the renderer emits:
// headings, tables, lists, blockquotes, and inline link/bold/code/italic.
func markdownToHTML(md string) string {
	var out []string
	inTable := false
	tableHeaderDone := false
	inList := false

	closeTable := func() {
		if inTable {
			out = append(out, "</table>")
			inTable = false
		}
	}
	closeList := func() {
		if inList {
			out = append(out, "</ul>")
			inList = false
		}
	}

	for _, line := range strings.Split(md, "\n") {
		if strings.HasPrefix(line, "|") {
			closeList()
			if !inTable {
				out = append(out, "<table>")
				inTable = true
				tableHeaderDone = false
			}
			if strings.Contains(line, "---") {
				continue
			}
			cells := strings.Split(line, "|")
			cells = cells[1 : len(cells)-1]
			tag := "td"
			if !tableHeaderDone {
				tag = "th"
				tableHeaderDone = true
			}
			var row strings.Builder
			for _, cell := range cells {
				fmt.Fprintf(&row, "<%s>%s</%s>", tag, inlineMD(strings.TrimSpace(cell)), tag)
			}
			out = append(out, "<tr>"+row.String()+"</tr>")
			continue
		}
		closeTable()

		switch {
		case strings.HasPrefix(line, "### "):
			closeList()
			out = append(out, "<h3>"+inlineMD(line[4:])+"</h3>")
		case strings.HasPrefix(line, "## "):
			closeList()
			out = append(out, "<h2>"+inlineMD(line[3:])+"</h2>")
		case strings.HasPrefix(line, "# "):
			closeList()
			out = append(out, "<h1>"+inlineMD(line[2:])+"</h1>")
		case strings.HasPrefix(line, "> "):
			closeList()
			out = append(out, "<blockquote>"+inlineMD(line[2:])+"</blockquote>")
		case strings.HasPrefix(line, "- "):
			if !inList {
				out = append(out, "<ul>")
				inList = true
			}
			out = append(out, "<li>"+inlineMD(line[2:])+"</li>")
		case strings.TrimSpace(line) != "":
			closeList()
			out = append(out, "<p>"+inlineMD(line)+"</p>")
		default:
			closeList()
		}
	}
	closeTable()
	closeList()
	return strings.Join(out, "\n")
}

func inlineMD(text string) string {
	text = inlineLink.ReplaceAllString(text, `<a href="$2">$1</a>`)
	text = inlineBold.ReplaceAllString(text, "<strong>$1</strong>")
	text = inlineCode.ReplaceAllString(text, "<code>$1</code>")
	text = inlineItalic.ReplaceAllString(text, "<em>$1</em>")
	return text
}
