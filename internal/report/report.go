// Package report renders claim decisions as Markdown and standalone HTML
// pages.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/ziadkadry99/claimdesk/internal/justify"
	"github.com/ziadkadry99/claimdesk/internal/pipeline"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

var page = template.Must(template.New("report").Parse(pageTemplate))

// Markdown renders resp as a Markdown document.
func Markdown(resp pipeline.QueryResponse) string {
	var b strings.Builder

	b.WriteString("# Claim report\n\n")
	fmt.Fprintf(&b, "> %s\n\n", escapeInline(resp.Query))

	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Decision | **%s** |\n", strings.ToUpper(string(resp.Decision)))
	fmt.Fprintf(&b, "| Amount | Rs. %s |\n", justify.FormatAmount(resp.Amount))
	fmt.Fprintf(&b, "| Confidence | %.0f%% |\n", resp.ConfidenceScore*100)
	fmt.Fprintf(&b, "| Session | `%s` |\n", resp.SessionID)
	fmt.Fprintf(&b, "| Chunks analyzed | %d |\n", resp.Metadata.ChunksAnalyzed)
	fmt.Fprintf(&b, "| Processing time | %.3fs |\n\n", resp.ProcessingTime)

	b.WriteString("## Justification\n\n")
	for _, line := range strings.Split(resp.Justification, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintf(&b, "%s  \n", escapeInline(line))
	}
	b.WriteString("\n")

	if len(resp.ReferencedClauses) > 0 {
		b.WriteString("## Referenced clauses\n\n")
		b.WriteString("| Document | Chunk | Relevance | Excerpt |\n|---|---|---|---|\n")
		for _, c := range resp.ReferencedClauses {
			fmt.Fprintf(&b, "| %s | %d | %.2f | %s |\n",
				escapeCell(c.Document), c.ChunkIndex, c.RelevanceScore, escapeCell(c.Content))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders resp as a complete HTML page.
func HTML(resp pipeline.QueryResponse) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(resp)), &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Decision string
		Content  template.HTML
	}{
		Decision: string(resp.Decision),
		Content:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("executing report template: %w", err)
	}
	return out.Bytes(), nil
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "#", `\#`,
	"[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;",
)

func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}

func escapeCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(escapeInline(s), "|", `\|`)
}
