// Package markdown renders sample reports as markdown and reads them back.
package markdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/unityconverters/samplereport/internal/domain"
)

// Title is the first line of every rendered report.
const Title = "Samples Content Unit Test Report (Unity)"

const checkSeparator = "<br>"

// Renderer implements domain.ReportRenderer.
type Renderer struct{}

var _ domain.ReportRenderer = (*Renderer)(nil)

func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(report *domain.Report) ([]byte, error) {
	return []byte(Render(report)), nil
}

// Render returns the markdown document for a report.
func Render(report *domain.Report) string {
	var b strings.Builder
	ext := report.SourceExtension
	if ext == "" {
		ext = domain.DefaultSourceExtension
	}

	b.WriteString("# " + Title + "\n\n")
	fmt.Fprintf(&b, "- Generated at (UTC): %s\n", report.GeneratedAt.UTC().Format(time.RFC3339Nano))
	if report.Generator != "" {
		fmt.Fprintf(&b, "- Generator: %s\n", report.Generator)
	}
	if report.CommitHash != "" {
		fmt.Fprintf(&b, "- Commit: %s\n", report.CommitHash)
	}
	b.WriteString("\n")

	s := report.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | ---: |\n")
	fmt.Fprintf(&b, "| Sample folders | %d |\n", s.SampleFolders)
	fmt.Fprintf(&b, "| Folders | %d |\n", s.Folders)
	fmt.Fprintf(&b, "| Script files (%s) | %d |\n", ext, s.Scripts)
	fmt.Fprintf(&b, "| Passed | %d |\n", s.Passed)
	fmt.Fprintf(&b, "| Failed | %d |\n", s.Failed)
	b.WriteString("\n")

	for _, sample := range report.Samples {
		fmt.Fprintf(&b, "## Sample: `%s`\n\n", sample.SamplePath)

		if len(sample.Errors) > 0 {
			for _, e := range sample.Errors {
				fmt.Fprintf(&b, "- FAIL: %s\n", e)
			}
			b.WriteString("\n")
			continue
		}

		for _, folder := range sample.Folders {
			fmt.Fprintf(&b, "### Folder: `%s`\n\n", folder.Folder)
			b.WriteString("| Script file | Result | Checks |\n")
			b.WriteString("| --- | --- | --- |\n")
			for _, sc := range folder.Scripts {
				fmt.Fprintf(&b, "| `%s` | %s | %s |\n",
					escapeCell(sc.FileName), domain.VerdictLabel(sc.Passed), RenderChecks(sc.Checks))
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderChecks joins the checks of one script in evaluation order.
func RenderChecks(checks []domain.CheckResult) string {
	parts := make([]string, 0, len(checks))
	for _, c := range checks {
		name := c.Name
		if !c.Required {
			name += " [OPTIONAL]"
		}
		outcome := "PASS"
		if !c.Passed {
			outcome = fmt.Sprintf("FAIL (%s)", c.Detail)
		}
		parts = append(parts, escapeCell(name+": "+outcome))
	}
	return strings.Join(parts, checkSeparator)
}

// escapeCell keeps a literal pipe from splitting a table cell.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
