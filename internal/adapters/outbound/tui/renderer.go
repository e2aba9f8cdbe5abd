package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/unityconverters/samplereport/internal/adapters/outbound/gitinfo"
	"github.com/unityconverters/samplereport/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706")
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport renders a finished run for the terminal: verdict box, one
// table row per sample, then the failing scripts.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	b.WriteString(verdictBox(report.Passed(), report.Summary))
	b.WriteString("\n\n")

	if len(report.Samples) > 0 {
		b.WriteString(sampleTable(report.Samples))
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine + "\n\n")

	failed := report.FailedScripts()
	var sampleErrors []string
	for _, s := range report.Samples {
		sampleErrors = append(sampleErrors, s.Errors...)
	}
	if len(failed) == 0 && len(sampleErrors) == 0 {
		b.WriteString("  " + passStyle.Render("All required checks passed.") + "\n")
	} else {
		b.WriteString("  " + titleStyle.Render("Failures") + "\n\n")
		for _, e := range sampleErrors {
			fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("●"), e)
		}
		for _, f := range failed {
			renderFailedScript(&b, f)
		}
	}

	if report.ReportPath != "" {
		b.WriteString("\n  " + hintStyle.Render("Report written to "+report.ReportPath) + "\n")
	}
	return b.String()
}

// RenderDigest renders a report that was read back from markdown.
func RenderDigest(d *domain.ReportDigest) string {
	var b strings.Builder

	b.WriteString(verdictBox(d.Summary.RequiredFailures == 0, d.Summary))
	b.WriteString("\n\n")

	listed := false
	for _, s := range d.Samples {
		for _, e := range s.Errors {
			fmt.Fprintf(&b, "    %s %s  %s\n", failStyle.Render("●"), fileStyle.Render(s.SamplePath), e)
			listed = true
		}
		for _, sc := range s.Scripts {
			if sc.Passed {
				continue
			}
			fmt.Fprintf(&b, "    %s %s\n", failStyle.Render("●"),
				fileStyle.Render(s.SamplePath+"/"+sc.Folder+"/")+sc.FileName)
			listed = true
		}
	}
	if !listed {
		b.WriteString("  " + passStyle.Render("All required checks passed.") + "\n")
	}
	return b.String()
}

func verdictBox(passed bool, s domain.Summary) string {
	title := headerStyle.Render("samplereport")
	subtitle := dimStyle.Render("Samples Content Checks")

	verdict := failStyle.Bold(true).Render(domain.VerdictFail)
	if passed {
		verdict = passStyle.Bold(true).Render(domain.VerdictPass)
	}
	counts := dimStyle.Render(fmt.Sprintf("%d sample(s)  %d folder(s)  %d script(s)",
		s.SampleFolders, s.Folders, s.Scripts))
	tally := passStyle.Render(fmt.Sprintf("%d passed", s.Passed)) + "  " +
		failStyle.Render(fmt.Sprintf("%d failed", s.Failed))

	return boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict + "\n" + counts + "\n" + tally)
}

func sampleTable(samples []domain.SampleReport) string {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.Header([]string{"Sample", "Folders", "Scripts", "Passed", "Failed"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range samples {
		if len(s.Errors) > 0 {
			data = append(data, []string{s.SamplePath, "-", "-", "-", strconv.Itoa(len(s.Errors))})
			continue
		}
		scripts, passed := 0, 0
		for _, f := range s.Folders {
			for _, sc := range f.Scripts {
				scripts++
				if sc.Passed {
					passed++
				}
			}
		}
		data = append(data, []string{
			s.SamplePath,
			strconv.Itoa(len(s.Folders)),
			strconv.Itoa(scripts),
			strconv.Itoa(passed),
			strconv.Itoa(scripts - passed),
		})
	}

	if err := table.Bulk(data); err != nil {
		return ""
	}
	if err := table.Render(); err != nil {
		return ""
	}
	return b.String()
}

func renderFailedScript(b *strings.Builder, f domain.FailedScript) {
	path := f.Sample + "/"
	if f.Script.Folder != domain.RootFolderLabel {
		path += f.Script.Folder + "/"
	}
	fmt.Fprintf(b, "    %s %s\n", failStyle.Render("●"), fileStyle.Render(path)+f.Script.FileName)
	for _, c := range f.Script.Checks {
		if c.Passed {
			continue
		}
		style := failStyle
		if !c.Required {
			style = warnStyle
		}
		fmt.Fprintf(b, "         %s %s\n", style.Render(c.Name), dimStyle.Render(c.Detail))
	}
}

// RenderHistory formats the run history for terminal output.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := gitinfo.ShortHash(e.CommitHash)
		if hash == "" {
			hash = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		verdict := passStyle.Render(e.Verdict)
		if e.Verdict != domain.VerdictPass {
			verdict = failStyle.Render(e.Verdict)
		}

		line := fmt.Sprintf("  %s  %s  %s  %d/%d passed",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			verdict,
			e.Passed,
			e.Scripts,
		)

		if i > 0 {
			diff := e.RequiredFailures - entries[i-1].RequiredFailures
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d failing", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d failing", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
