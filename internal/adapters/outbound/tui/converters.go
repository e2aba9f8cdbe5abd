package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unityconverters/samplereport/internal/domain"
)

var sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

// RenderConverters lists which converters each group registers, followed by
// the serializer defaults.
func RenderConverters(cfg domain.ConvertersConfig) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Converters") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n")

	for _, g := range domain.ValidConverterGroups {
		b.WriteString("\n  " + sectionHeaderStyle.Render(string(g)) + "\n")
		if cfg.UsesAll(g) {
			b.WriteString("    " + passStyle.Render("●") + " all converters\n")
		} else if len(cfg.EnabledConverters(g)) == 0 {
			b.WriteString("    " + dimStyle.Render("none enabled") + "\n")
		}
		// Listed entries show their effective state.
		for _, e := range cfg.Entries(g) {
			marker := dimStyle.Render("○")
			if cfg.IsEnabled(g, e.Name) {
				marker = passStyle.Render("●")
			}
			b.WriteString("    " + marker + " " + e.Name + "\n")
		}
	}

	b.WriteString("\n  " + sectionHeaderStyle.Render("settings") + "\n")
	settings := [][2]string{
		{"unity contract resolver", fmt.Sprintf("%t", cfg.UseUnityContractResolver)},
		{"auto sync converters", fmt.Sprintf("%t", cfg.AutoSyncConverters)},
		{"type name handling", cfg.TypeNameHandling},
		{"null value handling", cfg.NullValueHandling},
		{"default value handling", cfg.DefaultValueHandling},
		{"reference loop handling", cfg.ReferenceLoopHandling},
		{"formatting", cfg.Formatting},
		{"date format handling", cfg.DateFormatHandling},
		{"missing member handling", cfg.MissingMemberHandling},
	}
	for _, s := range settings {
		fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render(padRight(s[0], 26)), s[1])
	}
	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
