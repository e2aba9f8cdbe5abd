package markdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/unityconverters/samplereport/internal/domain"
)

// ErrNotAReport is returned when a document has no summary table.
var ErrNotAReport = errors.New("document is not a samples content report")

type section int

const (
	sectionHeader section = iota
	sectionSummary
	sectionSample
)

// digestParser walks the markdown AST of a rendered report.
type digestParser struct {
	source  []byte
	digest  *domain.ReportDigest
	section section
	folder  string
	summary bool
}

// ParseDigest reads a rendered report back into its summary counters and
// per-script results.
func ParseDigest(source []byte) (*domain.ReportDigest, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(source))

	p := &digestParser{source: source, digest: &domain.ReportDigest{}}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			p.heading(node)
			return ast.WalkSkipChildren, nil
		case *ast.List:
			p.list(node)
			return ast.WalkSkipChildren, nil
		case *extast.Table:
			if err := p.table(node); err != nil {
				return ast.WalkStop, err
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if !p.summary {
		return nil, ErrNotAReport
	}
	return p.digest, nil
}

func (p *digestParser) heading(h *ast.Heading) {
	title := strings.TrimSpace(nodeText(h, p.source))
	switch h.Level {
	case 1:
		p.digest.Title = title
	case 2:
		p.folder = ""
		if path, ok := strings.CutPrefix(title, "Sample: "); ok {
			p.section = sectionSample
			p.digest.Samples = append(p.digest.Samples, domain.SampleDigest{SamplePath: path})
			return
		}
		if title == "Summary" {
			p.section = sectionSummary
			return
		}
		p.section = sectionHeader
	case 3:
		if folder, ok := strings.CutPrefix(title, "Folder: "); ok {
			p.folder = folder
		}
	}
}

func (p *digestParser) list(l *ast.List) {
	sample := p.currentSample()
	if p.section != sectionSample || sample == nil {
		return
	}
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		line := strings.TrimSpace(nodeText(item, p.source))
		if msg, ok := strings.CutPrefix(line, "FAIL: "); ok {
			sample.Errors = append(sample.Errors, msg)
		}
	}
}

func (p *digestParser) table(t *extast.Table) error {
	_, rows := tableCells(t, p.source)

	switch p.section {
	case sectionSummary:
		for _, row := range rows {
			if len(row) < 2 {
				continue
			}
			v, err := strconv.Atoi(row[1])
			if err != nil {
				return fmt.Errorf("summary metric %q: %w", row[0], err)
			}
			p.setMetric(row[0], v)
		}
		p.digest.Summary.RequiredFailures = p.digest.Summary.Failed
		p.summary = true

	case sectionSample:
		sample := p.currentSample()
		if sample == nil {
			return nil
		}
		for _, row := range rows {
			if len(row) < 3 {
				continue
			}
			sample.Scripts = append(sample.Scripts, domain.ScriptDigest{
				Folder:   p.folder,
				FileName: row[0],
				Passed:   row[1] == domain.VerdictPass,
				Checks:   row[2],
			})
		}
	}
	return nil
}

func (p *digestParser) setMetric(label string, v int) {
	s := &p.digest.Summary
	switch {
	case label == "Sample folders":
		s.SampleFolders = v
	case label == "Folders":
		s.Folders = v
	case strings.HasPrefix(label, "Script files"):
		s.Scripts = v
	case label == "Passed":
		s.Passed = v
	case label == "Failed":
		s.Failed = v
	}
}

func (p *digestParser) currentSample() *domain.SampleDigest {
	if len(p.digest.Samples) == 0 {
		return nil
	}
	return &p.digest.Samples[len(p.digest.Samples)-1]
}

func tableCells(t *extast.Table, source []byte) (header []string, rows [][]string) {
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, strings.TrimSpace(nodeText(c, source)))
		}
		switch r.(type) {
		case *extast.TableHeader:
			header = cells
		case *extast.TableRow:
			rows = append(rows, cells)
		}
	}
	return header, rows
}

// nodeText concatenates the literal text below n, keeping inline HTML such
// as the <br> check separator.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.RawHTML:
			for i := 0; i < t.Segments.Len(); i++ {
				seg := t.Segments.At(i)
				b.Write(seg.Value(source))
			}
		default:
			b.WriteString(nodeText(c, source))
		}
	}
	return b.String()
}
