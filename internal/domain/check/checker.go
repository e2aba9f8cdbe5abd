package check

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/unityconverters/samplereport/internal/domain"
)

const (
	NameNotEmpty        = "file is not empty"
	NameTypeDeclaration = "contains type declaration"
	NameTestAttribute   = "contains NUnit test attribute (optional)"
)

const (
	detailOK                = "ok"
	detailEmpty             = "empty file"
	detailNoTypeDeclaration = "no class/struct/interface found"
	detailNoTestAttribute   = "missing [Test]/[TestCase]/[UnityTest]/[TestCaseSource]"
)

// nonWord matches one character that cannot be part of an identifier.
// RE2's \b only treats ASCII letters and digits as word characters.
const nonWord = `[^\p{L}\p{Mn}\p{Nd}\p{Pc}]`

var (
	typeDeclarationRe = regexp.MustCompile(`(?:^|` + nonWord + `)(class|struct|interface)(?:$|` + nonWord + `)`)
	testAttributeRe   = regexp.MustCompile(`\[(Test|TestCase|UnityTest|TestCaseSource)(?:$|` + nonWord + `)`)
)

// Evaluate runs every check on one script and returns its report. The folder
// is the script's directory relative to sampleRoot in forward slashes, or
// domain.RootFolderLabel for the root itself.
func Evaluate(sampleRoot, scriptPath, content, extension string) domain.ScriptReport {
	fileName := filepath.Base(scriptPath)

	checks := []domain.CheckResult{
		NotEmpty(content),
		TypeDeclaration(content),
	}
	if IsTestFileName(fileName, extension) {
		checks = append(checks, TestAttribute(content))
	}

	return domain.NewScriptReport(fileName, FolderOf(sampleRoot, scriptPath), checks)
}

// NotEmpty passes when the content holds anything besides whitespace.
func NotEmpty(content string) domain.CheckResult {
	ok := strings.TrimSpace(content) != ""
	return result(NameNotEmpty, true, ok, detailEmpty)
}

// TypeDeclaration passes when a class, struct or interface keyword appears
// as a whole word. It is a textual heuristic, not a parse.
func TypeDeclaration(content string) domain.CheckResult {
	ok := typeDeclarationRe.MatchString(content)
	return result(NameTypeDeclaration, true, ok, detailNoTypeDeclaration)
}

// TestAttribute passes when an NUnit or Unity test attribute is present. It
// is optional: a failure never fails the script.
func TestAttribute(content string) domain.CheckResult {
	ok := testAttributeRe.MatchString(content)
	return result(NameTestAttribute, false, ok, detailNoTestAttribute)
}

// IsTestFileName reports whether a file name ends in "Test" or "Tests" right
// before the source extension, ignoring case.
func IsTestFileName(fileName, extension string) bool {
	lower := strings.ToLower(fileName)
	ext := strings.ToLower(extension)
	return strings.HasSuffix(lower, "test"+ext) || strings.HasSuffix(lower, "tests"+ext)
}

// FolderOf returns the script's folder relative to the sample root.
func FolderOf(sampleRoot, scriptPath string) string {
	rel, err := filepath.Rel(sampleRoot, filepath.Dir(scriptPath))
	if err != nil || rel == "." || rel == "" {
		return domain.RootFolderLabel
	}
	return filepath.ToSlash(rel)
}

func result(name string, required, passed bool, failDetail string) domain.CheckResult {
	detail := detailOK
	if !passed {
		detail = failDetail
	}
	return domain.CheckResult{
		Name:     name,
		Required: required,
		Passed:   passed,
		Detail:   detail,
	}
}
