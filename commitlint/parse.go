package commitlint

import (
	"regexp"
	"strings"
)

// Commit is a commit message split into its conventional parts.
type Commit struct {
	Raw     string
	Header  string
	Type    string
	Scope   string
	Subject string
	Body    string
	Footer  string

	Breaking bool

	bodyLeadingBlank   bool
	footerLeadingBlank bool
}

var (
	headerPattern  = regexp.MustCompile(`^(\w*)(?:\(([^()]*)\))?(!)?: (.*)$`)
	trailerPattern = regexp.MustCompile(`^(BREAKING CHANGE|BREAKING-CHANGE|[\w-]+)(: | #)`)
)

// Parse splits message into header, body and footer. Lines starting with #
// are dropped the way git drops them from commit templates.
func Parse(message string) Commit {
	message = strings.ReplaceAll(message, "\r\n", "\n")

	lines := make([]string, 0)
	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	commit := Commit{Raw: strings.Join(lines, "\n")}
	if len(lines) == 0 {
		return commit
	}

	commit.Header = lines[0]
	if m := headerPattern.FindStringSubmatch(strings.TrimSpace(commit.Header)); m != nil {
		commit.Type = m[1]
		commit.Scope = m[2]
		commit.Breaking = m[3] == "!"
		commit.Subject = m[4]
	}

	rest := lines[1:]
	footerStart := findFooter(rest)

	commit.Body = strings.Trim(strings.Join(rest[:footerStart], "\n"), "\n")
	commit.bodyLeadingBlank = len(rest) == 0 || strings.TrimSpace(rest[0]) == ""
	commit.footerLeadingBlank = footerStart == 0 || strings.TrimSpace(rest[footerStart-1]) == ""
	commit.Footer = strings.Join(rest[footerStart:], "\n")

	if strings.Contains(commit.Footer, "BREAKING CHANGE") || strings.Contains(commit.Footer, "BREAKING-CHANGE") {
		commit.Breaking = true
	}

	return commit
}

// findFooter returns the index in rest where the trailing trailer paragraph
// begins, or len(rest) when there is none.
func findFooter(rest []string) int {
	start := len(rest)
	for start > 0 && strings.TrimSpace(rest[start-1]) != "" {
		start--
	}

	// The header paragraph never counts as footer.
	if start == 0 || start == len(rest) {
		return len(rest)
	}

	if !trailerPattern.MatchString(rest[start]) {
		return len(rest)
	}

	for _, line := range rest[start:] {
		// Continuation lines of a multi-line trailer are indented.
		if trailerPattern.MatchString(line) || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		return len(rest)
	}

	return start
}
