package commitlint

import (
	"regexp"

	"github.com/pkg/errors"
)

var dependabotTrailer = regexp.MustCompile(`(?m)^Signed-off-by: dependabot\[bot\]$`)

// IgnoreDependabot matches messages carrying a line that is exactly the
// dependabot sign-off trailer.
func IgnoreDependabot(message string) bool {
	return dependabotTrailer.MatchString(message)
}

// IgnorePattern compiles pattern into an IgnoreFunc.
func IgnorePattern(pattern string) (IgnoreFunc, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidPattern, "ignore %q: %v", pattern, err)
	}

	return re.MatchString, nil
}

// Merge style patterns must cover the whole message, apart from trailing
// newlines, so a real commit whose header starts with "Merge" is still linted.
// GitHub's pull request merges always carry the PR title as body, so that one
// is a prefix match.
var defaultIgnorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^Merge pull request #\d+ from `),
	regexp.MustCompile(`^Merge (branch|tag|remote-tracking branch) [^\n]*(?:\r?\n)*$`),
	regexp.MustCompile(`^Merge [^\n]+ into [^\n]+(?:\r?\n)*$`),
	regexp.MustCompile(`^Merged [^\n]+ (in|into) [^\n]+(?:\r?\n)*$`),
	regexp.MustCompile(`^Auto-merged [^\n]+ into [^\n]+(?:\r?\n)*$`),
	regexp.MustCompile(`^(R|r)evert `),
	regexp.MustCompile(`^(amend|fixup|squash)! `),
	regexp.MustCompile(`^Automatic merge`),
	regexp.MustCompile(`^(Initial commit|initial commit)\s*$`),
}

func isDefaultIgnored(message string) bool {
	for _, re := range defaultIgnorePatterns {
		if re.MatchString(message) {
			return true
		}
	}

	return false
}
