package commitlint

import "github.com/pkg/errors"

var (
	ErrUnknownRuleSet = errors.New("unknown rule set")
	ErrUnknownRule    = errors.New("unknown rule")
	ErrInvalidRule    = errors.New("invalid rule configuration")
	ErrInvalidPattern = errors.New("invalid pattern")
)
