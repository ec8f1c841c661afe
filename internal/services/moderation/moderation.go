package moderation

import (
	"regexp"

	"mvdan.cc/xurls"
)

// Filter decides whether text may be shown by the bot
type Filter interface {
	IsDisallowed(text string) bool
}

// DefaultPatterns are the blacklisted fragments, matched case-insensitively
// on word boundaries
var DefaultPatterns = []string{
	`\blol\b`,
	`\blmao\b`,
	`\brofl\b`,
	`\bwtf\b`,
	`\bkek\b`,
	`\b(ha){2,}\b`,
}

// bareLink catches scheme-less links that xurls.Strict does not
var bareLink = regexp.MustCompile(`(?i)\bwww\.\S+`)

// Config for the pattern filter
type Config struct {
	// Patterns replaces DefaultPatterns when set
	Patterns []string

	// AllowURLs disables the link check
	AllowURLs bool
}

// PatternFilter rejects links and blacklisted words
type PatternFilter struct {
	patterns  []*regexp.Regexp
	allowURLs bool
}

// New compiles the filter. Invalid patterns are returned as an error.
func New(cfg *Config) (*PatternFilter, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	raw := cfg.Patterns
	if len(raw) == 0 {
		raw = DefaultPatterns
	}

	patterns := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}

	return &PatternFilter{
		patterns:  patterns,
		allowURLs: cfg.AllowURLs,
	}, nil
}

// IsDisallowed reports whether text contains a link or a blacklisted word
func (f *PatternFilter) IsDisallowed(text string) bool {
	if !f.allowURLs && (xurls.Strict.MatchString(text) || bareLink.MatchString(text)) {
		return true
	}
	for _, re := range f.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// StripURLs removes every link from text
func StripURLs(text string) string {
	return bareLink.ReplaceAllString(xurls.Strict.ReplaceAllString(text, ""), "")
}
