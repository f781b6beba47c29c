package classify

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// "3.9 GPA", "3.9 unweighted gpa", "3.9 grade point average"
	gpaBeforeKeyword = regexp.MustCompile(`\b(\d{1,2}(?:\.\d+)?)\s*(?:(?:un)?weighted\s+)?(?:gpa|grade point)`)
	// "GPA of 3.9", "my gpa is 3.9", "grade point average: 3.9"
	gpaAfterKeyword = regexp.MustCompile(`\b(?:gpa|grade point(?:\s+average)?)\b[^0-9]{0,20}?(\d{1,2}(?:\.\d+)?)`)
	weightedWord    = regexp.MustCompile(`\bweighted\b`)

	satWord = regexp.MustCompile(`\bsat\b`)
	// "1520 on the SAT", "1520 SAT"
	satBeforeKeyword = regexp.MustCompile(`\b(\d{3,4})\s*(?:on\s+(?:the|my)\s+)?sat\b`)
	// "SAT: 1520", "SAT score was 1520", "sat of 1450"
	satAfterKeyword = regexp.MustCompile(`\bsat\b[^0-9]{0,20}?\b(\d{3,4})\b`)
	threeFourDigits = regexp.MustCompile(`\b\d{3,4}\b`)

	actWord = regexp.MustCompile(`\bact\b`)
	// "34 on the ACT", "34 ACT"
	actBeforeKeyword = regexp.MustCompile(`\b(\d{1,2})\s*(?:on\s+(?:the|my)\s+)?act\b`)
	// "ACT: 34", "ACT composite of 34"
	actAfterKeyword = regexp.MustCompile(`\bact\b[^0-9]{0,20}?\b(\d{1,2})\b`)
	oneTwoDigits    = regexp.MustCompile(`\b\d{1,2}\b`)

	// "is", "was", ":" and similar filler between an intent phrase and a school name.
	intentFiller = regexp.MustCompile(`(?i)^(?:\s|:|-|is\b|was\b|would be\b|the\b)+`)
	nameStop     = regexp.MustCompile(`[,.;!?]`)
)

const matchNothing = `[^\x00-\x{10FFFF}]`

// keywordSuffix lets a keyword match its common inflections ("volunteered",
// "internship", "awards") without matching unrelated longer words ("apply" for "app").
const keywordSuffix = `(?:s|es|d|ed|ing|er|ers|ship|ships)?\b`

// keywordPattern compiles a word-boundary alternation over keywords.
// Longer keywords are tried first so multi-word phrases beat their prefixes.
func keywordPattern(keywords []string) *regexp.Regexp {
	if len(keywords) == 0 {
		return regexp.MustCompile(matchNothing)
	}
	sorted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			sorted = append(sorted, k)
		}
	}
	if len(sorted) == 0 {
		return regexp.MustCompile(matchNothing)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, k := range sorted {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)` + keywordSuffix)
}

// aliasPattern compiles an exact word-boundary alternation over school aliases.
func aliasPattern(aliases []string) *regexp.Regexp {
	if len(aliases) == 0 {
		return regexp.MustCompile(matchNothing)
	}
	sorted := append([]string(nil), aliases...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, len(sorted))
	for i, a := range sorted {
		quoted[i] = regexp.QuoteMeta(a)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}
