// Package classify guesses what kind of profile data a sentence of chat input contains.
//
// Classification is first-match-wins over a fixed, ordered list of rules:
// gpa, sat, act, activity, award, goal, school, and finally unknown. The order is
// the disambiguation policy; "I joined a club with a 3.9 GPA" is a GPA because the
// numeric rules run before the keyword rules.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/admissions-advisor/internal/reference"
	"github.com/jonathan/admissions-advisor/internal/types"
)

// rule pairs a category with the predicate that recognises it. A matching rule
// returns the payload and confidence for that category.
type rule struct {
	kind  types.ParsedType
	match func(in input) (data any, confidence types.Confidence, ok bool)
}

// input is the text under classification in both its raw and lowered forms.
type input struct {
	raw   string
	lower string
}

// Classifier is a stateless, concurrency-safe sentence classifier.
type Classifier struct {
	rules []rule

	leadership    *regexp.Regexp
	general       *regexp.Regexp
	award         *regexp.Regexp
	national      *regexp.Regexp
	international *regexp.Regexp
	goals         []goalPattern
	schoolAliases *regexp.Regexp
	canonical     map[string]string
	intents       *regexp.Regexp
}

type goalPattern struct {
	category types.GoalCategory
	re       *regexp.Regexp
}

// New builds a Classifier from reference tables. A nil argument selects the embedded defaults.
func New(tables *reference.Tables) *Classifier {
	if tables == nil {
		tables = reference.Default()
	}

	c := &Classifier{
		leadership:    keywordPattern(tables.Activity.Leadership),
		general:       keywordPattern(tables.Activity.General),
		award:         keywordPattern(tables.Award.Keywords),
		national:      keywordPattern(tables.Award.National),
		international: keywordPattern(tables.Award.International),
		intents:       regexp.MustCompile(`(?i)` + aliasPattern(lowerAll(tables.SchoolIntents)).String()),
		canonical:     make(map[string]string),
	}

	for _, g := range tables.Goals {
		c.goals = append(c.goals, goalPattern{category: g.Category, re: keywordPattern(g.Keywords)})
	}

	var aliases []string
	for _, s := range tables.Schools {
		names := append([]string{s.Name}, s.Aliases...)
		for _, a := range names {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" {
				continue
			}
			if _, dup := c.canonical[a]; dup {
				continue
			}
			c.canonical[a] = s.Name
			aliases = append(aliases, a)
		}
	}
	c.schoolAliases = aliasPattern(aliases)

	// Evaluation order. Do not reorder: sentences that match several categories
	// resolve to the earliest one.
	c.rules = []rule{
		{types.ParsedGPA, c.matchGPA},
		{types.ParsedSAT, c.matchSAT},
		{types.ParsedACT, c.matchACT},
		{types.ParsedActivity, c.matchActivity},
		{types.ParsedAward, c.matchAward},
		{types.ParsedGoal, c.matchGoal},
		{types.ParsedSchool, c.matchSchool},
	}
	return c
}

var defaultClassifier = New(nil)

// Classify runs the default Classifier.
func Classify(text string) types.ParsedData {
	return defaultClassifier.Classify(text)
}

// Rules returns the rule names in evaluation order.
func (c *Classifier) Rules() []types.ParsedType {
	out := make([]types.ParsedType, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.kind
	}
	return out
}

// Classify returns exactly one ParsedData for text. It never fails; text that
// matches no rule is returned as unknown with low confidence.
func (c *Classifier) Classify(text string) types.ParsedData {
	in := input{raw: text, lower: strings.ToLower(text)}
	for _, r := range c.rules {
		if data, conf, ok := r.match(in); ok {
			return types.ParsedData{Type: r.kind, Data: data, Confidence: conf, Original: text}
		}
	}
	return types.ParsedData{
		Type:       types.ParsedUnknown,
		Data:       types.UnknownData{Text: text},
		Confidence: types.ConfidenceLow,
		Original:   text,
	}
}

// Match runs a single rule in isolation, ignoring precedence.
func (c *Classifier) Match(kind types.ParsedType, text string) (types.ParsedData, bool) {
	in := input{raw: text, lower: strings.ToLower(text)}
	for _, r := range c.rules {
		if r.kind != kind {
			continue
		}
		data, conf, ok := r.match(in)
		if !ok {
			return types.ParsedData{}, false
		}
		return types.ParsedData{Type: kind, Data: data, Confidence: conf, Original: text}, true
	}
	return types.ParsedData{}, false
}

func (c *Classifier) matchGPA(in input) (any, types.Confidence, bool) {
	m := gpaBeforeKeyword.FindStringSubmatch(in.lower)
	if m == nil {
		m = gpaAfterKeyword.FindStringSubmatch(in.lower)
	}
	if m == nil {
		return nil, "", false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, "", false
	}
	// Without the keyword, anything above the 4.0 scale is assumed to be weighted.
	weighted := weightedWord.MatchString(in.lower) || value > 4.0
	return types.GPAData{Value: value, IsWeighted: weighted}, types.ConfidenceHigh, true
}

func (c *Classifier) matchSAT(in input) (any, types.Confidence, bool) {
	if !satWord.MatchString(in.lower) {
		return nil, "", false
	}
	v, ok := firstScoreInRange(in.lower, 400, 1600, satBeforeKeyword, satAfterKeyword)
	if !ok {
		v, ok = anyScoreInRange(in.lower, 400, 1600, threeFourDigits)
	}
	if !ok {
		return nil, "", false
	}
	return types.ScoreData{Value: v}, types.ConfidenceHigh, true
}

func (c *Classifier) matchACT(in input) (any, types.Confidence, bool) {
	if !actWord.MatchString(in.lower) {
		return nil, "", false
	}
	v, ok := firstScoreInRange(in.lower, 1, 36, actBeforeKeyword, actAfterKeyword)
	if !ok {
		v, ok = anyScoreInRange(in.lower, 1, 36, oneTwoDigits)
	}
	if !ok {
		return nil, "", false
	}
	return types.ScoreData{Value: v}, types.ConfidenceHigh, true
}

func (c *Classifier) matchActivity(in input) (any, types.Confidence, bool) {
	leadership := c.leadership.MatchString(in.lower)
	if !leadership && !c.general.MatchString(in.lower) {
		return nil, "", false
	}
	conf := types.ConfidenceMedium
	if leadership {
		conf = types.ConfidenceHigh
	}
	return types.ActivityData{Title: in.raw, IsLeadership: leadership}, conf, true
}

func (c *Classifier) matchAward(in input) (any, types.Confidence, bool) {
	if !c.award.MatchString(in.lower) {
		return nil, "", false
	}
	level := types.AwardLevelRegional
	switch {
	case c.international.MatchString(in.lower):
		level = types.AwardLevelInternational
	case c.national.MatchString(in.lower):
		level = types.AwardLevelNational
	}
	return types.AwardData{Title: in.raw, Level: level}, types.ConfidenceMedium, true
}

func (c *Classifier) matchGoal(in input) (any, types.Confidence, bool) {
	for _, g := range c.goals {
		if g.re.MatchString(in.lower) {
			return types.GoalData{Title: in.raw, Category: g.category}, types.ConfidenceMedium, true
		}
	}
	return nil, "", false
}

func (c *Classifier) matchSchool(in input) (any, types.Confidence, bool) {
	if alias := c.schoolAliases.FindString(in.lower); alias != "" {
		return types.SchoolData{Name: c.canonical[alias]}, types.ConfidenceHigh, true
	}

	loc := c.intents.FindStringIndex(in.raw)
	if loc == nil {
		return nil, "", false
	}
	name := extractName(in.raw[loc[1]:])
	if name == "" {
		return nil, "", false
	}
	return types.SchoolData{Name: name}, types.ConfidenceMedium, true
}

// extractName pulls a school name out of the text that follows an intent phrase.
func extractName(rest string) string {
	rest = intentFiller.ReplaceAllString(rest, "")
	if loc := nameStop.FindStringIndex(rest); loc != nil {
		rest = rest[:loc[0]]
	}
	return strings.TrimSpace(rest)
}

// firstScoreInRange returns the first capture from patterns, in order, whose value is within [lo, hi].
func firstScoreInRange(text string, lo, hi int, patterns ...*regexp.Regexp) (int, bool) {
	for _, p := range patterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if v, err := strconv.Atoi(m[1]); err == nil && v >= lo && v <= hi {
				return v, true
			}
		}
	}
	return 0, false
}

// anyScoreInRange returns the first number matched by p that is within [lo, hi].
func anyScoreInRange(text string, lo, hi int, p *regexp.Regexp) (int, bool) {
	for _, m := range p.FindAllString(text, -1) {
		if v, err := strconv.Atoi(m); err == nil && v >= lo && v <= hi {
			return v, true
		}
	}
	return 0, false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
