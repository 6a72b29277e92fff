package scorer

import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/nlp"
)

// Keyword grades an answer by how many required skills it mentions and how
// substantial it is. Deterministic; used when no model is available.
type Keyword struct {
	// FullLength is the word count that earns the whole length share.
	FullLength int
}

func NewKeyword() *Keyword { return &Keyword{FullLength: 80} }

func (k *Keyword) Score(_ context.Context, req interview.ScoreRequest) (float64, error) {
	words := len(strings.Fields(nlp.NormalizeText(req.Payload)))
	if words == 0 {
		return 0, nil
	}
	length := math.Min(1, float64(words)/float64(max(k.FullLength, 1)))
	// a question that names its skills is graded against those
	skills := req.Skills
	if len(req.ExpectedSkills) > 0 {
		skills = req.ExpectedSkills
	}
	if len(skills) == 0 {
		return round(100 * length), nil
	}
	matched, _ := nlp.MatchSkills(req.Payload, skills)
	coverage := float64(len(matched)) / float64(len(skills))
	return round(70*coverage + 30*length), nil
}

var (
	reFuncDecl = regexp.MustCompile(`\b(func|def|function|fn|class|public|private|static)\b`)
	reControl  = regexp.MustCompile(`\b(if|for|while|switch|case|match|else|range)\b`)
	reReturn   = regexp.MustCompile(`\breturn\b`)
	reComment  = regexp.MustCompile(`(//|#|/\*)`)
)

// Code grades a coding answer on its shape: it looks for a declaration,
// control flow, a result and a reasonable size.
type Code struct{}

func NewCode() *Code { return &Code{} }

func (Code) Score(_ context.Context, req interview.ScoreRequest) (float64, error) {
	src := strings.TrimSpace(req.Payload)
	if src == "" {
		return 0, nil
	}
	var score float64
	lines := nonEmptyLines(src)
	switch {
	case lines >= 5:
		score += 30
	case lines >= 2:
		score += 15
	default:
		score += 5
	}
	if reFuncDecl.MatchString(src) {
		score += 25
	}
	if reControl.MatchString(src) {
		score += 20
	}
	if reReturn.MatchString(src) {
		score += 15
	}
	if reComment.MatchString(src) {
		score += 5
	}
	if balanced(src) {
		score += 5
	}
	return round(math.Min(score, 100)), nil
}

func nonEmptyLines(s string) int {
	n := 0
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			n++
		}
	}
	return n
}

// balanced reports whether brackets pair up.
func balanced(s string) bool {
	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}
	var stack []rune
	for _, r := range s {
		switch r {
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

func round(v float64) float64 { return math.Round(v*10) / 10 }
