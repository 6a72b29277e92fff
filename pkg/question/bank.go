// Package question drafts the questions a session asks: oral ones through a
// chat model with resume-based templates as the fallback, coding ones from a
// seeded bank.
package question

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v4"

	"github.com/artem13815/screening/pkg/interview"
	"github.com/artem13815/screening/pkg/nlp"
)

// Task is one coding question of the bank. An empty RoleType fits any job.
type Task struct {
	Text       string   `yaml:"text"`
	Difficulty string   `yaml:"difficulty"`
	Skills     []string `yaml:"skills"`
	RoleType   string   `yaml:"role_type"`
}

type Bank struct {
	tasks []Task
}

var seed = []Task{
	{
		Text:       "Write a function that returns the input string reversed. It must handle multi-byte characters.",
		Difficulty: "easy",
		Skills:     []string{"strings"},
	},
	{
		Text:       "Given an array of integers and a target, return the indices of the two numbers that add up to the target. Aim for a single pass.",
		Difficulty: "easy",
		Skills:     []string{"algorithms", "hash maps"},
	},
	{
		Text:       "Explain the difference between the '==' and 'is' operators in Python and write a snippet where they disagree.",
		Difficulty: "easy",
		Skills:     []string{"python"},
		RoleType:   "Python Developer",
	},
	{
		Text:       "Implement an LRU cache with get and put in O(1) time.",
		Difficulty: "medium",
		Skills:     []string{"data structures", "algorithms"},
	},
	{
		Text:       "Write a SQL query that returns, for every department, the three employees with the highest salary.",
		Difficulty: "medium",
		Skills:     []string{"sql", "postgresql"},
	},
	{
		Text:       "Implement a worker pool that processes jobs from a channel with at most N goroutines and stops on context cancellation.",
		Difficulty: "medium",
		Skills:     []string{"go", "concurrency"},
		RoleType:   "Backend Engineer",
	},
	{
		Text:       "Write a rate limiter that allows at most N requests per client per minute.",
		Difficulty: "medium",
		Skills:     []string{"algorithms", "rest api"},
		RoleType:   "Backend Engineer",
	},
	{
		Text:       "Write a debounce helper for a search input: the callback fires only after the user stops typing for 300 ms.",
		Difficulty: "easy",
		Skills:     []string{"javascript", "typescript"},
		RoleType:   "Frontend Developer",
	},
}

// DefaultBank returns the built-in coding questions.
func DefaultBank() *Bank {
	return &Bank{tasks: slices.Clone(seed)}
}

func NewBank(tasks []Task) (*Bank, error) {
	if len(tasks) == 0 {
		return nil, errors.New("question bank is empty")
	}
	for i, t := range tasks {
		if strings.TrimSpace(t.Text) == "" {
			return nil, fmt.Errorf("question bank: task %d has no text", i)
		}
	}
	return &Bank{tasks: slices.Clone(tasks)}, nil
}

// LoadBank reads a YAML list of tasks.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	var tasks []Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	return NewBank(tasks)
}

func (b *Bank) Len() int { return len(b.tasks) }

// Pick selects up to n tasks for a job. Tasks written for the role come
// first, then those sharing the most skills with the job. Ties are shuffled
// with the session ID as the seed, so one session always gets the same set.
func (b *Bank) Pick(sessionID uuid.UUID, role string, skills []string, n int) []interview.Question {
	if n <= 0 || len(b.tasks) == 0 {
		return nil
	}
	type ranked struct {
		task  Task
		score int
	}
	rs := make([]ranked, len(b.tasks))
	for i, t := range b.tasks {
		rs[i] = ranked{task: t, score: overlap(t.Skills, skills)}
		if fitsRole(t.RoleType, role) {
			rs[i].score += 100
		}
	}
	rng := rand.New(rand.NewPCG(binary.BigEndian.Uint64(sessionID[:8]), binary.BigEndian.Uint64(sessionID[8:])))
	rng.Shuffle(len(rs), func(i, j int) { rs[i], rs[j] = rs[j], rs[i] })
	slices.SortStableFunc(rs, func(a, b ranked) int { return b.score - a.score })

	out := make([]interview.Question, 0, min(n, len(rs)))
	for i := 0; i < n && i < len(rs); i++ {
		out = append(out, interview.Question{
			Kind:           interview.KindCoding,
			Index:          i,
			Text:           rs[i].task.Text,
			ExpectedSkills: slices.Clone(rs[i].task.Skills),
			Source:         SourceBank,
		})
	}
	return out
}

func fitsRole(taskRole, jobTitle string) bool {
	r := nlp.NormalizeText(taskRole)
	if r == "" {
		return false
	}
	return nlp.ContainsPhrase(nlp.NormalizeText(jobTitle), r)
}

// overlap counts skills of a that b names under any spelling.
func overlap(a, b []string) int {
	known := map[string]struct{}{}
	for _, s := range b {
		for _, v := range nlp.SkillVariants(s) {
			known[v] = struct{}{}
		}
	}
	n := 0
	for _, s := range a {
		for _, v := range nlp.SkillVariants(s) {
			if _, ok := known[v]; ok {
				n++
				break
			}
		}
	}
	return n
}
