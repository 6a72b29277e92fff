package interview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Evidence is everything the integrity rules may look at for one session.
type Evidence struct {
	Session   Session
	Responses []ResponseRecord
	Signals   []Signal
	// SiblingHashes are payload hashes recorded by other sessions of the same job.
	SiblingHashes map[string]struct{}
}

// Rule is one independent heuristic. A triggered rule contributes its code.
type Rule interface {
	Code() ReasonCode
	Triggered(ev Evidence) bool
}

// IntegrityPolicy holds the thresholds of the built-in rules.
type IntegrityPolicy struct {
	MinSecondsPerAnswer float64
	MaxTabSwitches      int
	MaxPasteEvents      int
}

func DefaultIntegrityPolicy() IntegrityPolicy {
	return IntegrityPolicy{MinSecondsPerAnswer: 10, MaxTabSwitches: 5, MaxPasteEvents: 3}
}

// DefaultRules returns the built-in rule set in reporting order.
func DefaultRules(p IntegrityPolicy) []Rule {
	return []Rule{
		TooFastRule{MinPerAnswer: time.Duration(p.MinSecondsPerAnswer * float64(time.Second))},
		TabSwitchRule{Max: p.MaxTabSwitches},
		CopyPasteRule{Max: p.MaxPasteEvents},
		DuplicateSubmissionRule{},
	}
}

// IntegrityMonitor evaluates a registry of rules and OR-combines them.
type IntegrityMonitor struct {
	store ResponseRepository
	mu    sync.RWMutex
	rules []Rule
}

func NewIntegrityMonitor(store ResponseRepository, rules ...Rule) *IntegrityMonitor {
	return &IntegrityMonitor{store: store, rules: rules}
}

// Register appends a rule; its code is reported after the existing ones.
func (m *IntegrityMonitor) Register(r Rule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules = append(m.rules, r)
}

// Evaluate loads the session's evidence and judges it.
func (m *IntegrityMonitor) Evaluate(ctx context.Context, s Session) (IntegrityFlag, error) {
	ev := Evidence{Session: s}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ev.Responses, err = m.store.ListResponses(gctx, s.ID)
		return err
	})
	g.Go(func() (err error) {
		ev.Signals, err = m.store.ListSignals(gctx, s.ID)
		return err
	})
	g.Go(func() (err error) {
		ev.SiblingHashes, err = m.store.SiblingHashes(gctx, s.JobID, s.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return IntegrityFlag{}, fmt.Errorf("load integrity evidence: %w", err)
	}
	return m.Judge(ev), nil
}

// Judge applies every registered rule to ev.
func (m *IntegrityMonitor) Judge(ev Evidence) IntegrityFlag {
	m.mu.RLock()
	defer m.mu.RUnlock()
	flag := IntegrityFlag{SessionID: ev.Session.ID, Reasons: []ReasonCode{}}
	for _, r := range m.rules {
		if r.Triggered(ev) {
			flag.Reasons = append(flag.Reasons, r.Code())
		}
	}
	flag.Cheating = len(flag.Reasons) > 0
	return flag
}

// TooFastRule fires when the answers took less time in total than
// MinPerAnswer per answer.
type TooFastRule struct{ MinPerAnswer time.Duration }

func (TooFastRule) Code() ReasonCode { return ReasonTooFast }

func (r TooFastRule) Triggered(ev Evidence) bool {
	if r.MinPerAnswer <= 0 || len(ev.Responses) == 0 {
		return false
	}
	var total time.Duration
	for _, resp := range ev.Responses {
		total += resp.Elapsed
	}
	return total < r.MinPerAnswer*time.Duration(len(ev.Responses))
}

// TabSwitchRule counts tab switches and focus losses.
type TabSwitchRule struct{ Max int }

func (TabSwitchRule) Code() ReasonCode { return ReasonTabSwitch }

func (r TabSwitchRule) Triggered(ev Evidence) bool {
	return countSignals(ev.Signals, SignalTabSwitch, SignalFocusLoss) > r.Max
}

type CopyPasteRule struct{ Max int }

func (CopyPasteRule) Code() ReasonCode { return ReasonCopyPaste }

func (r CopyPasteRule) Triggered(ev Evidence) bool {
	return countSignals(ev.Signals, SignalCopyPaste) > r.Max
}

// DuplicateSubmissionRule fires when an answer of this session was also
// submitted, after normalization, by another candidate of the same job.
type DuplicateSubmissionRule struct{}

func (DuplicateSubmissionRule) Code() ReasonCode { return ReasonDuplicateSubmission }

func (DuplicateSubmissionRule) Triggered(ev Evidence) bool {
	if len(ev.SiblingHashes) == 0 {
		return false
	}
	for _, resp := range ev.Responses {
		if resp.PayloadHash == "" {
			continue
		}
		if _, ok := ev.SiblingHashes[resp.PayloadHash]; ok {
			return true
		}
	}
	return false
}

func countSignals(signals []Signal, kinds ...SignalKind) int {
	n := 0
	for _, s := range signals {
		for _, k := range kinds {
			if s.Kind == k {
				n++
				break
			}
		}
	}
	return n
}
