package interview

import "time"

const (
	defaultLinkTTL      = 7 * 24 * time.Hour
	defaultScoreTimeout = 45 * time.Second
	defaultSweepBatch   = 200
	defaultSweepTimeout = 5 * time.Minute
)

// Settings tunes the pipeline. Zero values fall back to defaults.
type Settings struct {
	// LinkTTL is the validity window of an issued link, counted from issuance.
	LinkTTL time.Duration
	// Grace is added to the interview time budget before a started session times out.
	Grace time.Duration
	// ScoreTimeout bounds scoring of one answer, retries included.
	ScoreTimeout time.Duration
	// LinkBaseURL prefixes "/interview/<token>" in candidate links.
	LinkBaseURL string
	SweepBatch  int
	// SweepTimeout bounds one sweep run; the cluster lock is held for as long.
	SweepTimeout time.Duration
	Now          func() time.Time
}

func (s Settings) withDefaults() Settings {
	if s.LinkTTL <= 0 {
		s.LinkTTL = defaultLinkTTL
	}
	if s.Grace < 0 {
		s.Grace = 0
	}
	if s.ScoreTimeout <= 0 {
		s.ScoreTimeout = defaultScoreTimeout
	}
	if s.SweepBatch <= 0 {
		s.SweepBatch = defaultSweepBatch
	}
	if s.SweepTimeout <= 0 {
		s.SweepTimeout = defaultSweepTimeout
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return s
}

func (s Settings) now() time.Time { return s.Now().UTC() }
