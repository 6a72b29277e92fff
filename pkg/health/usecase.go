package health

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report holds the probe result of every dependency; nil means healthy.
type Report map[string]error

// Err joins the failed probes in name order, nil when all passed.
func (r Report) Err() error {
	var failed []string
	for name, err := range r {
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	sort.Strings(failed)
	return fmt.Errorf("%s", strings.Join(failed, "; "))
}

// Statuses renders the report for the readiness endpoint.
func (r Report) Statuses() map[string]string {
	out := make(map[string]string, len(r))
	for name, err := range r {
		if err != nil {
			out[name] = err.Error()
			continue
		}
		out[name] = "ok"
	}
	return out
}

type ReadinessUseCase interface {
	Ready(ctx context.Context) Report
}

type service struct {
	checkers []Checker
}

// NewService probes the given dependencies. Nil checkers are skipped.
func NewService(checkers ...Checker) ReadinessUseCase {
	s := &service{}
	for _, ch := range checkers {
		if ch != nil {
			s.checkers = append(s.checkers, ch)
		}
	}
	return s
}

// Ready runs all probes concurrently; one slow dependency does not hide another.
func (s *service) Ready(ctx context.Context) Report {
	var (
		mu  sync.Mutex
		rep = make(Report, len(s.checkers))
	)
	var g errgroup.Group
	for _, ch := range s.checkers {
		g.Go(func() error {
			err := ch.Check(ctx)
			mu.Lock()
			rep[ch.Name()] = err
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return rep
}
