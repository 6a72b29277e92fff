package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func TestReadyReportsEveryDependency(t *testing.T) {
	svc := NewService(
		stubChecker{name: "postgres"},
		nil,
		stubChecker{name: "redis", err: errors.New("down")},
		stubChecker{name: "llm", err: errors.New("timeout")},
	)
	rep := svc.Ready(context.Background())

	assert.Len(t, rep, 3)
	assert.NoError(t, rep["postgres"])
	assert.EqualError(t, rep.Err(), "llm: timeout; redis: down")
	assert.Equal(t, map[string]string{"postgres": "ok", "redis": "down", "llm": "timeout"}, rep.Statuses())
}

func TestReadyWithoutCheckers(t *testing.T) {
	rep := NewService().Ready(context.Background())
	assert.NoError(t, rep.Err())
	assert.Empty(t, rep.Statuses())
}
