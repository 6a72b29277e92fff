package interview_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/screening/pkg/interview"
)

func signals(kind interview.SignalKind, n int) []interview.Signal {
	out := make([]interview.Signal, n)
	for i := range out {
		out[i] = interview.Signal{Kind: kind}
	}
	return out
}

func TestIntegrityRules(t *testing.T) {
	monitor := interview.NewIntegrityMonitor(nil, interview.DefaultRules(interview.DefaultIntegrityPolicy())...)
	slow := []interview.ResponseRecord{{Elapsed: time.Minute}, {Elapsed: 30 * time.Second}}

	cases := []struct {
		name string
		ev   interview.Evidence
		want []interview.ReasonCode
	}{
		{
			name: "clean",
			ev:   interview.Evidence{Responses: slow, Signals: signals(interview.SignalTabSwitch, 5)},
			want: []interview.ReasonCode{},
		},
		{
			name: "too fast",
			ev:   interview.Evidence{Responses: []interview.ResponseRecord{{Elapsed: 5 * time.Second}, {Elapsed: 10 * time.Second}}},
			want: []interview.ReasonCode{interview.ReasonTooFast},
		},
		{
			name: "tab switches and focus losses add up",
			ev: interview.Evidence{
				Responses: slow,
				Signals:   append(signals(interview.SignalTabSwitch, 3), signals(interview.SignalFocusLoss, 3)...),
			},
			want: []interview.ReasonCode{interview.ReasonTabSwitch},
		},
		{
			name: "copy paste",
			ev:   interview.Evidence{Responses: slow, Signals: signals(interview.SignalCopyPaste, 4)},
			want: []interview.ReasonCode{interview.ReasonCopyPaste},
		},
		{
			name: "duplicate submission",
			ev: interview.Evidence{
				Responses:     []interview.ResponseRecord{{Elapsed: time.Minute, PayloadHash: "abc"}},
				SiblingHashes: map[string]struct{}{"abc": {}},
			},
			want: []interview.ReasonCode{interview.ReasonDuplicateSubmission},
		},
		{
			name: "several rules in order",
			ev: interview.Evidence{
				Responses: []interview.ResponseRecord{{Elapsed: time.Second}},
				Signals:   append(signals(interview.SignalCopyPaste, 4), signals(interview.SignalTabSwitch, 6)...),
			},
			want: []interview.ReasonCode{interview.ReasonTooFast, interview.ReasonTabSwitch, interview.ReasonCopyPaste},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flag := monitor.Judge(tc.ev)
			assert.Equal(t, tc.want, flag.Reasons)
			assert.Equal(t, len(tc.want) > 0, flag.Cheating)
		})
	}
}

type otherSignalRule struct{}

func (otherSignalRule) Code() interview.ReasonCode { return "OTHER_SIGNAL" }

func (otherSignalRule) Triggered(ev interview.Evidence) bool {
	for _, s := range ev.Signals {
		if s.Kind == interview.SignalOther {
			return true
		}
	}
	return false
}

func TestIntegrityRegisterRule(t *testing.T) {
	monitor := interview.NewIntegrityMonitor(nil)
	monitor.Register(otherSignalRule{})

	flag := monitor.Judge(interview.Evidence{Signals: signals(interview.SignalOther, 1)})
	assert.True(t, flag.Cheating)
	assert.Equal(t, []interview.ReasonCode{"OTHER_SIGNAL"}, flag.Reasons)
}

func TestDuplicateSubmissionAcrossCandidates(t *testing.T) {
	f := newFixture(t, options{})
	const shared = "Channels let goroutines communicate without sharing memory"

	first := f.started(t, "ann")
	f.answer(t, first.ID, interview.KindOral, 0, shared, 2*time.Minute)
	_, out, err := f.svc.Tracker.Complete(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, out.Integrity.Cheating)

	second := f.started(t, "bob")
	f.answer(t, second.ID, interview.KindOral, 0, "channels let goroutines communicate, without sharing memory!", 2*time.Minute)
	_, out, err = f.svc.Tracker.Complete(context.Background(), second.ID)
	require.NoError(t, err)
	assert.True(t, out.Integrity.Cheating)
	assert.Equal(t, []interview.ReasonCode{interview.ReasonDuplicateSubmission}, out.Integrity.Reasons)
}
