package interview

import (
	"context"

	"go.uber.org/zap"

	"github.com/artem13815/screening/pkg/candidate"
)

// Notifier delivers the interview invitation to the candidate.
type Notifier interface {
	Invited(ctx context.Context, c candidate.Candidate, inv candidate.Invitation) error
}

// LogNotifier only logs invitations; mail delivery is not wired yet.
type LogNotifier struct{ Log *zap.Logger }

func (n LogNotifier) Invited(_ context.Context, c candidate.Candidate, inv candidate.Invitation) error {
	if n.Log == nil {
		return nil
	}
	n.Log.Info("interview invitation",
		zap.String("candidate_id", c.ID.String()),
		zap.String("email", c.Email),
		zap.String("link", inv.Link),
		zap.Time("expires_at", inv.ExpiresAt),
	)
	return nil
}
