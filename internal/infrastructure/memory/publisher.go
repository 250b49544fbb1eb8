package memory

import (
	"context"
	"log"

	"github.com/taskvault/auth-service/internal/application/auth"
)

// NoopPublisher stands in for the mail transport when no broker is
// configured (dev bootstrap). It accepts everything.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishVerificationMail(ctx context.Context, evt auth.VerificationMailEvent) error {
	log.Printf("[noop-pub] verification mail: user_id=%s email=%s url=%s", evt.UserID, evt.Email, evt.URL)
	return nil
}
