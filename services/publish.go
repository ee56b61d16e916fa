// services/publish.go
package services

import (
	"context"
	"time"

	"basketball-league/events"

	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// publish sends a committed change to the event bus. Failures are logged
// and never undo the change.
func publish(pub events.Publisher, eventType string, payload any) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := pub.Publish(ctx, eventType, payload); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("event publish failed")
	}
}
