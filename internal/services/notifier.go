package services

import (
	"fmt"
	"log"

	"court-booking/models"
	"court-booking/utils"

	pubnub "github.com/pubnub/go"
)

// Notifier is told about waitlist promotions after the state transition
// has committed. Delivery is best effort; a failed notification never
// affects booking state.
type Notifier interface {
	NotifyPromoted(b *models.Booking)
}

// PubNubNotifier pushes promotion messages to the user's channel. A
// circuit breaker keeps a dead PubNub endpoint from stacking up publish
// attempts.
type PubNubNotifier struct {
	pubnub  *pubnub.PubNub
	breaker *utils.CircuitBreaker
}

func NewPubNubNotifier(pn *pubnub.PubNub) *PubNubNotifier {
	return &PubNubNotifier{
		pubnub:  pn,
		breaker: utils.NewCircuitBreaker("pubnub"),
	}
}

func (n *PubNubNotifier) NotifyPromoted(b *models.Booking) {
	channel := fmt.Sprintf("user-%s", b.UserID)
	err := n.breaker.Do(func() error {
		_, _, err := n.pubnub.Publish().
			Channel(channel).
			Message(map[string]any{
				"type":       "waitlist_promoted",
				"court_id":   b.CourtID,
				"slot_index": b.SlotIndex,
				"message":    "A slot opened up - you're confirmed!",
			}).
			Execute()
		return err
	})
	if err != nil {
		log.Printf("Promotion notification for user %s failed: %v", b.UserID, err)
	}
}
