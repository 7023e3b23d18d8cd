package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, DeliveryStatusPending.CanTransitionTo(DeliveryStatusSent))
	assert.True(t, DeliveryStatusPending.CanTransitionTo(DeliveryStatusFailed))

	// Terminal states never move again.
	assert.False(t, DeliveryStatusSent.CanTransitionTo(DeliveryStatusFailed))
	assert.False(t, DeliveryStatusSent.CanTransitionTo(DeliveryStatusPending))
	assert.False(t, DeliveryStatusFailed.CanTransitionTo(DeliveryStatusSent))
	assert.False(t, DeliveryStatusPending.CanTransitionTo(DeliveryStatusPending))
}

func TestDeliveryStatus_Terminal(t *testing.T) {
	assert.False(t, DeliveryStatusPending.Terminal())
	assert.True(t, DeliveryStatusSent.Terminal())
	assert.True(t, DeliveryStatusFailed.Terminal())
}

func TestNotificationDelivery_ScheduledAtValid(t *testing.T) {
	epoch := time.Unix(0, 0)
	preEpoch := time.Date(1969, 7, 20, 20, 17, 0, 0, time.UTC)
	future := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)

	assert.False(t, (&NotificationDelivery{ScheduledAt: nil}).ScheduledAtValid())
	assert.False(t, (&NotificationDelivery{ScheduledAt: &preEpoch}).ScheduledAtValid())
	assert.True(t, (&NotificationDelivery{ScheduledAt: &epoch}).ScheduledAtValid())
	assert.True(t, (&NotificationDelivery{ScheduledAt: &future}).ScheduledAtValid())
}
