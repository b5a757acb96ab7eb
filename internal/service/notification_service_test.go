package service

import (
	"context"
	"testing"
	"time"

	"github.com/taazabazaar/internal/config"
	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/models"
	"github.com/taazabazaar/internal/queue"
	"github.com/taazabazaar/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationMessage(t *testing.T) {
	assert.Equal(t, "Your order order_1 is out for delivery.", NotificationMessage("order_1", constants.OrderStatusOutForDelivery))
	assert.Equal(t, "Your order order_1 status changed to returned.", NotificationMessage("order_1", "returned"))
	for _, status := range append(constants.OrderStatuses(), constants.OrderStatusCancelled) {
		_, ok := notificationTemplates[status]
		assert.True(t, ok, status)
	}
}

func TestNotificationServiceNotifyAndList(t *testing.T) {
	memory := repository.NewMemoryStore()
	svc := NewNotificationService(memory.Notifications())
	svc.now = fixedNow

	_, err := svc.Notify("", "u1", constants.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrValidation)

	created, err := svc.Notify("order_9", "u1", constants.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, "Your order order_9 has been confirmed.", created.Message)
	_, err = svc.Notify("order_9", "u2", constants.OrderStatusPreparing)
	require.NoError(t, err)

	list, err := svc.ListForUser("u1", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "order_9", list[0].OrderID)

	_, err = svc.ListForUser("", 10)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestNotificationDispatcherWritesDirectlyWithoutQueue(t *testing.T) {
	memory := repository.NewMemoryStore()
	notifications := NewNotificationService(memory.Notifications())
	client, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	require.NoError(t, err)

	dispatcher := NewNotificationDispatcher(client, notifications)
	order := &models.Order{ID: "order_5", UserID: "u5", Status: constants.OrderStatusDelivered, CreatedAt: time.Now()}
	require.NoError(t, dispatcher.Dispatch(context.Background(), order))

	list, err := notifications.ListForUser("u5", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, constants.OrderStatusDelivered, list[0].Status)

	var nilDispatcher *NotificationDispatcher
	assert.NoError(t, nilDispatcher.Dispatch(context.Background(), order))
}
