package sync

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktrack-portal/internal/entities"
	"worktrack-portal/pkg/constants"
)

func TestObserveStatusFirstSightingIsNotTransition(t *testing.T) {
	state := NewState()
	orderID := uuid.New()

	transition, changed := ObserveStatus(state, orderID, constants.StatusInProgress)
	assert.Nil(t, transition)
	assert.False(t, changed, "впервые увиденный заказ не дает перехода")

	// Но карта при этом засеяна.
	status, known := state.LastStatus(orderID)
	require.True(t, known)
	assert.Equal(t, constants.StatusInProgress, status)
}

func TestObserveStatusSameStatusIsNoop(t *testing.T) {
	state := NewState()
	orderID := uuid.New()

	ObserveStatus(state, orderID, constants.StatusOnHold)
	transition, changed := ObserveStatus(state, orderID, constants.StatusOnHold)
	assert.Nil(t, transition)
	assert.False(t, changed)
}

func TestObserveStatusDetectsTransition(t *testing.T) {
	state := NewState()
	orderID := uuid.New()

	ObserveStatus(state, orderID, constants.StatusNotStarted)
	transition, changed := ObserveStatus(state, orderID, constants.StatusInProgress)

	require.True(t, changed)
	require.NotNil(t, transition)
	assert.Equal(t, orderID, transition.OrderID)
	assert.Equal(t, constants.StatusNotStarted, transition.From)
	assert.Equal(t, constants.StatusInProgress, transition.To)
}

// Карта обновляется и тогда, когда перехода не будет: следующее
// наблюдение сравнивается уже с новым значением.
func TestObserveStatusAlwaysUpdatesMap(t *testing.T) {
	state := NewState()
	orderID := uuid.New()

	ObserveStatus(state, orderID, constants.StatusNotStarted)
	ObserveStatus(state, orderID, constants.StatusInProgress)
	ObserveStatus(state, orderID, constants.StatusCompleted)

	status, _ := state.LastStatus(orderID)
	assert.Equal(t, constants.StatusCompleted, status)

	_, changed := ObserveStatus(state, orderID, constants.StatusCompleted)
	assert.False(t, changed)
}

// При гонке двух путей доставки побеждает порядок обработки:
// событие, пришедшее вторым, сравнивается со статусом первого.
func TestObserveStatusArrivalOrderWins(t *testing.T) {
	state := NewState()
	orderID := uuid.New()

	ObserveStatus(state, orderID, constants.StatusNotStarted)

	// Push принес более позднее состояние раньше pull.
	transition, changed := ObserveStatus(state, orderID, constants.StatusCompleted)
	require.True(t, changed)
	assert.Equal(t, constants.StatusCompleted, transition.To)

	// Pull догнал с промежуточным состоянием - это новый переход
	// "назад", таймстемпы не сверяются.
	transition, changed = ObserveStatus(state, orderID, constants.StatusInProgress)
	require.True(t, changed)
	assert.Equal(t, constants.StatusCompleted, transition.From)
	assert.Equal(t, constants.StatusInProgress, transition.To)
}

func TestTransitionVisible(t *testing.T) {
	clientID := uuid.New()
	client := &entities.Profile{ID: clientID, Role: constants.RoleClient}
	staff := &entities.Profile{ID: uuid.New(), Role: constants.RoleStaff}
	admin := &entities.Profile{ID: uuid.New(), Role: constants.RoleAdmin}

	own := &entities.Order{ID: uuid.New(), ClientID: uuid.NullUUID{UUID: clientID, Valid: true}}
	foreign := &entities.Order{ID: uuid.New(), ClientID: uuid.NullUUID{UUID: uuid.New(), Valid: true}}

	assert.True(t, TransitionVisible(client, own))
	assert.False(t, TransitionVisible(client, foreign))
	assert.True(t, TransitionVisible(staff, foreign))
	assert.True(t, TransitionVisible(admin, foreign))
}
