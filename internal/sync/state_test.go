package sync

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"worktrack-portal/pkg/constants"
)

func TestStateIsNewFirstSeenWins(t *testing.T) {
	state := NewState()
	id := uuid.New()

	assert.True(t, state.IsNew(constants.StreamComments, id), "первый раз id должен быть новым")
	assert.False(t, state.IsNew(constants.StreamComments, id), "повтор того же id не должен быть новым")
	assert.False(t, state.IsNew(constants.StreamComments, id), "ни по какому пути доставки")

	// Тот же id в другом потоке - независимая запись.
	assert.True(t, state.IsNew(constants.StreamFiles, id))
}

func TestStateCursorKeepsMaximum(t *testing.T) {
	state := NewState()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	state.AdvanceCursor(constants.StreamOrders, base)
	state.AdvanceCursor(constants.StreamOrders, base.Add(-time.Hour))
	assert.Equal(t, base, state.Cursor(constants.StreamOrders), "курсор не откатывается назад")

	state.AdvanceCursor(constants.StreamOrders, base.Add(time.Minute))
	assert.Equal(t, base.Add(time.Minute), state.Cursor(constants.StreamOrders))

	// Курсоры потоков независимы.
	assert.True(t, state.Cursor(constants.StreamComments).IsZero())
}

func TestStateReset(t *testing.T) {
	state := NewState()
	id := uuid.New()
	orderID := uuid.New()

	state.IsNew(constants.StreamComments, id)
	state.SetStatus(orderID, "in_progress")
	state.AdvanceCursor(constants.StreamOrders, time.Now())

	state.Reset()

	assert.True(t, state.IsNew(constants.StreamComments, id), "после Reset id снова новый")
	_, known := state.LastStatus(orderID)
	assert.False(t, known, "после Reset статусы забыты")
	assert.True(t, state.Cursor(constants.StreamOrders).IsZero(), "после Reset курсоры обнулены")
}
