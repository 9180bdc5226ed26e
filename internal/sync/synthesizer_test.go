package sync

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktrack-portal/internal/entities"
	"worktrack-portal/pkg/constants"
)

func makeOrder(clientID uuid.UUID) *entities.Order {
	return &entities.Order{
		ID:       uuid.New(),
		Code:     "WT-42",
		Status:   constants.StatusInProgress,
		ClientID: uuid.NullUUID{UUID: clientID, Valid: true},
	}
}

func TestSynthesizeStatusChangedWording(t *testing.T) {
	clientID := uuid.New()
	viewer := &entities.Profile{ID: clientID, Role: constants.RoleClient}
	order := makeOrder(clientID)

	n, ok := Synthesize(Event{
		Kind:  KindStatusChanged,
		Order: order,
		Transition: &Transition{
			OrderID: order.ID,
			From:    constants.StatusNotStarted,
			To:      constants.StatusInProgress,
		},
	}, viewer)

	require.True(t, ok)
	assert.Equal(t, TitleStatusChanged, n.Title)
	assert.Equal(t, `Order WT-42 status changed from "Not Started" to "In Progress"`, n.Message)
	assert.Equal(t, order.ID, n.OrderID.UUID)
}

func TestSynthesizeSelfEventsNeverNotify(t *testing.T) {
	viewer := &entities.Profile{ID: uuid.New(), Role: constants.RoleStaff}
	order := makeOrder(uuid.New())

	_, ok := Synthesize(Event{
		Kind:    KindCommentAdded,
		Order:   order,
		Comment: &entities.OrderComment{ID: uuid.New(), OrderID: order.ID},
		Actor:   viewer,
	}, viewer)
	assert.False(t, ok, "собственное действие не порождает уведомления")
}

func TestSynthesizeClientCommentForStaffNamesAuthor(t *testing.T) {
	viewer := &entities.Profile{ID: uuid.New(), Role: constants.RoleStaff}
	actor := &entities.Profile{
		ID:       uuid.New(),
		Email:    "client@worktrack.local",
		FullName: null.StringFrom("Клиент Сидоров"),
		Role:     constants.RoleClient,
	}
	order := makeOrder(actor.ID)

	n, ok := Synthesize(Event{
		Kind:    KindCommentAdded,
		Order:   order,
		Comment: &entities.OrderComment{ID: uuid.New(), OrderID: order.ID},
		Actor:   actor,
	}, viewer)

	require.True(t, ok)
	assert.Equal(t, TitleClientMessage, n.Title)
	assert.Equal(t, "Клиент Сидоров commented on order WT-42", n.Message)
}

func TestSynthesizeClientViewerNeverSeesAuthorIdentity(t *testing.T) {
	clientID := uuid.New()
	viewer := &entities.Profile{ID: clientID, Role: constants.RoleClient}
	order := makeOrder(clientID)

	actors := []*entities.Profile{
		{ID: uuid.New(), Email: "staff@worktrack.local", FullName: null.StringFrom("Сотрудник Иванов"), Role: constants.RoleStaff},
		{ID: uuid.New(), Email: "other@worktrack.local", FullName: null.StringFrom("Другой Клиент"), Role: constants.RoleClient},
		nil, // удаленный автор
	}

	for _, actor := range actors {
		n, ok := Synthesize(Event{
			Kind:    KindCommentAdded,
			Order:   order,
			Comment: &entities.OrderComment{ID: uuid.New(), OrderID: order.ID},
			Actor:   actor,
		}, viewer)

		require.True(t, ok)
		assert.Equal(t, TitleNewComment, n.Title)
		assert.Equal(t, "A new comment was added to order WT-42", n.Message)
		assert.NotContains(t, n.Message, "Иванов")
		assert.NotContains(t, n.Message, "Клиент")
	}
}

func TestSynthesizeStaffCommentForStaffIsGeneric(t *testing.T) {
	viewer := &entities.Profile{ID: uuid.New(), Role: constants.RoleAdmin}
	actor := &entities.Profile{ID: uuid.New(), Role: constants.RoleStaff, Email: "staff@worktrack.local"}
	order := makeOrder(uuid.New())

	n, ok := Synthesize(Event{
		Kind:    KindCommentAdded,
		Order:   order,
		Comment: &entities.OrderComment{ID: uuid.New(), OrderID: order.ID},
		Actor:   actor,
	}, viewer)

	require.True(t, ok)
	assert.Equal(t, TitleNewComment, n.Title)
}

func TestSynthesizeFileUploadedWording(t *testing.T) {
	clientID := uuid.New()
	viewer := &entities.Profile{ID: clientID, Role: constants.RoleClient}
	order := makeOrder(clientID)

	n, ok := Synthesize(Event{
		Kind:  KindFileUploaded,
		Order: order,
		File:  &entities.OrderFile{ID: uuid.New(), OrderID: order.ID, FileName: "contract.pdf"},
		Actor: &entities.Profile{ID: uuid.New(), Role: constants.RoleStaff},
	}, viewer)

	require.True(t, ok)
	assert.Equal(t, TitleNewFile, n.Title)
	assert.Equal(t, `File "contract.pdf" was uploaded to order WT-42`, n.Message)
}
