package sync

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktrack-portal/internal/entities"
)

func TestInboxPushPrependsAndAssignsID(t *testing.T) {
	inbox := NewInbox()

	first := inbox.Push(entities.Notification{Title: "первое"})
	second := inbox.Push(entities.Notification{Title: "второе"})

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	list := inbox.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "новое уведомление встает первым")
	assert.Equal(t, first.ID, list[1].ID)
}

func TestInboxCapDropsOldest(t *testing.T) {
	inbox := NewInbox()

	var oldest entities.Notification
	for i := 0; i < InboxCapacity+5; i++ {
		n := inbox.Push(entities.Notification{Title: fmt.Sprintf("n-%d", i)})
		if i == 0 {
			oldest = n
		}
	}

	list := inbox.List()
	assert.Len(t, list, InboxCapacity)
	assert.Equal(t, "n-54", list[0].Title)
	for _, n := range list {
		assert.NotEqual(t, oldest.ID, n.ID, "самые старые записи выпали")
	}
}

func TestInboxUnreadCountAndMarkAllRead(t *testing.T) {
	inbox := NewInbox()
	inbox.Push(entities.Notification{Title: "a"})
	inbox.Push(entities.Notification{Title: "b"})
	assert.Equal(t, 2, inbox.UnreadCount())

	inbox.MarkAllRead()
	assert.Equal(t, 0, inbox.UnreadCount())

	// Идемпотентность: повторный вызов ничего не меняет.
	inbox.MarkAllRead()
	assert.Equal(t, 0, inbox.UnreadCount())
	assert.Len(t, inbox.List(), 2, "записи не исчезают, только помечаются")
}

func TestInboxMarkRead(t *testing.T) {
	inbox := NewInbox()
	a := inbox.Push(entities.Notification{Title: "a"})
	inbox.Push(entities.Notification{Title: "b"})

	marked, ok := inbox.MarkRead(a.ID)
	require.True(t, ok)
	assert.True(t, marked.Read)
	assert.Equal(t, 1, inbox.UnreadCount())

	_, ok = inbox.MarkRead(uuid.New())
	assert.False(t, ok, "неизвестный id не находится")
}

func TestInboxListReturnsCopy(t *testing.T) {
	inbox := NewInbox()
	inbox.Push(entities.Notification{Title: "a"})

	list := inbox.List()
	list[0].Title = "испорчено"

	assert.Equal(t, "a", inbox.List()[0].Title)
}
