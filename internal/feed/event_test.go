package feed

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"worktrack-portal/pkg/constants"
)

func TestParseNotifyPayloadOrder(t *testing.T) {
	orderID := uuid.New()
	raw := fmt.Sprintf(`{
		"stream": "orders",
		"op": "UPDATE",
		"row": {"id": %q, "code": "WT-7", "title": "Лендинг", "status": "in_progress",
			"created_at": "2026-03-01T10:00:00Z", "updated_at": "2026-03-01T11:00:00Z"}
	}`, orderID)

	ev, err := ParseNotifyPayload([]byte(raw))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, constants.StreamOrders, ev.Stream)
	assert.Equal(t, constants.OpUpdate, ev.Op)
	require.NotNil(t, ev.Order)
	assert.Equal(t, orderID, ev.Order.ID)
	assert.Equal(t, "in_progress", ev.Order.Status)
	assert.Nil(t, ev.Comment)
	assert.Nil(t, ev.File)
}

func TestParseNotifyPayloadComment(t *testing.T) {
	commentID, orderID := uuid.New(), uuid.New()
	raw := fmt.Sprintf(`{
		"stream": "order_comments",
		"op": "INSERT",
		"row": {"id": %q, "order_id": %q, "content": "готово?", "is_internal": true,
			"created_at": "2026-03-01T12:00:00Z"}
	}`, commentID, orderID)

	ev, err := ParseNotifyPayload([]byte(raw))
	require.NoError(t, err)
	require.NotNil(t, ev.Comment)
	assert.Equal(t, commentID, ev.Comment.ID)
	assert.Equal(t, orderID, ev.Comment.OrderID)
	assert.True(t, ev.Comment.IsInternal)
}

// DELETE сознательно игнорируется: ни события, ни ошибки.
func TestParseNotifyPayloadDeleteIgnored(t *testing.T) {
	raw := fmt.Sprintf(`{"stream": "orders", "op": "DELETE", "row": {"id": %q}}`, uuid.New())

	ev, err := ParseNotifyPayload([]byte(raw))
	assert.NoError(t, err)
	assert.Nil(t, ev)
}

func TestParseNotifyPayloadMalformed(t *testing.T) {
	cases := map[string]string{
		"не JSON":           `{{{`,
		"неизвестная операция": `{"stream": "orders", "op": "TRUNCATE", "row": {}}`,
		"неизвестный поток":  `{"stream": "audit_log", "op": "INSERT", "row": {"id": "x"}}`,
		"заказ без id":       `{"stream": "orders", "op": "UPDATE", "row": {"title": "без id"}}`,
		"комментарий без order_id": fmt.Sprintf(
			`{"stream": "order_comments", "op": "INSERT", "row": {"id": %q, "content": "x"}}`, uuid.New()),
		"битая строка": `{"stream": "orders", "op": "UPDATE", "row": {"id": 42}}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			ev, err := ParseNotifyPayload([]byte(raw))
			assert.Error(t, err)
			assert.Nil(t, ev)
		})
	}
}
