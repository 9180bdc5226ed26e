package sync

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"worktrack-portal/internal/entities"
)

// InboxCapacity - жесткий потолок инбокса: при переполнении выпадают
// самые старые записи.
const InboxCapacity = 50

// Inbox - упорядоченный список синтезированных уведомлений с флагами
// прочитанности. Новые записи встают в начало. Живет только в памяти
// сессии.
type Inbox struct {
	mu    sync.RWMutex
	items []entities.Notification
}

func NewInbox() *Inbox {
	return &Inbox{}
}

// Push назначает уведомлению id и таймстемп, ставит его в начало и
// усекает список до InboxCapacity.
func (i *Inbox) Push(n entities.Notification) entities.Notification {
	n.ID = uuid.New()
	n.CreatedAt = time.Now().UTC()
	n.Read = false

	i.mu.Lock()
	defer i.mu.Unlock()

	i.items = append([]entities.Notification{n}, i.items...)
	if len(i.items) > InboxCapacity {
		i.items = i.items[:InboxCapacity]
	}
	return n
}

// List возвращает копию списка - вызывающий не может повредить инбокс.
func (i *Inbox) List() []entities.Notification {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]entities.Notification, len(i.items))
	copy(out, i.items)
	return out
}

// UnreadCount - чистая проекция: количество записей с read=false.
func (i *Inbox) UnreadCount() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	count := 0
	for _, n := range i.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkAllRead идемпотентна: повторный вызов ничего не меняет.
func (i *Inbox) MarkAllRead() {
	i.mu.Lock()
	defer i.mu.Unlock()

	for idx := range i.items {
		i.items[idx].Read = true
	}
}

// MarkRead помечает одну запись прочитанной и возвращает ее.
func (i *Inbox) MarkRead(id uuid.UUID) (entities.Notification, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	for idx := range i.items {
		if i.items[idx].ID == id {
			i.items[idx].Read = true
			return i.items[idx], true
		}
	}
	return entities.Notification{}, false
}

func (i *Inbox) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.items)
}
