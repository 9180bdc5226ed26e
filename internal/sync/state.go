package sync

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// State - эфемерное состояние одной сессии синхронизации: множества
// "уже увиденных" id по потокам, карта последних известных статусов
// заказов и курсоры "последнего увиденного времени" по потокам.
// Живет от входа до выхода из аккаунта, никогда не персистится.
//
// Внутри сессии множества только растут; единственная операция,
// которая их чистит - Reset, и вызывается она ровно в моменты
// установления и завершения сессии.
type State struct {
	mu       sync.RWMutex
	seen     map[string]map[uuid.UUID]struct{}
	statuses map[uuid.UUID]string
	cursors  map[string]time.Time
}

func NewState() *State {
	s := &State{}
	s.reset()
	return s
}

// IsNew регистрирует id как увиденный и сообщает, был ли он новым.
// Первый вызов выигрывает: все последующие вызовы с тем же id в рамках
// сессии возвращают false, каким бы путем (push или pull) событие ни
// пришло. Это единственный шлюз перед синтезом уведомления.
func (s *State) IsNew(stream string, id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.seen[stream]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		s.seen[stream] = set
	}
	if _, exists := set[id]; exists {
		return false
	}
	set[id] = struct{}{}
	return true
}

// AdvanceCursor сохраняет максимальный наблюдавшийся таймстемп потока.
// Курсор ограничивает последующие pull-запросы (created_at > cursor),
// чтобы опрос был инкрементальным, а не полным перечитыванием.
func (s *State) AdvanceCursor(stream string, ts time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ts.After(s.cursors[stream]) {
		s.cursors[stream] = ts
	}
}

func (s *State) Cursor(stream string) time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursors[stream]
}

func (s *State) LastStatus(orderID uuid.UUID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status, ok := s.statuses[orderID]
	return status, ok
}

func (s *State) SetStatus(orderID uuid.UUID, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[orderID] = status
}

// Reset атомарно очищает множества, статусы и курсоры. Вызывается при
// установлении сессии и при выходе из аккаунта.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *State) reset() {
	s.seen = make(map[string]map[uuid.UUID]struct{})
	s.statuses = make(map[uuid.UUID]string)
	s.cursors = make(map[string]time.Time)
}
