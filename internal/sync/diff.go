package sync

import (
	"github.com/google/uuid"

	"worktrack-portal/internal/entities"
)

// Transition - обнаруженный переход статуса заказа.
type Transition struct {
	OrderID uuid.UUID
	From    string
	To      string
}

// ObserveStatus сравнивает наблюдаемый статус заказа с последним
// известным. Заказ без записи в карте считается впервые обнаруженным:
// перехода нет (иначе при первой загрузке случился бы шторм
// уведомлений). Карта обновляется безусловно и в последнюю очередь -
// это завершающий шаг наблюдения независимо от того, будет ли
// уведомление.
//
// При гонке push и pull за один цикл побеждает порядок обработки,
// а не таймстемп события - это сознательно сохраненное поведение.
func ObserveStatus(state *State, orderID uuid.UUID, status string) (*Transition, bool) {
	prev, known := state.LastStatus(orderID)
	state.SetStatus(orderID, status)

	if !known || prev == status {
		return nil, false
	}
	return &Transition{OrderID: orderID, From: prev, To: status}, true
}

// TransitionVisible - имеет ли зритель право на уведомление о переходе:
// клиент - только по собственным заказам, staff/admin - по всем.
func TransitionVisible(viewer *entities.Profile, order *entities.Order) bool {
	if viewer.IsStaffTier() {
		return true
	}
	return order.OwnedBy(viewer.ID)
}
