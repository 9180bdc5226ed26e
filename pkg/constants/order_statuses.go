package constants

// --- СТАТУСЫ ЗАКАЗОВ (совпадают с enum `order_status` в БД) ---
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusOnHold     = "on_hold"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var OrderStatuses = []string{
	StatusNotStarted,
	StatusInProgress,
	StatusOnHold,
	StatusCompleted,
	StatusCancelled,
}

// Человекочитаемые названия статусов для уведомлений и экспорта.
var statusLabels = map[string]string{
	StatusNotStarted: "Not Started",
	StatusInProgress: "In Progress",
	StatusOnHold:     "On Hold",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

// StatusLabel возвращает название статуса. Для неизвестного кода
// возвращаем код как есть: переходы на уровне данных не ограничены,
// и падать из-за незнакомого значения нельзя.
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

func IsValidOrderStatus(code string) bool {
	for _, s := range OrderStatuses {
		if s == code {
			return true
		}
	}
	return false
}
