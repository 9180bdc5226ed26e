package repositories

import (
	"github.com/google/uuid"

	"worktrack-portal/pkg/constants"
)

// Scope - от чьего имени выполняется запрос. Политика доступа живет
// на уровне данных (RLS у внешнего бэкенда); здесь мы лишь повторяем
// границы видимости в фильтрах выборок, чтобы pull-опрос и снапшот
// возвращали ровно те строки, которые зритель вправе видеть.
type Scope struct {
	ViewerID uuid.UUID
	Role     string
}

func (s Scope) StaffTier() bool {
	return constants.IsStaffTier(s.Role)
}
