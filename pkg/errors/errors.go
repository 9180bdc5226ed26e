package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")

	// Авторизация
	ErrEmptyAuthHeader   = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader = fmt.Errorf("неверный формат заголовка авторизации")
	ErrUnauthorized      = fmt.Errorf("неавторизован")
	ErrForbidden         = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrViewerNotFoundInContext = fmt.Errorf("ViewerID не найден в контексте запроса")

	// Сессия синхронизации
	ErrNoActiveSession = fmt.Errorf("нет активной сессии синхронизации")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
)

// ErrorList - соответствие известных ошибок HTTP-статусам.
var ErrorList = map[error]int{
	ErrInvalidToken:            http.StatusUnauthorized,
	ErrTokenExpired:            http.StatusUnauthorized,
	ErrEmptyAuthHeader:         http.StatusUnauthorized,
	ErrInvalidAuthHeader:       http.StatusUnauthorized,
	ErrUnauthorized:            http.StatusUnauthorized,
	ErrViewerNotFoundInContext: http.StatusUnauthorized,
	ErrForbidden:               http.StatusForbidden,
	ErrNotFound:                http.StatusNotFound,
	ErrNoActiveSession:         http.StatusConflict,
	ErrBadRequest:              http.StatusBadRequest,
}

// InvalidInputError - ошибка валидации входных данных.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
