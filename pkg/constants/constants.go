package constants

//============== РОЛИ ==============

// Коды ролей. Совпадают с enum `profile_role` в БД.
const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleClient = "client"
)

// IsStaffTier - admin и staff равнозначны для правил видимости.
// Разница между ними проявляется только в административных действиях.
func IsStaffTier(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}

//============== ПОТОКИ СОБЫТИЙ ==============

// Имена потоков изменений. Совпадают с именами таблиц,
// которые приходят в payload от pg_notify.
const (
	StreamOrders   = "orders"
	StreamComments = "order_comments"
	StreamFiles    = "order_files"
)

// Канал, который слушает push-подписка (см. миграцию с триггерами).
const ChangeFeedChannel = "worktrack_changes"

//============== ОПЕРАЦИИ ИЗМЕНЕНИЙ ==============

const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

//============== КАТЕГОРИИ ФАЙЛОВ ==============

const (
	FileCategoryDocument = "document"
	FileCategoryImage    = "image"
	FileCategoryContract = "contract"
	FileCategoryOther    = "other"
)

var FileCategories = []string{
	FileCategoryDocument,
	FileCategoryImage,
	FileCategoryContract,
	FileCategoryOther,
}

func IsValidFileCategory(category string) bool {
	for _, c := range FileCategories {
		if c == category {
			return true
		}
	}
	return false
}
