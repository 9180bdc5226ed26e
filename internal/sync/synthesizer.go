package sync

import (
	"fmt"

	"github.com/google/uuid"

	"worktrack-portal/internal/entities"
	"worktrack-portal/pkg/constants"
)

// Заголовки уведомлений, которые видит пользователь.
const (
	TitleStatusChanged = "Order Status Changed"
	TitleClientMessage = "Client Message"
	TitleNewComment    = "New Comment"
	TitleNewFile       = "New File Uploaded"
)

type EventKind int

const (
	KindStatusChanged EventKind = iota + 1
	KindCommentAdded
	KindFileUploaded
)

// Event - обнаруженное событие, дошедшее до синтезатора: оно уже прошло
// шлюз дедупликации и фильтры видимости. Actor - разрешенный профиль
// автора события; nil, если автор удален или события без автора.
type Event struct {
	Kind       EventKind
	Order      *entities.Order
	Transition *Transition
	Comment    *entities.OrderComment
	File       *entities.OrderFile
	Actor      *entities.Profile
}

// Отношение зрителя к актору события. relationSelf обрабатывается до
// таблицы (собственные действия никогда не уведомляют сами о себе).
type actorRelation int

const (
	// Актор - клиент (роль client).
	relationClientActor actorRelation = iota + 1
	// Любой другой случай: staff-актор, системное событие, удаленный автор.
	relationOtherActor
)

type ruleKey struct {
	kind      EventKind
	staffTier bool
	relation  actorRelation
}

type wordingRule func(ev Event) (title, message string)

// Таблица формулировок: (вид события, ярус роли зрителя, отношение к
// актору) -> формулировка. Новые роли и правила добавляются строками,
// а не ветвлениями по месту.
var wordingTable = map[ruleKey]wordingRule{
	{KindStatusChanged, true, relationClientActor}:  statusChangedWording,
	{KindStatusChanged, true, relationOtherActor}:   statusChangedWording,
	{KindStatusChanged, false, relationClientActor}: statusChangedWording,
	{KindStatusChanged, false, relationOtherActor}:  statusChangedWording,

	// Сообщение клиента видят только staff/admin - с именем автора.
	{KindCommentAdded, true, relationClientActor}: clientMessageWording,
	{KindCommentAdded, true, relationOtherActor}:  genericCommentWording,
	// Зрителю-клиенту личность автора не раскрывается никогда,
	// даже если автор - другой сотрудник.
	{KindCommentAdded, false, relationClientActor}: genericCommentWording,
	{KindCommentAdded, false, relationOtherActor}:  genericCommentWording,

	{KindFileUploaded, true, relationClientActor}:  fileUploadedWording,
	{KindFileUploaded, true, relationOtherActor}:   fileUploadedWording,
	{KindFileUploaded, false, relationClientActor}: fileUploadedWording,
	{KindFileUploaded, false, relationOtherActor}:  fileUploadedWording,
}

func statusChangedWording(ev Event) (string, string) {
	return TitleStatusChanged, fmt.Sprintf(
		"Order %s status changed from %q to %q",
		ev.Order.Code,
		constants.StatusLabel(ev.Transition.From),
		constants.StatusLabel(ev.Transition.To),
	)
}

func clientMessageWording(ev Event) (string, string) {
	return TitleClientMessage, fmt.Sprintf(
		"%s commented on order %s",
		ev.Actor.DisplayName(),
		ev.Order.Code,
	)
}

func genericCommentWording(ev Event) (string, string) {
	return TitleNewComment, fmt.Sprintf("A new comment was added to order %s", ev.Order.Code)
}

func fileUploadedWording(ev Event) (string, string) {
	return TitleNewFile, fmt.Sprintf(
		"File %q was uploaded to order %s",
		ev.File.FileName,
		ev.Order.Code,
	)
}

// Synthesize - чистая функция: из события и профиля зрителя собирает
// уведомление. ID и таймстемп не назначает - это делает инбокс при
// вставке. Возвращает false, если уведомлять не нужно.
func Synthesize(ev Event, viewer *entities.Profile) (entities.Notification, bool) {
	// Собственные действия никогда не уведомляют сами о себе.
	if ev.Actor != nil && ev.Actor.ID == viewer.ID {
		return entities.Notification{}, false
	}

	relation := relationOtherActor
	if ev.Actor != nil && ev.Actor.IsClient() {
		relation = relationClientActor
	}

	rule, ok := wordingTable[ruleKey{
		kind:      ev.Kind,
		staffTier: viewer.IsStaffTier(),
		relation:  relation,
	}]
	if !ok {
		return entities.Notification{}, false
	}

	title, message := rule(ev)
	n := entities.Notification{
		Title:   title,
		Message: message,
	}
	if ev.Order != nil {
		n.OrderID = uuid.NullUUID{UUID: ev.Order.ID, Valid: true}
	}
	return n, true
}
