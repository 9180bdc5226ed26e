package sync

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"worktrack-portal/internal/dto"
	"worktrack-portal/internal/entities"
	"worktrack-portal/internal/feed"
	"worktrack-portal/internal/repositories"
	"worktrack-portal/pkg/constants"
	"worktrack-portal/pkg/eventbus"
	apperrors "worktrack-portal/pkg/errors"
)

type fakeOrderRepo struct {
	orders map[uuid.UUID]entities.Order
}

func (r *fakeOrderRepo) FindOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) ListOrders(ctx context.Context, scope repositories.Scope, filter dto.ListOrdersDTO) ([]entities.Order, uint64, error) {
	out := make([]entities.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeOrderRepo) ListUpdatedSince(ctx context.Context, scope repositories.Scope, since time.Time, limit uint64) ([]entities.Order, error) {
	var out []entities.Order
	for _, o := range r.orders {
		if !scope.StaffTier() && !(o.ClientID.Valid && o.ClientID.UUID == scope.ViewerID) {
			continue
		}
		if o.UpdatedAt.After(since) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, clientID, createdBy uuid.UUID, d dto.CreateOrderDTO) (*entities.Order, error) {
	return nil, nil
}

func (r *fakeOrderRepo) UpdateOrder(ctx context.Context, id uuid.UUID, d dto.UpdateOrderDTO) (*entities.Order, error) {
	return nil, nil
}

type fakeCommentRepo struct {
	comments []entities.OrderComment
}

func (r *fakeCommentRepo) CreateOrderComment(ctx context.Context, orderID, authorID uuid.UUID, d dto.CreateOrderCommentDTO) (*entities.OrderComment, error) {
	return nil, nil
}

func (r *fakeCommentRepo) ListByOrder(ctx context.Context, scope repositories.Scope, orderID uuid.UUID) ([]entities.OrderComment, error) {
	return r.comments, nil
}

func (r *fakeCommentRepo) ListCreatedSince(ctx context.Context, scope repositories.Scope, since time.Time, limit uint64) ([]entities.OrderComment, error) {
	var out []entities.OrderComment
	for _, c := range r.comments {
		if c.CreatedAt.After(since) {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeFileRepo struct {
	files []entities.OrderFile
}

func (r *fakeFileRepo) CreateOrderFile(ctx context.Context, file *entities.OrderFile) (*entities.OrderFile, error) {
	return file, nil
}

func (r *fakeFileRepo) FindOrderFile(ctx context.Context, id uuid.UUID) (*entities.OrderFile, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeFileRepo) FindOrderFileByPath(ctx context.Context, storagePath string) (*entities.OrderFile, error) {
	return nil, apperrors.ErrNotFound
}

func (r *fakeFileRepo) ListByOrder(ctx context.Context, scope repositories.Scope, orderID uuid.UUID) ([]entities.OrderFile, error) {
	return r.files, nil
}

func (r *fakeFileRepo) ListCreatedSince(ctx context.Context, scope repositories.Scope, since time.Time, limit uint64) ([]entities.OrderFile, error) {
	var out []entities.OrderFile
	for _, f := range r.files {
		if f.CreatedAt.After(since) {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]entities.Profile
}

func (r *fakeProfileRepo) FindProfile(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProfileRepo) FindProfileByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	return nil, apperrors.ErrNotFound
}

type sessionFixture struct {
	session  *Session
	orders   *fakeOrderRepo
	comments *fakeCommentRepo
	files    *fakeFileRepo
	profiles *fakeProfileRepo
	viewer   *entities.Profile
}

func newSessionFixture(t *testing.T, role string) *sessionFixture {
	t.Helper()

	viewer := &entities.Profile{
		ID:    uuid.New(),
		Email: "viewer@worktrack.local",
		Role:  role,
	}
	orders := &fakeOrderRepo{orders: map[uuid.UUID]entities.Order{}}
	comments := &fakeCommentRepo{}
	files := &fakeFileRepo{}
	profiles := &fakeProfileRepo{profiles: map[uuid.UUID]entities.Profile{viewer.ID: *viewer}}

	session := NewSession(viewer, orders, comments, files, profiles, eventbus.New(zap.NewNop()), zap.NewNop())
	return &sessionFixture{
		session:  session,
		orders:   orders,
		comments: comments,
		files:    files,
		profiles: profiles,
		viewer:   viewer,
	}
}

func (f *sessionFixture) addOrder(clientID uuid.UUID, code, status string) entities.Order {
	o := entities.Order{
		ID:        uuid.New(),
		Code:      code,
		Title:     "заказ " + code,
		Status:    status,
		ClientID:  uuid.NullUUID{UUID: clientID, Valid: true},
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now().Add(-time.Hour),
	}
	f.orders.orders[o.ID] = o
	return o
}

func orderEvent(o entities.Order) feed.ChangeEvent {
	return feed.ChangeEvent{Stream: constants.StreamOrders, Op: constants.OpUpdate, Order: &o}
}

func commentEvent(c entities.OrderComment) feed.ChangeEvent {
	return feed.ChangeEvent{Stream: constants.StreamComments, Op: constants.OpInsert, Comment: &c}
}

func TestSessionSnapshotSeedsWithoutNotifications(t *testing.T) {
	f := newSessionFixture(t, constants.RoleClient)
	o := f.addOrder(f.viewer.ID, "WT-1", constants.StatusNotStarted)

	require.NoError(t, f.session.snapshot(context.Background()))

	assert.Empty(t, f.session.Notifications(), "снимок не порождает уведомлений")
	assert.Len(t, f.session.Orders(), 1)
	assert.Equal(t, o.UpdatedAt, f.session.Cursor(constants.StreamOrders), "курсор засеян из снимка")

	status, known := f.session.state.LastStatus(o.ID)
	require.True(t, known)
	assert.Equal(t, constants.StatusNotStarted, status)
}

func TestSessionStatusChangeNotifiesClient(t *testing.T) {
	f := newSessionFixture(t, constants.RoleClient)
	o := f.addOrder(f.viewer.ID, "WT-2", constants.StatusNotStarted)
	require.NoError(t, f.session.snapshot(context.Background()))

	o.Status = constants.StatusInProgress
	o.UpdatedAt = time.Now()
	f.session.Ingest(context.Background(), orderEvent(o))

	notifications := f.session.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, TitleStatusChanged, notifications[0].Title)
	assert.Equal(t, `Order WT-2 status changed from "Not Started" to "In Progress"`, notifications[0].Message)
	assert.Equal(t, 1, f.session.UnreadCount())
}

// Одно и то же обновление, доставленное push и pull, дает ровно одно
// уведомление: второй проход видит совпадающий статус.
func TestSessionDuplicateStatusDeliveryNotifiesOnce(t *testing.T) {
	f := newSessionFixture(t, constants.RoleClient)
	o := f.addOrder(f.viewer.ID, "WT-3", constants.StatusNotStarted)
	require.NoError(t, f.session.snapshot(context.Background()))

	o.Status = constants.StatusCompleted
	o.UpdatedAt = time.Now()
	f.session.Ingest(context.Background(), orderEvent(o))
	f.session.Ingest(context.Background(), orderEvent(o))

	assert.Len(t, f.session.Notifications(), 1)
}

// Чужой заказ наблюдается (карта статусов, курсор), но клиент не
// получает ни уведомления, ни записи в коллекции.
func TestSessionForeignOrderObservedButSilentForClient(t *testing.T) {
	f := newSessionFixture(t, constants.RoleClient)
	foreign := f.addOrder(uuid.New(), "WT-4", constants.StatusNotStarted)

	f.session.Ingest(context.Background(), orderEvent(foreign))

	foreign.Status = constants.StatusInProgress
	foreign.UpdatedAt = time.Now()
	f.session.Ingest(context.Background(), orderEvent(foreign))

	assert.Empty(t, f.session.Notifications())
	assert.Empty(t, f.session.Orders())

	status, known := f.session.state.LastStatus(foreign.ID)
	require.True(t, known, "статус чужого заказа все равно отслеживается")
	assert.Equal(t, constants.StatusInProgress, status)
}

func TestSessionStaffSeesAllOrders(t *testing.T) {
	f := newSessionFixture(t, constants.RoleStaff)
	foreign := f.addOrder(uuid.New(), "WT-5", constants.StatusNotStarted)

	f.session.Ingest(context.Background(), orderEvent(foreign))
	assert.Len(t, f.session.Orders(), 1)

	foreign.Status = constants.StatusOnHold
	foreign.UpdatedAt = time.Now()
	f.session.Ingest(context.Background(), orderEvent(foreign))

	require.Len(t, f.session.Notifications(), 1)
	assert.Equal(t, TitleStatusChanged, f.session.Notifications()[0].Title)
}

func TestSessionDuplicateCommentIgnored(t *testing.T) {
	f := newSessionFixture(t, constants.RoleStaff)
	o := f.addOrder(uuid.New(), "WT-6", constants.StatusInProgress)
	require.NoError(t, f.session.snapshot(context.Background()))

	author := entities.Profile{ID: uuid.New(), Email: "client@worktrack.local", Role: constants.RoleClient}
	f.profiles.profiles[author.ID] = author

	c := entities.OrderComment{
		ID:        uuid.New(),
		OrderID:   o.ID,
		AuthorID:  uuid.NullUUID{UUID: author.ID, Valid: true},
		Content:   "когда будет готово?",
		CreatedAt: time.Now(),
	}
	// Push и pull принесли один и тот же комментарий.
	f.session.Ingest(context.Background(), commentEvent(c))
	f.session.Ingest(context.Background(), commentEvent(c))

	notifications := f.session.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, TitleClientMessage, notifications[0].Title)
}

func TestSessionInternalCommentHiddenFromClient(t *testing.T) {
	f := newSessionFixture(t, constants.RoleClient)
	o := f.addOrder(f.viewer.ID, "WT-7", constants.StatusInProgress)
	require.NoError(t, f.session.snapshot(context.Background()))

	c := entities.OrderComment{
		ID:         uuid.New(),
		OrderID:    o.ID,
		IsInternal: true,
		Content:    "внутренняя заметка",
		CreatedAt:  time.Now(),
	}
	f.session.Ingest(context.Background(), commentEvent(c))

	assert.Empty(t, f.session.Notifications())
	assert.Empty(t, f.session.CommentsFor(o.ID))
}

func TestSessionOwnCommentDoesNotNotify(t *testing.T) {
	f := newSessionFixture(t, constants.RoleClient)
	o := f.addOrder(f.viewer.ID, "WT-8", constants.StatusInProgress)
	require.NoError(t, f.session.snapshot(context.Background()))

	c := entities.OrderComment{
		ID:        uuid.New(),
		OrderID:   o.ID,
		AuthorID:  uuid.NullUUID{UUID: f.viewer.ID, Valid: true},
		Content:   "мой вопрос",
		CreatedAt: time.Now(),
	}
	f.session.Ingest(context.Background(), commentEvent(c))

	assert.Empty(t, f.session.Notifications(), "собственный комментарий не уведомляет")
	assert.Len(t, f.session.CommentsFor(o.ID), 1, "но в коллекцию попадает")
}

func TestSessionFileUploadNotifies(t *testing.T) {
	f := newSessionFixture(t, constants.RoleClient)
	o := f.addOrder(f.viewer.ID, "WT-9", constants.StatusInProgress)
	require.NoError(t, f.session.snapshot(context.Background()))

	uploader := entities.Profile{ID: uuid.New(), Role: constants.RoleStaff, Email: "staff@worktrack.local"}
	f.profiles.profiles[uploader.ID] = uploader

	ev := feed.ChangeEvent{
		Stream: constants.StreamFiles,
		Op:     constants.OpInsert,
		File: &entities.OrderFile{
			ID:         uuid.New(),
			OrderID:    o.ID,
			UploadedBy: uuid.NullUUID{UUID: uploader.ID, Valid: true},
			FileName:   "layout.png",
			CreatedAt:  time.Now(),
		},
	}
	f.session.Ingest(context.Background(), ev)

	notifications := f.session.Notifications()
	require.Len(t, notifications, 1)
	assert.Equal(t, TitleNewFile, notifications[0].Title)
	assert.Equal(t, `File "layout.png" was uploaded to order WT-9`, notifications[0].Message)
}

func TestSessionOpenMarksReadAndReturnsOrder(t *testing.T) {
	f := newSessionFixture(t, constants.RoleClient)
	o := f.addOrder(f.viewer.ID, "WT-10", constants.StatusNotStarted)
	require.NoError(t, f.session.snapshot(context.Background()))

	o.Status = constants.StatusInProgress
	o.UpdatedAt = time.Now()
	f.session.Ingest(context.Background(), orderEvent(o))

	notifications := f.session.Notifications()
	require.Len(t, notifications, 1)

	opened, err := f.session.Open(context.Background(), notifications[0].ID)
	require.NoError(t, err)
	require.NotNil(t, opened)
	assert.Equal(t, o.ID, opened.ID)
	assert.Equal(t, 0, f.session.UnreadCount())

	_, err = f.session.Open(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSessionStopResetsState(t *testing.T) {
	f := newSessionFixture(t, constants.RoleClient)
	o := f.addOrder(f.viewer.ID, "WT-11", constants.StatusNotStarted)
	require.NoError(t, f.session.snapshot(context.Background()))

	o.Status = constants.StatusInProgress
	o.UpdatedAt = time.Now()
	f.session.Ingest(context.Background(), orderEvent(o))
	require.NotEmpty(t, f.session.Notifications())

	f.session.Stop()

	assert.Empty(t, f.session.Orders())
	assert.True(t, f.session.Cursor(constants.StreamOrders).IsZero())

	_, known := f.session.state.LastStatus(o.ID)
	assert.False(t, known)
}
