package mocks

import (
	"context"

	"wheelshare/internal/data/entity"
	"wheelshare/internal/dto/response"
	"wheelshare/internal/geocode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (geocode.Point, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(geocode.Point), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOTP(toEmail, otp string, expiryMinutes int) error {
	args := m.Called(toEmail, otp, expiryMinutes)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string, typ entity.NotificationType) error {
	args := m.Called(ctx, userID, title, message, typ)
	return args.Error(0)
}

func (m *MockNotificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID) ([]response.NotificationResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]response.NotificationResponse), args.Error(1)
}

func (m *MockNotificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// FakeDB satisfies database.PgxIface for transactional usecases. Begin hands
// out FakeTx values; the direct query methods are unused by those tests.
type FakeDB struct {
	BeginErr error
	LastTx   *FakeTx
}

func (f *FakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.BeginErr != nil {
		return nil, f.BeginErr
	}
	f.LastTx = &FakeTx{}
	return f.LastTx, nil
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("unexpected Query on FakeDB")
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("unexpected QueryRow on FakeDB")
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	panic("unexpected Exec on FakeDB")
}

func (f *FakeDB) Ping(ctx context.Context) error { return nil }

func (f *FakeDB) Close() {}

// FakeTx records commit/rollback so tests can assert transaction outcomes.
// The repositories touching it are mocks, so the query methods are never
// reached.
type FakeTx struct {
	Committed  bool
	RolledBack bool
	CommitErr  error
}

func (t *FakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *FakeTx) Commit(ctx context.Context) error {
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.Committed = true
	return nil
}

func (t *FakeTx) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

func (t *FakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	panic("unexpected CopyFrom on FakeTx")
}

func (t *FakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("unexpected SendBatch on FakeTx")
}

func (t *FakeTx) LargeObjects() pgx.LargeObjects {
	panic("unexpected LargeObjects on FakeTx")
}

func (t *FakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	panic("unexpected Prepare on FakeTx")
}

func (t *FakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	panic("unexpected Exec on FakeTx")
}

func (t *FakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("unexpected Query on FakeTx")
}

func (t *FakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("unexpected QueryRow on FakeTx")
}

func (t *FakeTx) Conn() *pgx.Conn { return nil }
