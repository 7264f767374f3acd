package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, driver), mock
}

func strPtr(s string) *string { return &s }

func TestSQLStore_InsertPostgres(t *testing.T) {
	db, mock := newMock(t, "postgres")
	store := NewSQLStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_submissions (ref, name, email, company, message, submitted_at)")).
		WithArgs("ref-1", "Alice", "a@b.com", "Acme", "Hello", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	sub := &Submission{Ref: "ref-1", Name: "Alice", Email: "a@b.com", Company: strPtr("Acme"), Message: "Hello"}
	require.NoError(t, store.Insert(context.Background(), sub))
	assert.Equal(t, int64(7), sub.ID)
	assert.False(t, sub.SubmittedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_InsertPostgresUsesNumberedPlaceholders(t *testing.T) {
	db, mock := newMock(t, "postgres")
	store := NewSQLStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("VALUES ($1, $2, $3, $4, $5, $6) RETURNING id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, store.Insert(context.Background(), &Submission{Ref: "r", Name: "n", Email: "e", Message: "m"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_InsertMySQL(t *testing.T) {
	db, mock := newMock(t, "mysql")
	store := NewSQLStore(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contact_submissions")).
		WithArgs("ref-2", "Bob", "bob@example.com", nil, "Hi", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))

	sub := &Submission{Ref: "ref-2", Name: "Bob", Email: "bob@example.com", Message: "Hi"}
	require.NoError(t, store.Insert(context.Background(), sub))
	assert.Equal(t, int64(9), sub.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_InsertError(t *testing.T) {
	db, mock := newMock(t, "mysql")
	store := NewSQLStore(db)

	mock.ExpectExec("INSERT INTO contact_submissions").WillReturnError(errors.New("connection refused"))

	err := store.Insert(context.Background(), &Submission{Ref: "r"})
	assert.EqualError(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_List(t *testing.T) {
	db, mock := newMock(t, "postgres")
	store := NewSQLStore(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "ref", "name", "email", "company", "message", "submitted_at"}).
		AddRow(2, "ref-2", "Bob", "bob@example.com", nil, "Second", now).
		AddRow(1, "ref-1", "Alice", "a@b.com", "Acme", "First", now.Add(-time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(50, 0).
		WillReturnRows(rows)

	items, err := store.List(context.Background(), 0, -3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ref-2", items[0].Ref)
	assert.Nil(t, items[0].Company)
	require.NotNil(t, items[1].Company)
	assert.Equal(t, "Acme", *items[1].Company)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_ListClampsLimit(t *testing.T) {
	db, mock := newMock(t, "mysql")
	store := NewSQLStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT ? OFFSET ?")).
		WithArgs(MaxListLimit, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "ref", "name", "email", "company", "message", "submitted_at"}))

	items, err := store.List(context.Background(), 10_000, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSanitizeDSN(t *testing.T) {
	assert.Equal(t, "postgres://app:***@db:5432/contact?sslmode=disable",
		sanitizeDSN("postgres://app:s3cret@db:5432/contact?sslmode=disable"))
	assert.Equal(t, "root:***@tcp(localhost:3306)/shop", sanitizeDSN("root:admin@tcp(localhost:3306)/shop"))
	assert.Equal(t, "host=db user=app password=*** dbname=contact", sanitizeDSN("host=db user=app password=s3cret dbname=contact"))
}

func TestWithMySQLParams(t *testing.T) {
	got := withMySQLParams("root:pw@tcp(localhost:3306)/contact?parseTime=false")
	assert.Contains(t, got, "?parseTime=false&charset=utf8mb4")
	assert.NotContains(t, got, "parseTime=true")
	assert.Contains(t, got, "multiStatements=false")
}
