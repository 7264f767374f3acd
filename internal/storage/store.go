package storage

// internal/storage/store.go
import (
	"context"
	"errors"
	"time"
)

// Submission — одна заявка контактной формы
type Submission struct {
	ID          int64     `db:"id" json:"id"`
	Ref         string    `db:"ref" json:"ref"` // публичный идентификатор (uuid), отдаётся клиенту
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Company     *string   `db:"company" json:"company,omitempty"`
	Message     string    `db:"message" json:"message"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

// Store — хранилище заявок (SQL или bbolt)
type Store interface {
	Insert(ctx context.Context, s *Submission) error
	List(ctx context.Context, limit, offset int) ([]Submission, error)
	Ping(ctx context.Context) error
	Close() error
}

// ErrUnknownDriver — DB_DRIVER не поддерживается
var ErrUnknownDriver = errors.New("storage: unknown driver")

// MaxListLimit — верхняя граница для List
const MaxListLimit = 500

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
