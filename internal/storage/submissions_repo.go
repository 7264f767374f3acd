package storage

// internal/storage/submissions_repo.go
import (
	"context"
	"time"

	"contactApp/internal/core"

	"github.com/jmoiron/sqlx"
)

// SQLStore — заявки в PostgreSQL или MySQL
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Insert сохраняет заявку и заполняет ID и SubmittedAt
func (s *SQLStore) Insert(ctx context.Context, sub *Submission) error {
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}

	const q = `
		INSERT INTO contact_submissions (ref, name, email, company, message, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	args := []interface{}{sub.Ref, sub.Name, sub.Email, sub.Company, sub.Message, sub.SubmittedAt}

	// lib/pq не поддерживает LastInsertId
	if s.db.DriverName() == "postgres" {
		if err := s.db.QueryRowxContext(ctx, s.db.Rebind(q+" RETURNING id"), args...).Scan(&sub.ID); err != nil {
			core.LogError("insert contact submission", map[string]interface{}{"ref": sub.Ref, "error": err.Error()})
			return err
		}
		return nil
	}

	res, err := s.db.ExecContext(ctx, s.db.Rebind(q), args...)
	if err != nil {
		core.LogError("insert contact submission", map[string]interface{}{"ref": sub.Ref, "error": err.Error()})
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	sub.ID = id
	return nil
}

// List — последние заявки, новые первыми
func (s *SQLStore) List(ctx context.Context, limit, offset int) ([]Submission, error) {
	limit, offset = clampPage(limit, offset)

	const q = `
		SELECT id, ref, name, email, company, message, submitted_at
		FROM contact_submissions
		ORDER BY submitted_at DESC, id DESC
		LIMIT ? OFFSET ?`

	items := []Submission{}
	// db.SelectContext - Возвращает много строк (срез структур)
	if err := s.db.SelectContext(ctx, &items, s.db.Rebind(q), limit, offset); err != nil {
		core.LogError("list contact submissions", map[string]interface{}{
			"limit":  limit,
			"offset": offset,
			"error":  err.Error(),
		})
		return nil, err
	}
	return items, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return Close(s.db)
}
