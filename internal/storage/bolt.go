package storage

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"contactApp/internal/core"

	bolt "go.etcd.io/bbolt"
)

var submissionsBucket = []byte("contact_submissions")

// BoltStore — заявки во встроенной БД bbolt (один файл, без внешнего сервера)
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt открывает (или создаёт) файл БД и бакет заявок
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		core.LogError("ошибка открытия bolt", map[string]interface{}{"path": path, "error": err.Error()})
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(submissionsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	core.LogInfo("bolt открыт", map[string]interface{}{"path": path})
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Insert(ctx context.Context, sub *Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(submissionsBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		sub.ID = int64(seq)
		val, err := json.Marshal(sub)
		if err != nil {
			return err
		}
		return b.Put(itob(seq), val)
	})
}

// List — новые первыми (ключи — возрастающая последовательность)
func (s *BoltStore) List(ctx context.Context, limit, offset int) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit, offset = clampPage(limit, offset)

	items := []Submission{}
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(submissionsBucket).Cursor()
		skipped := 0
		for k, v := c.Last(); k != nil && len(items) < limit; k, v = c.Prev() {
			if skipped < offset {
				skipped++
				continue
			}
			var sub Submission
			if err := json.Unmarshal(v, &sub); err != nil {
				return fmt.Errorf("decode submission %d: %w", binary.BigEndian.Uint64(k), err)
			}
			items = append(items, sub)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *BoltStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(submissionsBucket) == nil {
			return fmt.Errorf("bucket %s missing", submissionsBucket)
		}
		return nil
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
