package storage

import (
	"context"

	"github.com/angelmondragon/foodcart/internal/repo"
	"github.com/angelmondragon/foodcart/pkg/db"
	"github.com/angelmondragon/foodcart/pkg/db/models"
)

// SQLBackend keeps records in the persisted_records table, keyed by
// (namespace, record_key) where namespace is "<prefix>:<session id>".
type SQLBackend struct {
	client  *db.Client
	records *repo.Records
	prefix  string
}

func NewSQLBackend(client *db.Client, prefix string) *SQLBackend {
	return &SQLBackend{client: client, records: repo.NewRecords(client.DB()), prefix: prefix}
}

func (b *SQLBackend) Session(sessionID string) Store {
	ns := sessionID
	if b.prefix != "" {
		ns = b.prefix + ":" + sessionID
	}
	return &sqlStore{records: b.records, namespace: ns}
}

func (b *SQLBackend) Ping(ctx context.Context) error { return b.client.Ping(ctx) }

func (b *SQLBackend) Close() error { return b.client.Close() }

type sqlStore struct {
	records   *repo.Records
	namespace string
}

func (s *sqlStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	rec, err := s.records.Find(ctx, s.namespace, key)
	if err != nil || rec == nil {
		return nil, false, err
	}
	return rec.Value, true, nil
}

func (s *sqlStore) Set(ctx context.Context, key string, value []byte) error {
	return s.records.Upsert(ctx, &models.PersistedRecord{Namespace: s.namespace, Key: key, Value: value})
}

func (s *sqlStore) Remove(ctx context.Context, key string) error {
	return s.records.Delete(ctx, s.namespace, key)
}
