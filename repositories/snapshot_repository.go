package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/league-tracker/storage"
)

var ErrSnapshotKeyRequired = errors.New("snapshot key is required")

type SnapshotRepository interface {
	Get(ctx context.Context, exec SQLExecutor, key string) ([]byte, error)
	Upsert(ctx context.Context, exec SQLExecutor, key string, data []byte) error
}

type postgresSnapshotRepository struct {
	db *sql.DB
}

func NewPostgresSnapshotRepository(db *sql.DB) SnapshotRepository {
	return &postgresSnapshotRepository{db: db}
}

func (r *postgresSnapshotRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSnapshotRepository) Get(ctx context.Context, exec SQLExecutor, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrSnapshotKeyRequired
	}
	executor := r.getExecutor(exec)
	query := `SELECT data FROM league_snapshots WHERE key = $1`

	var data []byte
	err := executor.QueryRowContext(ctx, query, key).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot %q: %w", key, err)
	}
	return data, nil
}

func (r *postgresSnapshotRepository) Upsert(ctx context.Context, exec SQLExecutor, key string, data []byte) error {
	if key == "" {
		return ErrSnapshotKeyRequired
	}
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO league_snapshots (key, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`

	_, err := executor.ExecContext(ctx, query, key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

// SnapshotStore binds the repository to one key so it can serve as the
// league's persistence slot.
type SnapshotStore struct {
	repo SnapshotRepository
	key  string
}

func NewSnapshotStore(repo SnapshotRepository, key string) *SnapshotStore {
	if key == "" {
		key = storage.DefaultKey
	}
	return &SnapshotStore{repo: repo, key: key}
}

func (s *SnapshotStore) Load(ctx context.Context) ([]byte, error) {
	return s.repo.Get(ctx, nil, s.key)
}

func (s *SnapshotStore) Save(ctx context.Context, data []byte) error {
	return s.repo.Upsert(ctx, nil, s.key, data)
}
