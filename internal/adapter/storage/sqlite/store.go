package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/lastframes/internal/domain"
	"github.com/bnema/lastframes/internal/port"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const dbName = "history.db"

type Store struct {
	db *sql.DB
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

func NewStore(dataDir string) (*Store, error) {
	registerHook()

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(f *domain.ExtractedFrame) error {
	ctx := context.Background()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO extracted_frames
			(run_id, video_path, frame_index, output_path, format, checksum, file_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.RunID, f.VideoPath, f.FrameIndex, f.OutputPath, f.Format, f.Checksum, f.FileSize, f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert frame: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert frame id: %w", err)
	}
	f.ID = id
	return nil
}

func (s *Store) ListRecent(limit int) ([]domain.ExtractedFrame, error) {
	if limit <= 0 {
		limit = 50
	}
	ctx := context.Background()
	rows, err := s.db.QueryContext(ctx, selectFrames+`
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent frames: %w", err)
	}
	return scanFrames(rows)
}

func (s *Store) ListByRun(runID string) ([]domain.ExtractedFrame, error) {
	ctx := context.Background()
	rows, err := s.db.QueryContext(ctx, selectFrames+`
		WHERE run_id = ?
		ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("list frames for run %s: %w", runID, err)
	}
	frames, err := scanFrames(rows)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, domain.ErrNotFound
	}
	return frames, nil
}

const selectFrames = `
	SELECT id, run_id, video_path, frame_index, output_path, format, checksum, file_size, created_at
	FROM extracted_frames`

// Helper conversions

func scanFrames(rows *sql.Rows) ([]domain.ExtractedFrame, error) {
	defer func() { _ = rows.Close() }()

	var result []domain.ExtractedFrame
	for rows.Next() {
		var f domain.ExtractedFrame
		if err := rows.Scan(&f.ID, &f.RunID, &f.VideoPath, &f.FrameIndex, &f.OutputPath,
			&f.Format, &f.Checksum, &f.FileSize, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

var _ port.HistoryStore = (*Store)(nil)
