package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"retail-insight/internal/model"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresRepository handles database operations: the row-chunk vector
// index plus query and feedback logs.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// InitSchema creates the tables and the vector extension if they do
// not exist yet. Safe to call on every startup.
func (r *PostgresRepository) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS row_chunks (
			id BIGSERIAL PRIMARY KEY,
			dataset_id TEXT NOT NULL,
			row_index INT NOT NULL,
			chunk_text TEXT NOT NULL,
			metadata JSONB,
			embedding vector(1536),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_row_chunks_dataset ON row_chunks (dataset_id)`,
		`CREATE TABLE IF NOT EXISTS query_logs (
			id BIGSERIAL PRIMARY KEY,
			query_id TEXT NOT NULL UNIQUE,
			dataset_id TEXT NOT NULL,
			query TEXT NOT NULL,
			intent TEXT NOT NULL,
			chart_hint TEXT NOT NULL,
			response_time_ms BIGINT NOT NULL,
			helpful BOOLEAN,
			comment TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

// ReplaceChunks swaps the stored index for a dataset in one
// transaction: delete everything, then insert the new chunks through a
// prepared statement.
func (r *PostgresRepository) ReplaceChunks(ctx context.Context, datasetID string, chunks []model.RowChunk) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM row_chunks WHERE dataset_id = $1`, datasetID); err != nil {
		return fmt.Errorf("failed to clear existing chunks: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO row_chunks (dataset_id, row_index, chunk_text, metadata, embedding)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if _, err := stmt.ExecContext(ctx, datasetID, c.RowIndex, c.Text, c.Metadata, c.Embedding); err != nil {
			return fmt.Errorf("failed to insert chunk for row %d: %w", c.RowIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CountChunks returns the number of indexed chunks for a dataset.
func (r *PostgresRepository) CountChunks(ctx context.Context, datasetID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM row_chunks WHERE dataset_id = $1`, datasetID)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

// NearestNeighbors returns the k chunks closest to the query embedding
// by cosine distance, nearest first.
func (r *PostgresRepository) NearestNeighbors(ctx context.Context, datasetID string, embedding []float32, k int) ([]model.ChunkMatch, error) {
	vec := pgvector.NewVector(embedding)
	query := `
		SELECT id, dataset_id, row_index, chunk_text, metadata, created_at,
			embedding <=> $2 AS distance
		FROM row_chunks
		WHERE dataset_id = $1
		ORDER BY distance ASC
		LIMIT $3
	`
	var matches []model.ChunkMatch
	if err := r.db.SelectContext(ctx, &matches, query, datasetID, vec, k); err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	return matches, nil
}

// DeleteChunks removes every indexed chunk for a dataset.
func (r *PostgresRepository) DeleteChunks(ctx context.Context, datasetID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM row_chunks WHERE dataset_id = $1`, datasetID); err != nil {
		return fmt.Errorf("failed to delete chunks: %w", err)
	}
	return nil
}

// LogQuery inserts one answered-query record.
func (r *PostgresRepository) LogQuery(ctx context.Context, rec model.QueryLog) error {
	query := `
		INSERT INTO query_logs (query_id, dataset_id, query, intent, chart_hint, response_time_ms)
		VALUES (:query_id, :dataset_id, :query, :intent, :chart_hint, :response_time_ms)
	`
	if _, err := r.db.NamedExecContext(ctx, query, rec); err != nil {
		return fmt.Errorf("failed to log query: %w", err)
	}
	return nil
}

// LogFeedback attaches user feedback to a logged query. Returns false
// when no query with that ID exists.
func (r *PostgresRepository) LogFeedback(ctx context.Context, queryID string, helpful bool, comment string) (bool, error) {
	query := `
		UPDATE query_logs
		SET helpful = $2, comment = NULLIF($3, '')
		WHERE query_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, queryID, helpful, comment)
	if err != nil {
		return false, fmt.Errorf("failed to log feedback: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// GetQueryLog fetches one answered-query record by ID.
func (r *PostgresRepository) GetQueryLog(ctx context.Context, queryID string) (*model.QueryLog, error) {
	var rec model.QueryLog
	err := r.db.GetContext(ctx, &rec, `
		SELECT query_id, dataset_id, query, intent, chart_hint, response_time_ms
		FROM query_logs
		WHERE query_id = $1
	`, queryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get query log: %w", err)
	}
	return &rec, nil
}
