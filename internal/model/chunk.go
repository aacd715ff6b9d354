package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
)

// RowChunk is one dataset row rendered to text for embedding, as
// stored in the vector index.
type RowChunk struct {
	ID        string          `json:"id" db:"id"`
	DatasetID string          `json:"dataset_id" db:"dataset_id"`
	RowIndex  int             `json:"row_index" db:"row_index"`
	Text      string          `json:"text" db:"chunk_text"`
	Metadata  JSONMap         `json:"metadata,omitempty" db:"metadata"`
	Embedding pgvector.Vector `json:"-" db:"embedding"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// ChunkMatch is a nearest-neighbor result with its cosine distance
// (smaller is closer).
type ChunkMatch struct {
	RowChunk
	Distance float64 `json:"distance" db:"distance"`
}

// JSONMap represents a JSON object field
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), j)
	}
	return json.Unmarshal(bytes, j)
}
