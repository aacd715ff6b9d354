package model

// QueryRequest represents a natural-language question about a dataset
type QueryRequest struct {
	DatasetID string     `json:"dataset_id" binding:"required"`
	Query     string     `json:"query" binding:"required"`
	Filter    *RowFilter `json:"filter,omitempty"`
}

// RowFilter restricts the dataset to rows whose column equals value
// before the engine runs (mirrors the upload UI's filter selector).
type RowFilter struct {
	Column string `json:"column" binding:"required"`
	Value  string `json:"value" binding:"required"`
}

// QueryResponse represents a computed answer
type QueryResponse struct {
	QueryID   string    `json:"query_id"`
	Answer    string    `json:"answer"`
	Intent    Intent    `json:"intent"`
	ChartHint ChartHint `json:"chart_hint"`
	Took      int64     `json:"took_ms"` // Response time in milliseconds
}

// UploadResponse represents a stored dataset with a small preview
type UploadResponse struct {
	Dataset DatasetInfo `json:"dataset"`
	Preview []Row       `json:"preview"`
}

// IndexRequest represents a request to (re)build the vector index for
// a dataset's rows
type IndexRequest struct {
	// Rebuild forces re-embedding even if chunks already exist.
	Rebuild bool `json:"rebuild,omitempty"`
}

// IndexResponse represents the result of an indexing run
type IndexResponse struct {
	DatasetID string `json:"dataset_id"`
	Chunks    int    `json:"chunks"`
	Took      int64  `json:"took_ms"`
}

// SimilarRequest represents a nearest-neighbor lookup over indexed rows
type SimilarRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k,omitempty"`
}

// SimilarResponse represents the ranked chunk matches
type SimilarResponse struct {
	Results []ChunkMatch `json:"results"`
	Took    int64        `json:"took_ms"`
}

// QueryLog is the persisted record of an answered query. The answer
// text itself is not stored.
type QueryLog struct {
	QueryID        string    `db:"query_id"`
	DatasetID      string    `db:"dataset_id"`
	Query          string    `db:"query"`
	Intent         Intent    `db:"intent"`
	ChartHint      ChartHint `db:"chart_hint"`
	ResponseTimeMs int64     `db:"response_time_ms"`
}

// FeedbackRequest represents user feedback on an answer
type FeedbackRequest struct {
	QueryID string `json:"query_id" binding:"required"`
	Helpful *bool  `json:"helpful" binding:"required"`
	Comment string `json:"comment,omitempty"`
}

// FeedbackResponse represents feedback response
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
