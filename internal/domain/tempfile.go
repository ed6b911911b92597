package domain

import "time"

// TempFile is the metadata row for a generated report/backup awaiting a
// one-shot download. The S3 object lives under tmp/<file_id>.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL; undownloaded files
// age out without a reaper.
type TempFile struct {
	FileID      string    `json:"file_id" dynamodbav:"file_id"`
	Object      string    `json:"-" dynamodbav:"object"`
	Filename    string    `json:"filename" dynamodbav:"filename"`
	ContentType string    `json:"content_type" dynamodbav:"content_type"`
	Size        int64     `json:"size" dynamodbav:"size"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt   int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
