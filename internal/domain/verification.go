package domain

import "time"

// Verification code purposes.
const (
	PurposeEmailVerification = "email_verification"
	PurposePhoneVerification = "phone_verification"
	PurposePasswordReset     = "password_reset"
)

// VerificationCode is a single-use 6-digit code sent to an identifier.
// PK: code_id. The identifier-index GSI supports redemption lookups.
// ExpiresAt doubles as the DynamoDB TTL attribute, so stale codes are
// reaped without a background job.
type VerificationCode struct {
	CodeID     string     `json:"id" dynamodbav:"code_id"`
	UserID     string     `json:"user_id" dynamodbav:"user_id"`
	Code       string     `json:"-" dynamodbav:"code"`
	Purpose    string     `json:"purpose" dynamodbav:"purpose"`
	Identifier string     `json:"identifier" dynamodbav:"identifier"`
	Used       bool       `json:"used" dynamodbav:"used"`
	UsedAt     *time.Time `json:"used_at,omitempty" dynamodbav:"used_at"`
	CreatedAt  time.Time  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt  int64      `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
