package model

import "time"

// SurveySubmission is the inbound payload of one survey response. Pointer
// fields distinguish a missing key from a zero value, so "required" means the
// key was actually sent.
type SurveySubmission struct {
	Name         string  `json:"name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Age          *int    `json:"age" validate:"required,gte=0,lte=120"`
	Consent      *bool   `json:"consent" validate:"required,eq=true"`
	Rating       *int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comments     *string `json:"comments" validate:"omitempty,max=2000"`
	SubmissionID *string `json:"submission_id"`
}

// StoredSurveyRecord is one line of the append-only log. Email and age hold
// hex SHA-256 digests, never the plaintext values. Records are never mutated
// after creation.
type StoredSurveyRecord struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Age          string    `json:"age"`
	Consent      bool      `json:"consent"`
	Rating       int       `json:"rating"`
	Comments     *string   `json:"comments"`
	SubmissionID string    `json:"submission_id"`
	ReceivedAt   time.Time `json:"received_at"`
	IP           string    `json:"ip"`
	UserAgent    *string   `json:"user_agent"`
}
