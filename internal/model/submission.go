package model

import "time"

// ClientInfo is coarse metadata about the submitting client
type ClientInfo struct {
	Platform   string `json:"platform,omitempty" bson:"platform,omitempty"`
	AppVersion string `json:"appVersion,omitempty" bson:"appVersion,omitempty"`
}

// SubmissionRecord is the durable snapshot of one completed interview.
// Immutable once written; its generated id correlates the Summary and
// HealthScore that arrive later.
type SubmissionRecord struct {
	ID          string             `json:"id" bson:"_id,omitempty"`
	UserID      string             `json:"userId" bson:"userId"`
	Responses   []AnsweredQuestion `json:"responses" bson:"responses"`
	Client      ClientInfo         `json:"client,omitempty" bson:"client,omitempty"`
	CompletedAt time.Time          `json:"completedAt" bson:"completedAt"`
}

// Summary is the AI-generated narrative for one submission
type Summary struct {
	SubmissionID string    `json:"submissionId" bson:"submissionId"`
	UserID       string    `json:"userId" bson:"userId"`
	Text         string    `json:"summary" bson:"summary"`
	GeneratedAt  time.Time `json:"generatedAt" bson:"generatedAt"`
}

// HealthScore is the AI-generated 0-10 score for one submission
type HealthScore struct {
	SubmissionID string    `json:"submissionId" bson:"submissionId"`
	UserID       string    `json:"userId" bson:"userId"`
	Score        float64   `json:"healthScore" bson:"healthScore"`
	GeneratedAt  time.Time `json:"generatedAt" bson:"generatedAt"`
}
