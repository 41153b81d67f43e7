package model

import "time"

// ResumeState is the per-user interview resumption record kept in Redis.
// One structured record per user replaces ad hoc per-key flags: the saved
// cursor plus whether the questionnaire was ever completed.
type ResumeState struct {
	Cursor    int       `json:"cursor"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updatedAt"`
}
