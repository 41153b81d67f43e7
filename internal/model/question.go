package model

import (
	"strings"
	"time"
)

// Category groups questions by the body system or topic they cover
type Category string

const (
	CategoryGeneral        Category = "general"
	CategoryCardiovascular Category = "cardiovascular"
	CategoryEndocrine      Category = "endocrine"
	CategoryRenal          Category = "renal"
	CategoryRespiratory    Category = "respiratory"
	CategoryNeurological   Category = "neurological"
	CategoryImmune         Category = "immune"
	CategoryLifestyle      Category = "lifestyle"
)

// Question is a catalog entry. Top-level questions may carry follow-ups;
// follow-ups never carry further follow-ups (the catalog is depth 2).
type Question struct {
	Text        string     `json:"text"`
	Category    Category   `json:"category"`
	Description string     `json:"description,omitempty"`
	FollowUps   []Question `json:"followUps,omitempty"`
	IsFollowUp  bool       `json:"isFollowUp"`
}

// AnsweredQuestion is the runtime instance of a catalog question inside an
// interview session. Response stays empty until the user answers.
type AnsweredQuestion struct {
	Text       string    `json:"text" bson:"text"`
	Category   Category  `json:"category" bson:"category"`
	IsFollowUp bool      `json:"isFollowUp" bson:"isFollowUp"`
	Response   string    `json:"response,omitempty" bson:"response,omitempty"`
	AnsweredAt time.Time `json:"answeredAt,omitempty" bson:"answeredAt,omitempty"`
}

// Answered reports whether a response has been recorded
func (q *AnsweredQuestion) Answered() bool {
	return q.Response != ""
}

// Affirmative reports whether the recorded response counts as "Yes".
// Responses are stored as given, so the check is case-insensitive.
func (q *AnsweredQuestion) Affirmative() bool {
	return strings.EqualFold(q.Response, "Yes")
}
