package model

import "testing"

func TestTripRecordApproved(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	cases := []struct {
		name  string
		score *float64
		want  bool
	}{
		{"no score", nil, false},
		{"zero", score(0), false},
		{"just below threshold", score(6.99), false},
		{"nearly at threshold", score(6.9999), false},
		{"at threshold", score(7.00), true},
		{"just above threshold", score(7.01), true},
		{"maximum", score(10), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trip := TripRecord{Score: tc.score}
			if got := trip.Approved(); got != tc.want {
				t.Errorf("Approved() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAnsweredQuestionAffirmative(t *testing.T) {
	cases := []struct {
		response string
		want     bool
	}{
		{"Yes", true},
		{"yes", true},
		{"YES", true},
		{"No", false},
		{"no", false},
		{"", false},
	}
	for _, tc := range cases {
		q := AnsweredQuestion{Response: tc.response}
		if got := q.Affirmative(); got != tc.want {
			t.Errorf("Affirmative(%q) = %v, want %v", tc.response, got, tc.want)
		}
	}
}

func TestAnsweredQuestionAnswered(t *testing.T) {
	q := AnsweredQuestion{Text: "Do you have diabetes?"}
	if q.Answered() {
		t.Error("Answered() = true before a response was recorded")
	}
	q.Response = "No"
	if !q.Answered() {
		t.Error("Answered() = false after a response was recorded")
	}
}
