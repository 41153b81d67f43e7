package service

import "errors"

var (
	// ErrInvalidResponse is returned when an answer is not Yes or No
	ErrInvalidResponse = errors.New(`response must be "Yes" or "No"`)

	// ErrInterviewComplete is returned when answering a finished interview
	ErrInterviewComplete = errors.New("interview already complete")

	// ErrInterviewIncomplete is returned when a resubmission is requested
	// but there is no completed interview waiting to be submitted
	ErrInterviewIncomplete = errors.New("no completed interview to submit")

	// ErrSessionLocked is returned while a submission is in flight and the
	// session must not accept further answers
	ErrSessionLocked = errors.New("interview locked during submission")

	// ErrSubmissionInFlight guards against re-entrant double submission
	ErrSubmissionInFlight = errors.New("submission already in progress")

	// ErrNoPriorSubmission means trip analysis was requested before any
	// questionnaire was completed
	ErrNoPriorSubmission = errors.New("no completed questionnaire on record")

	// ErrUnsupportedCity means a city has no reference dataset
	ErrUnsupportedCity = errors.New("no reference dataset for city")

	// ErrIncompleteTripRequest means the city pair or travel dates are missing
	ErrIncompleteTripRequest = errors.New("current city, destination city and travel dates are required")
)
