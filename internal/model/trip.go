package model

import "time"

// ApprovalThreshold is the closed lower bound on the travel health score
// above which a trip is considered approved. 7.00 exactly is approved.
const ApprovalThreshold = 7.00

// TripRecord is a durable record of one analyzed trip. Score stays nil
// until the numeric scoring call succeeds.
type TripRecord struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	UserID          string    `json:"userId" bson:"userId"`
	CurrentCity     string    `json:"currentCity" bson:"currentCity"`
	DestinationCity string    `json:"destinationCity" bson:"destinationCity"`
	DepartureDate   time.Time `json:"departureDate" bson:"departureDate"`
	ReturnDate      time.Time `json:"returnDate" bson:"returnDate"`
	Analysis        string    `json:"analysis,omitempty" bson:"analysis,omitempty"`
	Score           *float64  `json:"travelHealthScore" bson:"travelHealthScore"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Approved derives the approval flag from the unrounded score
func (t *TripRecord) Approved() bool {
	return t.Score != nil && *t.Score >= ApprovalThreshold
}

// CityDataset is reference diet data for one supported city, stored as CSV
// text and shipped to the AI backend alongside trip analysis requests.
type CityDataset struct {
	City      string    `json:"city" bson:"_id"`
	DietCSV   string    `json:"dietCsv" bson:"dietCsv"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
