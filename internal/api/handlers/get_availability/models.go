package get_availability

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FieldID   int64  `json:"fieldId"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
	Available bool   `json:"available"`
}
