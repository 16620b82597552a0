package request

type CreateBookingRequest struct {
	VenueID  string   `json:"venue_id" validate:"required,uuid4"`
	PlayDate string   `json:"play_date" validate:"required,datetime=2006-01-02"`
	Slots    []string `json:"slots" validate:"required,min=1,dive,datetime=15:04"`
}
