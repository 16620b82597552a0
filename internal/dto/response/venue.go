package response

import "venue-booking/internal/data/entity"

type VenueResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	City         string  `json:"city"`
	OpenTime     string  `json:"open_time"`
	CloseTime    string  `json:"close_time"`
	PricePerHour float64 `json:"price_per_hour"`
}

type AvailabilityResponse struct {
	VenueID        string   `json:"venue_id"`
	PlayDate       string   `json:"play_date"`
	PricePerHour   float64  `json:"price_per_hour"`
	AvailableSlots []string `json:"available_slots"`
}

func VenueToResponse(venue *entity.Venue) VenueResponse {
	return VenueResponse{
		ID:           venue.ID.String(),
		Name:         venue.Name,
		City:         venue.City,
		OpenTime:     venue.OpenTime,
		CloseTime:    venue.CloseTime,
		PricePerHour: venue.PricePerHour,
	}
}
