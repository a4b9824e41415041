package models

// Vehicle is read-only from the auction side; vehicles are registered elsewhere.
type Vehicle struct {
	Ficha       string  `json:"ficha"`
	Year        int     `json:"year"`
	Model       string  `json:"model"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// VehicleRef is the vehicle reference held by an auction together with that
// auction's status, used to work out availability.
type VehicleRef struct {
	AuctionID string
	Ficha     string
	Status    Status
}
