package models

import "time"

const (
	StatusNew       = "New"
	StatusContacted = "Contacted"
	StatusScheduled = "Scheduled"
	StatusQuoteSent = "Quote Sent"
)

// Statuses lists the lead status labels in display order.
var Statuses = []string{StatusNew, StatusContacted, StatusScheduled, StatusQuoteSent}

func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Lead is a row of the quotes table.
type Lead struct {
	ID              int64     `json:"id"`
	Fullname        string    `json:"fullname"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	ServiceType     string    `json:"service_type"`
	SquareFootage   float64   `json:"square_footage"`
	AdditionalInfo  string    `json:"additional_info"`
	PhotoURLs       []string  `json:"photo_urls"`
	Estimate        float64   `json:"estimate"`
	AppointmentDate *string   `json:"appointment_date"`
	AppointmentTime *string   `json:"appointment_time"`
	Status          string    `json:"status"`
	AssignedTo      *string   `json:"assigned_to"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

type Estimator struct {
	ID       string `json:"id"`
	Fullname string `json:"fullname"`
}

type Service struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	BasePrice    float64 `json:"basePrice"`
	PricePerSqft float64 `json:"pricePerSqft"`
	Markup       float64 `json:"markup"`
}

// PricingConfig is stored under the "pricing" settings key.
type PricingConfig struct {
	LaborRate     float64   `json:"laborRate"`
	TravelFee     float64   `json:"travelFee"`
	MinCharge     float64   `json:"minCharge"`
	EmergencyRate string    `json:"emergencyRate"`
	Services      []Service `json:"services"`
}

type BusinessHours struct {
	Day     string `json:"day"`
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// BusinessConfig is stored under the "business" settings key.
type BusinessConfig struct {
	BusinessName    string          `json:"businessName"`
	OwnerName       string          `json:"ownerName"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	Address         string          `json:"address"`
	Description     string          `json:"description"`
	PrimaryCity     string          `json:"primaryCity"`
	ServiceRadius   string          `json:"serviceRadius"`
	AdditionalAreas string          `json:"additionalAreas"`
	Hours           []BusinessHours `json:"hours"`
}

type DayAvailability struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Lunch   string `json:"lunch"`
}

type BlockedDate struct {
	Label string `json:"label"`
	Date  string `json:"date"`
}

// AvailabilityConfig is stored under the "availability" settings key.
// Durations are kept as strings of whole units, as the dashboard edits them.
type AvailabilityConfig struct {
	BookingWindow string            `json:"bookingWindow"`
	MinNotice     string            `json:"minNotice"`
	QuoteDuration string            `json:"quoteDuration"`
	BufferTime    string            `json:"bufferTime"`
	Days          []DayAvailability `json:"days"`
	BlockedDates  []BlockedDate     `json:"blockedDates"`
}
