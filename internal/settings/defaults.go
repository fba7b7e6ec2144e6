package settings

import "github.com/Djberg2/GrndWrkv0/internal/models"

const (
	KeyPricing      = "pricing"
	KeyBusiness     = "business"
	KeyAvailability = "availability"
)

func DefaultPricing() models.PricingConfig {
	return models.PricingConfig{
		LaborRate:     45,
		TravelFee:     2.5,
		MinCharge:     75,
		EmergencyRate: "1.5",
		Services: []models.Service{
			{ID: 1, Name: "Lawn Mowing", BasePrice: 50, PricePerSqft: 0.05, Markup: 20},
			{ID: 2, Name: "Landscaping Design", BasePrice: 200, PricePerSqft: 0.15, Markup: 30},
			{ID: 3, Name: "Tree Removal", BasePrice: 150, PricePerSqft: 0.08, Markup: 25},
			{ID: 4, Name: "Hardscaping", BasePrice: 300, PricePerSqft: 0.25, Markup: 35},
		},
	}
}

func DefaultBusiness() models.BusinessConfig {
	return models.BusinessConfig{
		BusinessName:    "GreenScapes Landscaping",
		OwnerName:       "John Doe",
		Phone:           "(555) 123-4567",
		Email:           "john@greenscapes.com",
		Address:         "123 Business Park Drive\nSpringfield, IL 62701",
		Description:     "Professional landscaping services including lawn care, design, and maintenance for residential and commercial properties.",
		PrimaryCity:     "Springfield",
		ServiceRadius:   "25",
		AdditionalAreas: "Chatham, Rochester, Sherman, New Berlin",
		Hours: []models.BusinessHours{
			{Day: "Monday", Enabled: true, Start: "8", End: "17"},
			{Day: "Tuesday", Enabled: true, Start: "8", End: "17"},
			{Day: "Wednesday", Enabled: true, Start: "8", End: "17"},
			{Day: "Thursday", Enabled: true, Start: "8", End: "17"},
			{Day: "Friday", Enabled: true, Start: "8", End: "17"},
			{Day: "Saturday", Enabled: true, Start: "8", End: "14"},
			{Day: "Sunday", Enabled: false, Start: "8", End: "14"},
		},
	}
}

func DefaultAvailability() models.AvailabilityConfig {
	return models.AvailabilityConfig{
		BookingWindow: "30",
		MinNotice:     "24",
		QuoteDuration: "60",
		BufferTime:    "15",
		Days: []models.DayAvailability{
			{Name: "Monday", Enabled: true, Start: "8", End: "17", Lunch: "12-13"},
			{Name: "Tuesday", Enabled: true, Start: "8", End: "17", Lunch: "12-13"},
			{Name: "Wednesday", Enabled: true, Start: "8", End: "17", Lunch: "12-13"},
			{Name: "Thursday", Enabled: true, Start: "8", End: "17", Lunch: "12-13"},
			{Name: "Friday", Enabled: true, Start: "8", End: "17", Lunch: "12-13"},
			{Name: "Saturday", Enabled: true, Start: "8", End: "14", Lunch: "12-13"},
			{Name: "Sunday", Enabled: false, Start: "8", End: "14", Lunch: "12-13"},
		},
		BlockedDates: []models.BlockedDate{},
	}
}
