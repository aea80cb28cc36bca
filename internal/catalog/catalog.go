package catalog

import "unbolt-api/internal/models"

// ListServices returns the fixed service catalog in display order
func ListServices() []models.Service {
	return []models.Service{
		{
			ID:          "auto_lockout",
			Name:        "Car Lockout",
			Category:    models.CategoryAutomobile,
			BasePrice:   79.99,
			Description: "Emergency car lockout service - we'll get you back in your vehicle",
		},
		{
			ID:          "key_programming",
			Name:        "Key Programming",
			Category:    models.CategoryAutomobile,
			BasePrice:   129.99,
			Description: "Program new keys and key fobs",
		},
		{
			ID:          "home_lockout",
			Name:        "Home Lockout",
			Category:    models.CategoryResidential,
			BasePrice:   89.99,
			Description: "Residential lockout service",
		},
		{
			ID:          "commercial_lockout",
			Name:        "Commercial Lockout",
			Category:    models.CategoryCommercial,
			BasePrice:   99.99,
			Description: "Business and commercial lockout service",
		},
	}
}

// ListVehicleTaxonomy returns the vehicle makes, models and years shown to clients.
// Quotes do not validate against it.
func ListVehicleTaxonomy() models.VehicleTaxonomy {
	return models.VehicleTaxonomy{
		Makes: []string{"Toyota", "Honda", "Ford", "Chevrolet", "BMW", "Mercedes", "Hyundai", "Kia"},
		Models: map[string][]string{
			"Toyota":    {"Camry", "Corolla", "RAV4", "Highlander", "Tacoma"},
			"Honda":     {"Accord", "Civic", "CR-V", "Pilot", "Odyssey"},
			"Ford":      {"F-150", "Explorer", "Escape", "Mustang", "Focus"},
			"Chevrolet": {"Silverado", "Equinox", "Malibu", "Tahoe", "Camaro"},
		},
		Years: []int{2018, 2019, 2020, 2021, 2022, 2023, 2024},
	}
}
