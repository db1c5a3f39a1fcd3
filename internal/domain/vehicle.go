package domain

import "time"

// VehicleType enumerates supported vehicle categories.
type VehicleType string

const (
	VehicleTypeCar   VehicleType = "Car"
	VehicleTypeTruck VehicleType = "Truck"
	VehicleTypeBike  VehicleType = "Bike"
	VehicleTypeSUV   VehicleType = "SUV"
	VehicleTypeVan   VehicleType = "Van"
)

// Valid reports whether the value is a known vehicle type.
func (v VehicleType) Valid() bool {
	switch v {
	case VehicleTypeCar, VehicleTypeTruck, VehicleTypeBike, VehicleTypeSUV, VehicleTypeVan:
		return true
	}
	return false
}

// FuelType enumerates supported fuel kinds.
type FuelType string

const (
	FuelTypePetrol   FuelType = "Petrol"
	FuelTypeDiesel   FuelType = "Diesel"
	FuelTypeElectric FuelType = "Electric"
	FuelTypeHybrid   FuelType = "Hybrid"
	FuelTypeCNG      FuelType = "CNG"
)

// Valid reports whether the value is a known fuel type.
func (f FuelType) Valid() bool {
	switch f {
	case FuelTypePetrol, FuelTypeDiesel, FuelTypeElectric, FuelTypeHybrid, FuelTypeCNG:
		return true
	}
	return false
}

// VehicleStatus enumerates listing availability.
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "Available"
	VehicleStatusSold      VehicleStatus = "Sold"
)

// Valid reports whether the value is a known status.
func (s VehicleStatus) Valid() bool {
	return s == VehicleStatusAvailable || s == VehicleStatusSold
}

// Ownership enumerates prior-owner counts.
type Ownership string

const (
	OwnershipFirst  Ownership = "First"
	OwnershipSecond Ownership = "Second"
	OwnershipThird  Ownership = "Third"
)

// Valid reports whether the value is a known ownership tier.
func (o Ownership) Valid() bool {
	return o == OwnershipFirst || o == OwnershipSecond || o == OwnershipThird
}

// Vehicle is the aggregate for dealership listings. Images holds remote
// image URLs in upload order.
type Vehicle struct {
	ID          string
	Title       string
	Brand       string
	Model       string
	VehicleType VehicleType
	FuelType    FuelType
	Year        int
	Price       float64
	Status      VehicleStatus
	KmDriven    *int64
	Mileage     *float64
	Ownership   *Ownership
	Images      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
