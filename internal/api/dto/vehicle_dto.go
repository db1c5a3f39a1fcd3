package dto

import (
	"time"

	"github.com/dealerhub/dealership-service/internal/domain"
)

// CreateVehicleRequest binds the text fields of the multipart create
// request; images arrive as files alongside.
type CreateVehicleRequest struct {
	Title       string               `json:"title" form:"title"`
	Brand       string               `json:"brand" form:"brand"`
	Model       string               `json:"model" form:"model"`
	VehicleType domain.VehicleType   `json:"vehicleType" form:"vehicleType"`
	FuelType    domain.FuelType      `json:"fuelType" form:"fuelType"`
	Year        int                  `json:"year" form:"year"`
	Price       float64              `json:"price" form:"price"`
	Status      domain.VehicleStatus `json:"status" form:"status"`
	KmDriven    *int64               `json:"kmDriven" form:"kmDriven"`
	Mileage     *float64             `json:"mileage" form:"mileage"`
	Ownership   *domain.Ownership    `json:"ownership" form:"ownership"`
}

// UpdateVehicleRequest binds a partial field patch; absent fields stay
// untouched.
type UpdateVehicleRequest struct {
	Title       *string               `json:"title" form:"title"`
	Brand       *string               `json:"brand" form:"brand"`
	Model       *string               `json:"model" form:"model"`
	VehicleType *domain.VehicleType   `json:"vehicleType" form:"vehicleType"`
	FuelType    *domain.FuelType      `json:"fuelType" form:"fuelType"`
	Year        *int                  `json:"year" form:"year"`
	Price       *float64              `json:"price" form:"price"`
	Status      *domain.VehicleStatus `json:"status" form:"status"`
	KmDriven    *int64                `json:"kmDriven" form:"kmDriven"`
	Mileage     *float64              `json:"mileage" form:"mileage"`
	Ownership   *domain.Ownership     `json:"ownership" form:"ownership"`
}

// VehicleResponse is the wire shape for a listing.
type VehicleResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Brand       string               `json:"brand"`
	Model       string               `json:"model"`
	VehicleType domain.VehicleType   `json:"vehicleType"`
	FuelType    domain.FuelType      `json:"fuelType"`
	Year        int                  `json:"year"`
	Price       float64              `json:"price"`
	Status      domain.VehicleStatus `json:"status"`
	KmDriven    *int64               `json:"kmDriven,omitempty"`
	Mileage     *float64             `json:"mileage,omitempty"`
	Ownership   *domain.Ownership    `json:"ownership,omitempty"`
	Images      []string             `json:"images"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// NewVehicleResponse maps a domain vehicle onto the wire shape.
func NewVehicleResponse(vehicle *domain.Vehicle) VehicleResponse {
	images := vehicle.Images
	if images == nil {
		images = []string{}
	}
	return VehicleResponse{
		ID:          vehicle.ID,
		Title:       vehicle.Title,
		Brand:       vehicle.Brand,
		Model:       vehicle.Model,
		VehicleType: vehicle.VehicleType,
		FuelType:    vehicle.FuelType,
		Year:        vehicle.Year,
		Price:       vehicle.Price,
		Status:      vehicle.Status,
		KmDriven:    vehicle.KmDriven,
		Mileage:     vehicle.Mileage,
		Ownership:   vehicle.Ownership,
		Images:      images,
		CreatedAt:   vehicle.CreatedAt,
		UpdatedAt:   vehicle.UpdatedAt,
	}
}
