package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dealerhub/dealership-service/internal/domain"
	"github.com/dealerhub/dealership-service/internal/media"
	"github.com/dealerhub/dealership-service/internal/repository"
	apperrors "github.com/dealerhub/dealership-service/pkg/util"
)

// VehicleInput carries fields for listing creation.
type VehicleInput struct {
	Title       string
	Brand       string
	Model       string
	VehicleType domain.VehicleType
	FuelType    domain.FuelType
	Year        int
	Price       float64
	Status      domain.VehicleStatus
	KmDriven    *int64
	Mileage     *float64
	Ownership   *domain.Ownership
}

// VehiclePatch carries a partial update; nil fields are left untouched.
type VehiclePatch struct {
	Title       *string
	Brand       *string
	Model       *string
	VehicleType *domain.VehicleType
	FuelType    *domain.FuelType
	Year        *int
	Price       *float64
	Status      *domain.VehicleStatus
	KmDriven    *int64
	Mileage     *float64
	Ownership   *domain.Ownership
}

// VehicleService coordinates listing CRUD and remote image cleanup.
type VehicleService struct {
	vehicles repository.VehicleRepository
	uploader media.Uploader
	cache    ListingCache
	logger   *zap.Logger
}

// NewVehicleService builds the service.
func NewVehicleService(vehicles repository.VehicleRepository, uploader media.Uploader, cache ListingCache, logger *zap.Logger) *VehicleService {
	return &VehicleService{vehicles: vehicles, uploader: uploader, cache: cache, logger: logger}
}

// List returns all listings, full-scan, cached for a short window.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, vehicles)
	return vehicles, nil
}

// Get returns a single listing by id.
func (s *VehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Vehicle")
		}
		return nil, apperrors.MapError(err)
	}
	return vehicle, nil
}

// Create persists a new listing with its uploaded image URLs. Title
// uniqueness is a separate lookup, not an atomic constraint; concurrent
// creates with the same title can race.
func (s *VehicleService) Create(ctx context.Context, input VehicleInput, imageURLs []string) (*domain.Vehicle, error) {
	if _, err := s.vehicles.GetByTitle(ctx, input.Title); err == nil {
		return nil, apperrors.NewConflict("Vehicle already exists")
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	status := input.Status
	if status == "" {
		status = domain.VehicleStatusAvailable
	}

	vehicle := &domain.Vehicle{
		Title:       input.Title,
		Brand:       input.Brand,
		Model:       input.Model,
		VehicleType: input.VehicleType,
		FuelType:    input.FuelType,
		Year:        input.Year,
		Price:       input.Price,
		Status:      status,
		KmDriven:    input.KmDriven,
		Mileage:     input.Mileage,
		Ownership:   input.Ownership,
		Images:      imageURLs,
	}
	if err := validateVehicle(vehicle); err != nil {
		return nil, err
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx)
	return vehicle, nil
}

// Update applies a field patch. Newly uploaded images append to the
// existing list, never replace it. The same field validators as creation
// run on the patched record.
func (s *VehicleService) Update(ctx context.Context, id string, patch VehiclePatch, newImageURLs []string) (*domain.Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyPatch(vehicle, patch)
	vehicle.Images = append(vehicle.Images, newImageURLs...)

	if err := validateVehicle(vehicle); err != nil {
		return nil, err
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Vehicle")
		}
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx)
	return vehicle, nil
}

// Delete removes a listing. Each associated remote image is destroyed
// best-effort first; failures are logged and never abort the record
// deletion.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	for _, imageURL := range vehicle.Images {
		s.destroyRemoteImage(ctx, imageURL)
	}

	if err := s.vehicles.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("Vehicle")
		}
		return apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx)
	return nil
}

// DeleteImage removes the image at the zero-based index, preserving the
// order of the remaining entries. Remote deletion is best-effort.
func (s *VehicleService) DeleteImage(ctx context.Context, id string, index int) (*domain.Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(vehicle.Images) {
		return nil, apperrors.NewValidationError("Invalid image index")
	}

	s.destroyRemoteImage(ctx, vehicle.Images[index])

	vehicle.Images = append(vehicle.Images[:index], vehicle.Images[index+1:]...)
	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("Vehicle")
		}
		return nil, apperrors.MapError(err)
	}
	s.cache.Invalidate(ctx)
	return vehicle, nil
}

// destroyRemoteImage reconstructs the provider id from a stored URL and
// issues a deletion. Parse and provider failures are logged only.
func (s *VehicleService) destroyRemoteImage(ctx context.Context, imageURL string) {
	if imageURL == "" {
		return
	}
	publicID := media.FullPublicID(imageURL, s.uploader.Folder())
	if publicID == "" {
		s.logger.Warn("could not derive public id from image url", zap.String("url", imageURL))
		return
	}
	if err := s.uploader.Destroy(ctx, publicID); err != nil {
		s.logger.Warn("failed to delete remote image",
			zap.String("public_id", publicID),
			zap.Error(err))
	}
}

func applyPatch(vehicle *domain.Vehicle, patch VehiclePatch) {
	if patch.Title != nil {
		vehicle.Title = *patch.Title
	}
	if patch.Brand != nil {
		vehicle.Brand = *patch.Brand
	}
	if patch.Model != nil {
		vehicle.Model = *patch.Model
	}
	if patch.VehicleType != nil {
		vehicle.VehicleType = *patch.VehicleType
	}
	if patch.FuelType != nil {
		vehicle.FuelType = *patch.FuelType
	}
	if patch.Year != nil {
		vehicle.Year = *patch.Year
	}
	if patch.Price != nil {
		vehicle.Price = *patch.Price
	}
	if patch.Status != nil {
		vehicle.Status = *patch.Status
	}
	if patch.KmDriven != nil {
		vehicle.KmDriven = patch.KmDriven
	}
	if patch.Mileage != nil {
		vehicle.Mileage = patch.Mileage
	}
	if patch.Ownership != nil {
		vehicle.Ownership = patch.Ownership
	}
}

func validateVehicle(vehicle *domain.Vehicle) error {
	if vehicle.Title == "" || vehicle.Brand == "" || vehicle.Model == "" {
		return apperrors.NewValidationError("title, brand, model are required")
	}
	if vehicle.Year <= 0 {
		return apperrors.NewValidationError("year is required")
	}
	if vehicle.Price <= 0 {
		return apperrors.NewValidationError("price is required")
	}
	if !vehicle.VehicleType.Valid() {
		return apperrors.NewValidationError("invalid vehicleType")
	}
	if !vehicle.FuelType.Valid() {
		return apperrors.NewValidationError("invalid fuelType")
	}
	if !vehicle.Status.Valid() {
		return apperrors.NewValidationError("invalid status")
	}
	if vehicle.Ownership != nil && !vehicle.Ownership.Valid() {
		return apperrors.NewValidationError("invalid ownership")
	}
	return nil
}
