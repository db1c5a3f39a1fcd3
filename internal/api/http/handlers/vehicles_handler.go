package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dealerhub/dealership-service/internal/api/dto"
	"github.com/dealerhub/dealership-service/internal/media"
	"github.com/dealerhub/dealership-service/internal/service"
	apperrors "github.com/dealerhub/dealership-service/pkg/util"
)

// VehiclesHandler manages listing endpoints.
type VehiclesHandler struct {
	service *service.VehicleService
}

// NewVehiclesHandler constructs handler.
func NewVehiclesHandler(vehicleService *service.VehicleService) *VehiclesHandler {
	return &VehiclesHandler{service: vehicleService}
}

// List GET /api/vehicles.
func (h *VehiclesHandler) List(c *fiber.Ctx) error {
	vehicles, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		items = append(items, dto.NewVehicleResponse(&vehicles[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// Get GET /api/vehicles/:id.
func (h *VehiclesHandler) Get(c *fiber.Ctx) error {
	vehicle, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewVehicleResponse(vehicle)})
}

// Create POST /api/vehicles. Runs behind the auth gate and the upload
// middleware chain, so at least one image URL is always present here.
func (h *VehiclesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	input := service.VehicleInput{
		Title:       req.Title,
		Brand:       req.Brand,
		Model:       req.Model,
		VehicleType: req.VehicleType,
		FuelType:    req.FuelType,
		Year:        req.Year,
		Price:       req.Price,
		Status:      req.Status,
		KmDriven:    req.KmDriven,
		Mileage:     req.Mileage,
		Ownership:   req.Ownership,
	}

	vehicle, err := h.service.Create(c.Context(), input, media.UploadedImageURLs(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    dto.NewVehicleResponse(vehicle),
		"message": "Vehicle created successfully with images",
	})
}

// Update PUT /api/vehicles/:id. Uploaded images append to the existing
// list.
func (h *VehiclesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	patch := service.VehiclePatch{
		Title:       req.Title,
		Brand:       req.Brand,
		Model:       req.Model,
		VehicleType: req.VehicleType,
		FuelType:    req.FuelType,
		Year:        req.Year,
		Price:       req.Price,
		Status:      req.Status,
		KmDriven:    req.KmDriven,
		Mileage:     req.Mileage,
		Ownership:   req.Ownership,
	}

	vehicle, err := h.service.Update(c.Context(), c.Params("id"), patch, media.UploadedImageURLs(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewVehicleResponse(vehicle),
		"message": "Vehicle updated successfully",
	})
}

// Delete DELETE /api/vehicles/:id.
func (h *VehiclesHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Vehicle deleted successfully",
	})
}

// DeleteImage DELETE /api/vehicles/:id/images/:imageIndex.
func (h *VehiclesHandler) DeleteImage(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("imageIndex"))
	if err != nil {
		return apperrors.NewValidationError("Invalid image index")
	}

	vehicle, svcErr := h.service.DeleteImage(c.Context(), c.Params("id"), index)
	if svcErr != nil {
		return svcErr
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewVehicleResponse(vehicle),
		"message": "Image deleted successfully",
	})
}
