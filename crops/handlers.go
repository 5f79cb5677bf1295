package crops

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

var validate = validator.New()

type CropHandler struct {
	service *CropService
}

func NewCropHandler(s *CropService) *CropHandler {
	return &CropHandler{
		service: s,
	}
}

func RegisterCropRoutes(router fiber.Router, handler *CropHandler) {
	crops := router.Group("/crops")
	crops.Get("/", handler.ListCrops)
	crops.Post("/", handler.CreateCrop)
	crops.Put("/:uid", handler.UpdateCrop)
	crops.Get("/:uid/seeds", handler.ListSeeds)
	crops.Post("/:uid/seeds", handler.CreateSeed)
}

func parseUID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("uid"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid uuid")
	}
	return id, nil
}

func (h *CropHandler) CreateCrop(c fiber.Ctx) error {
	req := new(CropReq)
	if err := c.Bind().JSON(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	record, err := h.service.CreateCrop(c.Context(), *req)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"message": "crop created successfully",
		"uuid":    record.UUID,
	})
}

func (h *CropHandler) ListCrops(c fiber.Ctx) error {
	records, err := h.service.ListCrops(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(records)
}

func (h *CropHandler) UpdateCrop(c fiber.Ctx) error {
	id, err := parseUID(c)
	if err != nil {
		return err
	}
	req := new(CropReq)
	if err := c.Bind().JSON(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	record, err := h.service.UpdateCrop(c.Context(), id, *req)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"message": "crop updated successfully",
		"uuid":    record.UUID,
	})
}

func (h *CropHandler) CreateSeed(c fiber.Ctx) error {
	id, err := parseUID(c)
	if err != nil {
		return err
	}
	req := new(SeedReq)
	if err := c.Bind().JSON(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	record, err := h.service.CreateSeed(c.Context(), id, *req)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{
		"message": "seed created successfully",
		"uuid":    record.UUID,
	})
}

func (h *CropHandler) ListSeeds(c fiber.Ctx) error {
	id, err := parseUID(c)
	if err != nil {
		return err
	}
	records, err := h.service.ListSeeds(c.Context(), id)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(records)
}
