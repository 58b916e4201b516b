package controller

import (
	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/pkg/serverutils"
	"mcq-writer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKBController interface {
	RegisterRoutes(r fiber.Router)
	ListTriplets(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	EditTriplet(ctx *fiber.Ctx) error
	QueryDistractors(ctx *fiber.Ctx) error
	CheckProvenance(ctx *fiber.Ctx) error
}

type kbController struct {
	kbService service.IKBService
}

func NewKBController(kbService service.IKBService) IKBController {
	return &kbController{
		kbService: kbService,
	}
}

func (c *kbController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/kb/v1")
	h.Use(serverutils.AuthMiddleware)
	h.Get("triplets", c.ListTriplets)
	h.Post("triplets/distractors", c.QueryDistractors)
	h.Put("triplets/:id/status", c.UpdateStatus)
	h.Put("triplets/:id", c.EditTriplet)
	h.Get("triplets/:id/provenance", c.CheckProvenance)
}

func (c *kbController) ListTriplets(ctx *fiber.Ctx) error {
	status := ctx.Query("status")

	var sourceId *uuid.UUID
	if raw := ctx.Query("source_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid source_id")
		}
		sourceId = &id
	}

	res, err := c.kbService.ListTriplets(ctx.Context(), status, sourceId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list triplets", res))
}

func (c *kbController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid triplet id")
	}

	var req dto.UpdateTripletStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.kbService.UpdateStatus(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "triplet not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update triplet status", res))
}

func (c *kbController) EditTriplet(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid triplet id")
	}

	var req dto.EditTripletRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.kbService.EditTriplet(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "triplet not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success edit triplet", res))
}

func (c *kbController) QueryDistractors(ctx *fiber.Ctx) error {
	var req dto.DistractorQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.kbService.QueryDistractors(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success query distractors", res))
}

func (c *kbController) CheckProvenance(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid triplet id")
	}

	res, err := c.kbService.CheckProvenance(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "triplet not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check provenance", res))
}
