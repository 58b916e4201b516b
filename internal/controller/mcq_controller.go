package controller

import (
	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/pkg/serverutils"
	"mcq-writer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMCQController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Refine(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	GenerateImage(ctx *fiber.Ctx) error
	RemoveImage(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type mcqController struct {
	mcqService service.IMCQService
}

func NewMCQController(mcqService service.IMCQService) IMCQController {
	return &mcqController{
		mcqService: mcqService,
	}
}

func (c *mcqController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mcq/v1")
	h.Use(serverutils.AuthMiddleware)
	h.Post("generate", c.Generate)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Post(":id/refine", c.Refine)
	h.Put(":id/status", c.UpdateStatus)
	h.Post(":id/image", c.GenerateImage)
	h.Delete(":id/image", c.RemoveImage)
}

func (c *mcqController) Generate(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.GenerateMCQRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mcqService.Generate(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate mcq", res))
}

func (c *mcqController) Refine(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mcq id")
	}

	var req dto.RefineMCQRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mcqService.Refine(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "mcq not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success refine mcq", res))
}

func (c *mcqController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mcq id")
	}

	var req dto.UpdateMCQStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mcqService.UpdateStatus(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "mcq not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update mcq status", res))
}

func (c *mcqController) GenerateImage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mcq id")
	}

	var req dto.GenerateImageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.mcqService.GenerateImage(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "mcq not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate mcq image", res))
}

func (c *mcqController) RemoveImage(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mcq id")
	}

	res, err := c.mcqService.RemoveImage(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "mcq not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove mcq image", res))
}

func (c *mcqController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid mcq id")
	}

	res, err := c.mcqService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "mcq not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show mcq", res))
}

func (c *mcqController) List(ctx *fiber.Ctx) error {
	status := ctx.Query("status")

	res, err := c.mcqService.List(ctx.Context(), status)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list mcqs", res))
}
