package controller

import (
	"io"

	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/pkg/serverutils"
	"mcq-writer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISourceController interface {
	RegisterRoutes(r fiber.Router)
	SearchPubMed(ctx *fiber.Ctx) error
	RegisterPubMed(ctx *fiber.Ctx) error
	RegisterPDF(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type sourceController struct {
	sourceService service.ISourceService
}

func NewSourceController(sourceService service.ISourceService) ISourceController {
	return &sourceController{
		sourceService: sourceService,
	}
}

func (c *sourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/source/v1")
	h.Use(serverutils.AuthMiddleware)
	h.Post("pubmed/search", c.SearchPubMed)
	h.Post("pubmed/register", c.RegisterPubMed)
	h.Post("pdf/register", c.RegisterPDF)
	h.Get("", c.List)
	h.Get(":id", c.Show)
}

func (c *sourceController) SearchPubMed(ctx *fiber.Ctx) error {
	var req dto.PubMedSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sourceService.SearchPubMed(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search pubmed", res))
}

func (c *sourceController) RegisterPubMed(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.RegisterPubMedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sourceService.RegisterPubMed(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success register pubmed source", res))
}

func (c *sourceController) RegisterPDF(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart field 'file' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.sourceService.RegisterPDF(ctx.Context(), userId, fileHeader.Filename, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success register pdf source", res))
}

func (c *sourceController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid source id")
	}

	res, err := c.sourceService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "source not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show source", res))
}

func (c *sourceController) List(ctx *fiber.Ctx) error {
	res, err := c.sourceService.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sources", res))
}
