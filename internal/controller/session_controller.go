package controller

import (
	"mcq-writer-be/internal/dto"
	"mcq-writer-be/internal/pkg/serverutils"
	"mcq-writer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Last(ctx *fiber.Ctx) error
	Restore(ctx *fiber.Ctx) error
	AppendEvent(ctx *fiber.Ctx) error
	ListEvents(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.AuthMiddleware)
	h.Post("", c.Create)
	h.Get("last", c.Last)
	h.Get(":sessionId/restore", c.Restore)
	h.Get(":sessionId/events", c.ListEvents)
	h.Post("events", c.AppendEvent)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.sessionService.Create(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Last(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.sessionService.Last(ctx.Context(), userId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "no sessions for user")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get last session", res))
}

func (c *sessionController) Restore(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	sessionId := ctx.Params("sessionId")

	res, err := c.sessionService.Restore(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success restore session", res))
}

func (c *sessionController) AppendEvent(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.AppendEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.AppendEvent(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success append session event", res))
}

func (c *sessionController) ListEvents(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)
	sessionId := ctx.Params("sessionId")

	res, err := c.sessionService.ListEvents(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list session events", res))
}
