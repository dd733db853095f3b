package controller

import (
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/pkg/serverutils"
	"research-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	GetActive(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	Activate(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
	userService    service.IUserService
}

func NewSessionController(sessionService service.ISessionService, userService service.IUserService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
		userService:    userService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get("active", c.GetActive)
	h.Get(":id/history", c.GetHistory)
	h.Put(":id/activate", c.Activate)
	h.Delete(":id", c.Delete)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Create(ctx.Context(), user.Id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	res, err := c.sessionService.List(ctx.Context(), user.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) GetActive(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	res, err := c.sessionService.GetActive(ctx.Context(), user.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get active session", res))
}

func (c *sessionController) GetHistory(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	limit := ctx.QueryInt("limit", 0)

	res, err := c.sessionService.GetHistory(ctx.Context(), user.Id, id, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session history", res))
}

func (c *sessionController) Activate(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.sessionService.Activate(ctx.Context(), user.Id, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success activate session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	if err := c.sessionService.Delete(ctx.Context(), user.Id, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}
