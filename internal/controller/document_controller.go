package controller

import (
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/pkg/serverutils"
	"research-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	IngestURL(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Chunks(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	SemanticSearch(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	userService     service.IUserService
}

func NewDocumentController(documentService service.IDocumentService, userService service.IUserService) IDocumentController {
	return &documentController{
		documentService: documentService,
		userService:     userService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Post("upload", c.Upload)
	h.Post("ingest-url", c.IngestURL)
	h.Post("semantic-search", c.SemanticSearch)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/chunks", c.Chunks)
	h.Delete(":id", c.Delete)
}

func (c *documentController) Upload(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file in multipart form")
	}

	res, err := c.documentService.Upload(ctx.Context(), user.Id, file)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Document queued for processing", res))
}

func (c *documentController) IngestURL(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	var req dto.IngestURLRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.IngestURL(ctx.Context(), user.Id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Page queued for processing", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	res, err := c.documentService.List(ctx.Context(), user.Id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	res, err := c.documentService.Get(ctx.Context(), user.Id, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", res))
}

func (c *documentController) Chunks(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	res, err := c.documentService.GetChunks(ctx.Context(), user.Id, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document chunks", res))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}

	if err := c.documentService.Delete(ctx.Context(), user.Id, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}

func (c *documentController) SemanticSearch(ctx *fiber.Ctx) error {
	user, err := c.userService.GetOrCreateLocalUser(ctx.Context())
	if err != nil {
		return err
	}

	var req dto.SemanticSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.SemanticSearch(ctx.Context(), user.Id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success semantic search documents", res))
}
