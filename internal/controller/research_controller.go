package controller

import (
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/pkg/serverutils"
	"research-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResearchController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	QuickAnswer(ctx *fiber.Ctx) error
}

type researchController struct {
	researchService service.IResearchService
}

func NewResearchController(researchService service.IResearchService) IResearchController {
	return &researchController{
		researchService: researchService,
	}
}

func (c *researchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/research/v1")
	h.Post("query", c.Query)
	h.Post("quick-answer", c.QuickAnswer)
}

func (c *researchController) Query(ctx *fiber.Ctx) error {
	var req dto.ResearchQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.researchService.ProcessQuery(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process research query", res))
}

func (c *researchController) QuickAnswer(ctx *fiber.Ctx) error {
	var req dto.QuickAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.researchService.QuickAnswer(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success quick answer", res))
}
