package controller

import (
	"research-assistant-be/internal/dto"
	"research-assistant-be/internal/pkg/serverutils"
	"research-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Arxiv(ctx *fiber.Ctx) error
	ArxivPaper(ctx *fiber.Ctx) error
	Web(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search/v1")
	h.Get("arxiv", c.Arxiv)
	h.Get("arxiv/:id", c.ArxivPaper)
	h.Post("web", c.Web)
}

func (c *searchController) Arxiv(ctx *fiber.Ctx) error {
	query := ctx.Query("q", "")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter 'q' is required")
	}
	maxResults := ctx.QueryInt("max_results", 5)

	res, err := c.searchService.SearchArxiv(ctx.Context(), query, maxResults)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search arxiv", res))
}

func (c *searchController) ArxivPaper(ctx *fiber.Ctx) error {
	arxivID := ctx.Params("id")

	res, err := c.searchService.GetArxivPaper(ctx.Context(), arxivID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get arxiv paper", res))
}

func (c *searchController) Web(ctx *fiber.Ctx) error {
	var req dto.WebSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.SearchWeb(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search web", res))
}
