package controller

import (
	"teen-coach-be/internal/dto"
	"teen-coach-be/internal/pkg/serverutils"
	"teen-coach-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IResourceController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type resourceController struct {
	resourceService service.IResourceService
}

func NewResourceController(resourceService service.IResourceService) IResourceController {
	return &resourceController{
		resourceService: resourceService,
	}
}

// Resource endpoints are intentionally unauthenticated: someone looking for
// a hotline should not have to log in first.
func (c *resourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resources/v1")
	h.Post("search", c.Search)
	h.Get("", c.List)
}

func (c *resourceController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchResourcesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.resourceService.Search(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search resources", res))
}

func (c *resourceController) List(ctx *fiber.Ctx) error {
	country := ctx.Query("country", "")

	res, err := c.resourceService.ListByCountry(ctx.Context(), country)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list resources", res))
}
