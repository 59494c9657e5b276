package catalog

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the read-only gallery endpoint.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
}

type productsResponse struct {
	Items    []Product `json:"items"`
	Advisory string    `json:"advisory,omitempty"`
}

// getProducts returns the whole catalog. A fetch failure is not fatal: the
// gallery stays usable with an empty list and an advisory message.
func (h *Handler) getProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.Context())
	if err != nil {
		return c.JSON(productsResponse{
			Items:    []Product{},
			Advisory: "The gallery is temporarily unavailable. Please check back soon.",
		})
	}
	if products == nil {
		products = []Product{}
	}
	return c.JSON(productsResponse{Items: products})
}
