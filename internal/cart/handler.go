package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jaitlinson/pottery-shop-backend/internal/catalog"
)

// CookieName identifies one shopper's cart across visits. The cookie carries
// an opaque id only; the cart contents live server-side in the store.
const CookieName = "cart_id"

// Handler delegates cart operations to the cart service. This keeps
// cart-specific HTTP routing isolated.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Delete("/api/v1/cart/items/:id", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

// CartID returns the shopper's cart id, issuing a fresh cookie on first
// touch.
func CartID(c *fiber.Ctx) string {
	id := c.Cookies(CookieName)
	if id == "" {
		id = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: "Lax",
		})
	}
	return id
}

type cartResponse struct {
	Items []catalog.Product `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func toResponse(cart *Cart) cartResponse {
	items := cart.Items
	if items == nil {
		items = []catalog.Product{}
	}
	return cartResponse{Items: items, Total: cart.Total(), Count: cart.Len()}
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	cart, err := h.service.Get(c.Context(), CartID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(toResponse(cart))
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	item := new(catalog.Product)
	if err := c.BodyParser(item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if item.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "product id is required"})
	}
	// the cart POST is an ingestion boundary like the catalog fetch: a
	// snapshot with no name or a negative price never enters the cart
	if !item.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product snapshot"})
	}

	cart, err := h.service.Add(c.Context(), CartID(c), *item)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(toResponse(cart))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	cart, err := h.service.Remove(c.Context(), CartID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(toResponse(cart))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(c.Context(), CartID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
