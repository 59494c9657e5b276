package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jaitlinson/pottery-shop-backend/internal/cart"
	"github.com/jaitlinson/pottery-shop-backend/internal/catalog"
	"go.uber.org/zap"
)

// Handler serves the session endpoint, the checkout trigger, and the
// success/cancel landing routes the processor redirects back to.
type Handler struct {
	sessions       SessionCreator
	initiator      *Initiator
	carts          *cart.Service
	defaultOrigin  string
	publishableKey string
	logger         *zap.Logger
}

func NewHandler(sessions SessionCreator, initiator *Initiator, carts *cart.Service, defaultOrigin, publishableKey string, logger *zap.Logger) *Handler {
	return &Handler{
		sessions:       sessions,
		initiator:      initiator,
		carts:          carts,
		defaultOrigin:  defaultOrigin,
		publishableKey: publishableKey,
		logger:         logger,
	}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	// All() so non-POST methods reach the handler and get a bare 405.
	app.All("/api/v1/checkout/session", h.createSession)
	app.Post("/api/v1/checkout", h.beginCheckout)
	app.Get("/api/v1/checkout/config", h.getConfig)
	app.Get("/success", h.success)
	app.Get("/cancel", h.cancel)
}

// createSession validates the posted items and builds a single-payment
// session with the processor. Redirect destinations are derived from the
// caller's Origin header; the fallback origin only matters in local
// development.
func (h *Handler) createSession(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.SendStatus(fiber.StatusMethodNotAllowed)
	}

	req := new(sessionRequest)
	if err := c.BodyParser(req); err != nil || len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No items provided"})
	}

	origin := c.Get(fiber.HeaderOrigin)
	if origin == "" {
		origin = h.defaultOrigin
	}
	successURL := origin + "/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := origin + "/cancel"

	sessionID, err := h.sessions.CreateSession(c.Context(), toLineItems(req.Items), successURL, cancelURL)
	if err != nil {
		h.logger.Error("create checkout session failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"sessionId": sessionID})
}

// beginCheckout hands the request's stored cart to the initiator and sends
// the shopper to the processor-hosted page. Failures leave the cart as it
// was.
func (h *Handler) beginCheckout(c *fiber.Ctx) error {
	cartID := cart.CartID(c)

	crt, err := h.carts.Get(c.Context(), cartID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.initiator.Checkout(c.Context(), cartID, c.Get(fiber.HeaderOrigin), crt)
	if errors.Is(err, ErrEmptyCart) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No items provided"})
	}
	if err != nil {
		h.logger.Error("checkout failed", zap.String("cart_id", cartID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Redirect(result.RedirectURL, fiber.StatusSeeOther)
}

// getConfig exposes the identifiers the storefront needs client-side. These
// are public by design; the secret key never leaves the gateway.
func (h *Handler) getConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"publishableKey": h.publishableKey,
		"origin":         h.defaultOrigin,
	})
}

type successResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type cancelResponse struct {
	Message string            `json:"message"`
	Items   []catalog.Product `json:"items"`
	Total   float64           `json:"total"`
}

// success is where the processor lands the shopper after payment. The
// persisted cart slot is cleared unconditionally; clearing an empty slot is
// a no-op.
func (h *Handler) success(c *fiber.Ctx) error {
	cartID := cart.CartID(c)
	if err := h.carts.Clear(c.Context(), cartID); err != nil {
		// The money moved; failing to clear must not turn the thank-you
		// page into an error.
		h.logger.Error("clearing cart after payment failed", zap.String("cart_id", cartID), zap.Error(err))
	}

	return c.JSON(successResponse{
		Message:   "Thank you for your order! You'll receive a confirmation email shortly.",
		SessionID: c.Query("session_id"),
	})
}

// cancel shows the preserved cart so the shopper can resume; it reads the
// store and never mutates it.
func (h *Handler) cancel(c *fiber.Ctx) error {
	crt, err := h.carts.Get(c.Context(), cart.CartID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	items := crt.Items
	if items == nil {
		items = []catalog.Product{}
	}
	return c.JSON(cancelResponse{
		Message: "Checkout cancelled. Your items are still in your cart.",
		Items:   items,
		Total:   crt.Total(),
	})
}
