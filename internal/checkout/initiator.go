package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jaitlinson/pottery-shop-backend/internal/cart"
	"github.com/jaitlinson/pottery-shop-backend/internal/catalog"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrEmptyCart means checkout was triggered with nothing in the cart;
	// no network call is made in that case.
	ErrEmptyCart = errors.New("cart is empty")
)

// sessionRequest is the body POSTed to the checkout session endpoint.
type sessionRequest struct {
	Items []catalog.Product `json:"items"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Result is a created session plus the processor-hosted page to send the
// shopper to.
type Result struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectURL"`
}

// Initiator turns a cart into a checkout session: it POSTs the line items to
// the session endpoint, then resolves the redirect through the processor.
// Calls for the same cart are single-flight: triggering checkout twice while
// the first call is still running produces exactly one session.
type Initiator struct {
	endpointURL string
	client      *http.Client
	redirector  Redirector
	logger      *zap.Logger
	sfg         singleflight.Group
}

func NewInitiator(endpointURL string, redirector Redirector, logger *zap.Logger) *Initiator {
	return &Initiator{
		endpointURL: endpointURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		redirector:  redirector,
		logger:      logger,
	}
}

// Checkout runs the whole handoff for one cart. origin is the scheme+host+
// port of the page that triggered checkout; it is forwarded to the session
// endpoint so redirect URLs are built on the requesting page, not the
// fallback. On any failure the cart is left untouched so the shopper can
// retry.
func (i *Initiator) Checkout(ctx context.Context, cartID, origin string, crt *cart.Cart) (*Result, error) {
	if crt == nil || crt.Empty() {
		return nil, ErrEmptyCart
	}

	v, err, shared := i.sfg.Do(cartID, func() (interface{}, error) {
		return i.createAndResolve(ctx, origin, crt)
	})
	if shared {
		i.logger.Debug("coalesced duplicate checkout trigger", zap.String("cart_id", cartID))
	}
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

func (i *Initiator) createAndResolve(ctx context.Context, origin string, crt *cart.Cart) (*Result, error) {
	body, err := json.Marshal(sessionRequest{Items: crt.Items})
	if err != nil {
		return nil, fmt.Errorf("marshal cart items failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}

	res, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("checkout session request failed: %w", err)
	}
	defer res.Body.Close()

	var out sessionResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode session response failed: %w", err)
	}
	if out.Error != "" {
		return nil, fmt.Errorf("checkout declined: %s", out.Error)
	}
	if out.SessionID == "" {
		return nil, fmt.Errorf("session endpoint returned status %d without a session id", res.StatusCode)
	}

	url, err := i.redirector.CheckoutURL(ctx, out.SessionID)
	if err != nil {
		return nil, fmt.Errorf("checkout redirect failed: %w", err)
	}

	i.logger.Info("checkout session created",
		zap.String("session_id", out.SessionID),
		zap.Int("items", crt.Len()))
	return &Result{SessionID: out.SessionID, RedirectURL: url}, nil
}
