package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/logging"
	"storefront/internal/service"
	"storefront/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

// Cart ids are opaque tokens; a malformed one can never name a cart, so it is
// reported the same way as an unknown one.
func parseCartID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("cartID"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "cart not found")
	}
	return id, nil
}

func (h *CartHTTP) CreateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.create_cart")

	cart, err := h.Svc.CreateCart(ctx)
	if err != nil {
		l.Warn("create_cart_error", "error", err)
		return httpError(err)
	}
	l.Info("create_cart_success", "cart_id", cart.ID)
	return c.JSON(http.StatusCreated, transport.NewCartResponse(cart, nil))
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	cartID, err := parseCartID(c)
	if err != nil {
		return err
	}
	resp, err := h.Svc.GetCart(c.Request().Context(), cartID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) DeleteCart(c echo.Context) error {
	cartID, err := parseCartID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteCart(c.Request().Context(), cartID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	cartID, err := parseCartID(c)
	if err != nil {
		return err
	}
	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.AddItem(ctx, cartID, req)
	if err != nil {
		l.Warn("add_item_error", "cart_id", cartID, "error", err)
		return httpError(err)
	}
	l.Info("add_item_success", "cart_id", cartID, "product_id", item.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, transport.NewCartItemResponse(*item))
}

func (h *CartHTTP) UpdateItem(c echo.Context) error {
	cartID, err := parseCartID(c)
	if err != nil {
		return err
	}
	itemID, err := parseUintParam(c, "itemID")
	if err != nil {
		return err
	}
	var req transport.UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.UpdateItem(c.Request().Context(), cartID, itemID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.NewCartItemResponse(*item))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	cartID, err := parseCartID(c)
	if err != nil {
		return err
	}
	itemID, err := parseUintParam(c, "itemID")
	if err != nil {
		return err
	}
	if err := h.Svc.RemoveItem(c.Request().Context(), cartID, itemID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
