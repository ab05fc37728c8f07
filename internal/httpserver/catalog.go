package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/logging"
	"storefront/internal/repo"
	"storefront/internal/service"
	"storefront/internal/transport"
	"storefront/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "invalid "+name)
	}
	return uint(v), nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *CatalogHTTP) ListCollections(c echo.Context) error {
	rows, err := h.Svc.ListCollections(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *CatalogHTTP) GetCollection(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	row, err := h.Svc.GetCollection(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, row)
}

func (h *CatalogHTTP) CreateCollection(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_collection")

	var req transport.CollectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	collection, err := h.Svc.CreateCollection(ctx, req)
	if err != nil {
		l.Warn("create_collection_error", "error", err)
		return httpError(err)
	}
	l.Info("create_collection_success", "collection_id", collection.ID)
	return c.JSON(http.StatusCreated, collection)
}

func (h *CatalogHTTP) UpdateCollection(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	var req transport.CollectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	collection, err := h.Svc.UpdateCollection(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, collection)
}

func (h *CatalogHTTP) DeleteCollection(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteCollection(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ListProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := repo.ProductFilter{
		CollectionID: uint(parseIntDefault(c.QueryParam("collection_id"), 0)),
		OrderBy:      c.QueryParam("ordering"),
		Offset:       offset,
		Limit:        limit,
	}

	items, total, err := h.Svc.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	product, err := h.Svc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return httpError(err)
	}
	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHTTP) UpdateProduct(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	product, err := h.Svc.UpdateProduct(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		l.Warn("delete_product_error", "product_id", id, "error", err)
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ClearInventory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.clear_inventory")

	var req transport.ClearInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	n, err := h.Svc.ClearInventory(ctx, req.IDs)
	if err != nil {
		l.Warn("clear_inventory_error", "error", err)
		return httpError(err)
	}
	l.Info("clear_inventory_success", "updated", n)
	return c.JSON(http.StatusOK, echo.Map{"updated": n})
}

func (h *CatalogHTTP) ListReviews(c echo.Context) error {
	productID, err := parseUintParam(c, "productID")
	if err != nil {
		return err
	}
	reviews, err := h.Svc.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *CatalogHTTP) CreateReview(c echo.Context) error {
	productID, err := parseUintParam(c, "productID")
	if err != nil {
		return err
	}
	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	review, err := h.Svc.CreateReview(c.Request().Context(), productID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, review)
}

func (h *CatalogHTTP) UpdateReview(c echo.Context) error {
	productID, err := parseUintParam(c, "productID")
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	review, err := h.Svc.UpdateReview(c.Request().Context(), productID, id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, review)
}

func (h *CatalogHTTP) DeleteReview(c echo.Context) error {
	productID, err := parseUintParam(c, "productID")
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteReview(c.Request().Context(), productID, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ListImages(c echo.Context) error {
	productID, err := parseUintParam(c, "productID")
	if err != nil {
		return err
	}
	images, err := h.Svc.ListImages(c.Request().Context(), productID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, images)
}

func (h *CatalogHTTP) AddImage(c echo.Context) error {
	productID, err := parseUintParam(c, "productID")
	if err != nil {
		return err
	}
	var req transport.ImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	img, err := h.Svc.AddImage(c.Request().Context(), productID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, img)
}

func (h *CatalogHTTP) DeleteImage(c echo.Context) error {
	productID, err := parseUintParam(c, "productID")
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteImage(c.Request().Context(), productID, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
