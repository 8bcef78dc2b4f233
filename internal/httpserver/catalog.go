package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/logging"
	instancemw "github.com/Skotchmaster/storefront/internal/middleware/instance"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

type CatalogHTTP struct{}

type productDetails struct {
	models.Product
	EffectivePrice string           `json:"effectivePrice"`
	Display        catalog.PriceTag `json:"display"`
}

func details(p models.Product) productDetails {
	return productDetails{
		Product:        p,
		EffectivePrice: p.EffectivePrice().String(),
		Display:        catalog.Tag(p),
	}
}

// fetchStatus maps a catalog failure to the HTTP status the client sees.
func fetchStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrSuperseded):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// GetProducts serves the home screen list. The full list is fetched on first
// use or when refresh=true; otherwise the instance's current view is paged.
func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products")
	view := instancemw.FromContext(c).Products

	snap := view.Snapshot()
	if !snap.Loaded || c.QueryParam("refresh") == "true" {
		var err error
		snap, err = view.Load(ctx)
		if err != nil {
			code := fetchStatus(err)
			l.Warn("get_products_failed", "status", code, "kind", catalog.KindOf(err).String(), "error", err)
			return echo.NewHTTPError(code, "catalog unavailable")
		}
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	items, meta := util.Page(snap.Products, page, size)

	l.Info("get_products_success", "count", len(snap.Products))
	return c.JSON(http.StatusOK, echo.Map{
		"query":    snap.Query,
		"degraded": snap.Degraded,
		"count":    len(snap.Products),
		"data":     items,
		"meta":     meta,
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not a positive integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}

	p, err := instancemw.FromContext(c).Product(ctx, id)
	if err != nil {
		code := fetchStatus(err)
		if code == http.StatusNotFound {
			l.Warn("get_product_failed", "status", code, "reason", "product not found", "error", err)
			return echo.NewHTTPError(code, "product not found")
		}
		l.Error("get_product_failed", "status", code, "reason", "cannot fetch product", "error", err)
		return echo.NewHTTPError(code, "cannot fetch product")
	}

	return c.JSON(http.StatusOK, details(p))
}

// SearchProducts updates the instance's view. When the remote search fails the
// last-known list is filtered locally and the response says degraded.
func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")
	view := instancemw.FromContext(c).Products

	if !view.Snapshot().Loaded {
		if _, err := view.Load(ctx); err != nil {
			l.Warn("search_preload_failed", "error", err)
		}
	}

	snap, err := view.Search(ctx, c.QueryParam("q"))
	if err != nil {
		code := fetchStatus(err)
		l.Warn("search_failed", "status", code, "error", err)
		if code == http.StatusConflict {
			return echo.NewHTTPError(code, "search superseded by a newer request")
		}
		return echo.NewHTTPError(code, "search failed")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	items, meta := util.Page(snap.Products, page, size)

	l.Info("search_success", "query", snap.Query, "degraded", snap.Degraded, "count", len(snap.Products))
	return c.JSON(http.StatusOK, echo.Map{
		"query":    snap.Query,
		"degraded": snap.Degraded,
		"count":    len(snap.Products),
		"data":     items,
		"meta":     meta,
	})
}
