package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/cart"
	"github.com/Skotchmaster/storefront/internal/catalog"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	instancemw "github.com/Skotchmaster/storefront/internal/middleware/instance"
)

type CartHTTP struct {
	Events events.Publisher
}

type lineView struct {
	cart.LineItem
	Subtotal        decimal.Decimal `json:"subtotal"`
	SubtotalDisplay string          `json:"subtotal_display"`
}

type cartView struct {
	Items        []lineView      `json:"items"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
	ItemCount    int             `json:"item_count"`
}

// render builds the response from one snapshot so totals always match lines.
func render(s *cart.Store) cartView {
	items := s.Items()
	v := cartView{Items: make([]lineView, 0, len(items)), Total: decimal.Zero}
	for _, li := range items {
		sub := li.Subtotal()
		v.Items = append(v.Items, lineView{LineItem: li, Subtotal: sub, SubtotalDisplay: catalog.FormatPrice(sub)})
		v.Total = v.Total.Add(sub)
		v.ItemCount += li.Quantity
	}
	v.TotalDisplay = catalog.FormatPrice(v.Total)
	return v
}

func productID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil && id > 0
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	inst := instancemw.FromContext(c)
	return c.JSON(http.StatusOK, render(inst.Cart))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")
	inst := instancemw.FromContext(c)

	var req struct {
		ProductID int `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID < 1 {
		l.Warn("add_to_cart_error", "status", 400, "reason", "product_id required")
		return echo.NewHTTPError(http.StatusBadRequest, "product_id required")
	}

	p, err := inst.Product(ctx, req.ProductID)
	if err != nil {
		code := fetchStatus(err)
		l.Warn("add_to_cart_error", "status", code, "product_id", req.ProductID, "error", err)
		return echo.NewHTTPError(code, "cannot resolve product")
	}

	li := inst.Cart.Add(p)
	publish(c, h.Events, events.TopicCart, events.Event{Type: "item_added", ProductID: p.ID, Quantity: li.Quantity})

	l.Info("item_added_to_cart", "product_id", p.ID, "quantity", li.Quantity)
	return c.JSON(http.StatusCreated, render(inst.Cart))
}

// UpdateQuantity sets a line's quantity; zero or below removes it.
func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.cart")
	inst := instancemw.FromContext(c)

	id, ok := productID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "quantity required")
	}

	if !inst.Cart.UpdateQuantity(id, *req.Quantity) {
		if *req.Quantity > 0 {
			l.Warn("update_cart_error", "status", 404, "product_id", id)
			return echo.NewHTTPError(http.StatusNotFound, "item not in cart")
		}
		return c.JSON(http.StatusOK, render(inst.Cart))
	}
	publish(c, h.Events, events.TopicCart, events.Event{Type: "quantity_updated", ProductID: id, Quantity: max(*req.Quantity, 0)})

	l.Info("cart_quantity_updated", "product_id", id, "quantity", *req.Quantity)
	return c.JSON(http.StatusOK, render(inst.Cart))
}

// RemoveFromCart deletes a line. Absent ids are a no-op.
func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "delete.one.from.cart")
	inst := instancemw.FromContext(c)

	id, ok := productID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "id is not a positive integer")
	}
	if inst.Cart.Remove(id) {
		publish(c, h.Events, events.TopicCart, events.Event{Type: "item_removed", ProductID: id})
		l.Info("item_removed_from_cart", "product_id", id)
	}
	return c.JSON(http.StatusOK, render(inst.Cart))
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "delete.all.from.cart")
	inst := instancemw.FromContext(c)

	inst.Cart.Clear()
	publish(c, h.Events, events.TopicCart, events.Event{Type: "cart_cleared"})

	l.Info("cart_cleared")
	return c.JSON(http.StatusOK, render(inst.Cart))
}
