package catalog

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

type Gateway struct {
	client *Client
	filter KeywordFilter
}

func NewGateway(client *Client, keywords []string) *Gateway {
	return &Gateway{
		client: client,
		filter: NewKeywordFilter(keywords),
	}
}

// Allows reports whether p passes the keyword policy that FetchAll and Search
// apply.
func (g *Gateway) Allows(p models.Product) bool {
	return g.filter.Match(p)
}

type productList struct {
	Products *[]models.Product `json:"products"`
	Total    int               `json:"total"`
}

// FetchAll lists the catalog, keyword filter applied.
func (g *Gateway) FetchAll(ctx context.Context) ([]models.Product, error) {
	l := logging.FromContext(ctx).With("component", "catalog.fetch_all")

	products, err := g.list(ctx, "fetch_all", "/products", nil)
	if err != nil {
		l.Error("fetch_products_failed", "kind", KindOf(err).String(), "error", err)
		return nil, err
	}

	filtered := g.filter.Apply(products)
	l.Debug("fetch_products_success", "received", len(products), "kept", len(filtered))
	return filtered, nil
}

func (g *Gateway) FetchByID(ctx context.Context, id int) (*models.Product, error) {
	l := logging.FromContext(ctx).With("component", "catalog.fetch_by_id", "product_id", id)

	var product models.Product
	if err := g.client.GetJSON(ctx, "fetch_by_id", "/products/"+strconv.Itoa(id), nil, &product); err != nil {
		if errors.Is(err, ErrNotFound) {
			l.Warn("fetch_product_failed", "kind", KindNotFound.String(), "error", err)
		} else {
			l.Error("fetch_product_failed", "kind", KindOf(err).String(), "error", err)
		}
		return nil, err
	}
	if product.ID == 0 {
		err := &FetchError{Op: "fetch_by_id", Kind: KindMalformed, Err: errors.New("product without id")}
		l.Error("fetch_product_failed", "kind", KindMalformed.String(), "error", err)
		return nil, err
	}
	return &product, nil
}

// Search queries the catalog's search endpoint; the query is URL-escaped and
// the keyword filter applied to the result.
func (g *Gateway) Search(ctx context.Context, query string) ([]models.Product, error) {
	l := logging.FromContext(ctx).With("component", "catalog.search", "query", query)

	products, err := g.list(ctx, "search", "/products/search", url.Values{"q": {query}})
	if err != nil {
		l.Error("search_products_failed", "kind", KindOf(err).String(), "error", err)
		return nil, err
	}

	filtered := g.filter.Apply(products)
	l.Debug("search_products_success", "received", len(products), "kept", len(filtered))
	return filtered, nil
}

func (g *Gateway) list(ctx context.Context, op, path string, query url.Values) ([]models.Product, error) {
	var body productList
	if err := g.client.GetJSON(ctx, op, path, query, &body); err != nil {
		return nil, err
	}
	if body.Products == nil {
		return nil, &FetchError{Op: op, Kind: KindMalformed, Err: errors.New("response has no products field")}
	}
	return *body.Products, nil
}
