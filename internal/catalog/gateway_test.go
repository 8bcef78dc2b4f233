package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

const mixedSearchBody = `{"products":[
	{"id":1,"title":"Red Lipstick","description":"matte","category":"beauty","brand":"Essence","price":9.99,"discountPercentage":10,"rating":4.5,"stock":5,"thumbnail":"https://cdn/1.png"},
	{"id":2,"title":"Office Chair","description":"ergonomic","category":"furniture","brand":"Ikea","price":120,"discountPercentage":0,"rating":4.1,"stock":3,"thumbnail":"https://cdn/2.png"},
	{"id":3,"title":"Lipstick Case","description":"leather","category":"accessories","brand":"Gucci","price":40,"discountPercentage":5,"rating":3.9,"stock":8,"thumbnail":"https://cdn/3.png"}
],"total":3,"skip":0,"limit":30}`

func newCatalogServer(t *testing.T, h http.HandlerFunc) *Gateway {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewGateway(NewClient(srv.URL, 2*time.Second), []string{"lipstick", "beauty"})
}

func TestGateway_Search_AppliesKeywordFilterAndEscapesQuery(t *testing.T) {
	var gotQuery string
	g := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mixedSearchBody))
	})

	products, err := g.Search(context.Background(), "lip stick&x")
	require.NoError(t, err)
	assert.Equal(t, "lip stick&x", gotQuery)

	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 3, products[1].ID)
	for _, p := range products {
		assert.NotEqual(t, 2, p.ID, "non-matching product must be excluded")
	}
}

func TestGateway_FetchAll_UsesSameFilter(t *testing.T) {
	g := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		_, _ = w.Write([]byte(mixedSearchBody))
	})

	products, err := g.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
}

func TestGateway_FetchAll_NoKeywordsKeepsEverything(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mixedSearchBody))
	}))
	defer srv.Close()

	g := NewGateway(NewClient(srv.URL, time.Second), nil)
	products, err := g.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestGateway_FetchAll_EmptyIsNotAnError(t *testing.T) {
	g := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[],"total":0}`))
	})

	products, err := g.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestGateway_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    Kind
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			kind: KindStatus,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"products":[{`))
			},
			kind: KindMalformed,
		},
		{
			name: "missing products field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"items":[]}`))
			},
			kind: KindMalformed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newCatalogServer(t, tt.handler)
			products, err := g.FetchAll(context.Background())
			require.Error(t, err)
			assert.Nil(t, products)
			assert.Equal(t, tt.kind, KindOf(err))

			products, err = g.Search(context.Background(), "lipstick")
			require.Error(t, err)
			assert.Nil(t, products)
			assert.Equal(t, tt.kind, KindOf(err))
		})
	}
}

func TestGateway_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	g := NewGateway(NewClient(url, time.Second), nil)
	_, err := g.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, KindTransport, KindOf(err))
}

func TestGateway_FetchByID(t *testing.T) {
	g := newCatalogServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/1":
			_, _ = w.Write([]byte(`{"id":1,"title":"Red Lipstick","price":100,"discountPercentage":10}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Product not found"}`))
		}
	})

	p, err := g.FetchByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Red Lipstick", p.Title)
	assert.Equal(t, "90.00", p.EffectivePrice().StringFixed(2))

	p, err = g.FetchByID(context.Background(), 999)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGateway_Allows(t *testing.T) {
	g := NewGateway(NewClient("http://unused", time.Second), []string{"lipstick", "beauty"})
	assert.True(t, g.Allows(models.Product{Title: "Red Lipstick"}))
	assert.False(t, g.Allows(models.Product{Title: "Office Chair", Category: "furniture"}))

	open := NewGateway(NewClient("http://unused", time.Second), nil)
	assert.True(t, open.Allows(models.Product{Title: "Office Chair"}))
}
