package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"Bakeshop/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Store Store
	Log   *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/products", s.listProducts)
	r.Get("/products/{id}", s.getProduct)
	r.Get("/categories/{category}/products", s.listByCategory)
	r.Get("/categories/{category}/{sub}/products", s.listByCategory)
	r.Get("/content/{kind}", s.listContent)

	r.Group(func(ar chi.Router) {
		ar.Use(RequireAdmin)
		ar.Post("/products", s.createProduct)
		ar.Put("/products/{id}", s.updateProduct)
		ar.Delete("/products/{id}", s.deleteProduct)
		ar.Post("/content", s.createContent)
		ar.Put("/content/{id}", s.updateContent)
		ar.Delete("/content/{id}", s.deleteContent)
	})

	return r
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.ListProducts(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		products = FilterProducts(products, []string{strings.ToLower(q)})
	}

	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.Store.GetProduct(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

type categoryResponse struct {
	Slug     string    `json:"slug"`
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}

// listByCategory resolves the requested category (or sub-category, which
// takes precedence) to a keyword set and filters the catalog against it.
func (s *Server) listByCategory(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "sub")
	if term == "" {
		term = chi.URLParam(r, "category")
	}
	slug := Normalize(term)

	products, err := s.Store.ListProducts(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products failed", zap.Error(err), zap.String("slug", slug))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	filtered := FilterProducts(products, ResolveKeywords(slug))

	kit.WriteJSON(w, http.StatusOK, categoryResponse{
		Slug:     slug,
		Count:    len(filtered),
		Products: filtered,
	})
}

func (s *Server) listContent(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if !ValidContentKind(kind) {
		kit.WriteError(w, r, http.StatusNotFound, "unknown content kind", map[string]any{"kind": kind})
		return
	}

	items, err := s.Store.ListContent(r.Context(), kind)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list content failed", zap.Error(err), zap.String("kind", kind))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, items)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	p, err := decodeJSON[Product](w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || strings.TrimSpace(p.Category) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "name and category required", nil)
		return
	}
	if p.Price.IsNegative() {
		kit.WriteError(w, r, http.StatusBadRequest, "price must not be negative", nil)
		return
	}
	if p.ID == "" {
		p.ID = "p_" + uuid.NewString()
	}
	if p.StockStatus == "" {
		p.StockStatus = StockIn
	}

	if err := s.Store.CreateProduct(r.Context(), p); err != nil {
		if err == ErrDuplicateID {
			kit.WriteError(w, r, http.StatusConflict, "id already exists", map[string]any{"id": p.ID})
			return
		}
		if s.Log != nil {
			s.Log.Error("create product failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := decodeJSON[Product](w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	p.ID = chi.URLParam(r, "id")

	ok, err := s.Store.UpdateProduct(r.Context(), p)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("update product failed", zap.Error(err), zap.String("id", p.ID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": p.ID})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := s.Store.DeleteProduct(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("delete product failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) createContent(w http.ResponseWriter, r *http.Request) {
	c, err := decodeJSON[Content](w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if !ValidContentKind(c.Kind) {
		kit.WriteError(w, r, http.StatusBadRequest, "unknown content kind", map[string]any{"kind": c.Kind})
		return
	}
	if strings.TrimSpace(c.Title) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "title required", nil)
		return
	}
	if c.ID == "" {
		c.ID = "c_" + uuid.NewString()
	}

	if err := s.Store.CreateContent(r.Context(), c); err != nil {
		if err == ErrDuplicateID {
			kit.WriteError(w, r, http.StatusConflict, "id already exists", map[string]any{"id": c.ID})
			return
		}
		if s.Log != nil {
			s.Log.Error("create content failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, c)
}

func (s *Server) updateContent(w http.ResponseWriter, r *http.Request) {
	c, err := decodeJSON[Content](w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	c.ID = chi.URLParam(r, "id")

	if !ValidContentKind(c.Kind) {
		kit.WriteError(w, r, http.StatusBadRequest, "unknown content kind", map[string]any{"kind": c.Kind})
		return
	}

	ok, err := s.Store.UpdateContent(r.Context(), c)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("update content failed", zap.Error(err), zap.String("id", c.ID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": c.ID})
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) deleteContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := s.Store.DeleteContent(r.Context(), id)
	if err != nil {
		if s.Log != nil {
			s.Log.Error("delete content failed", zap.Error(err), zap.String("id", id))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return v, errors.New("extra data after json object")
	}
	return v, nil
}
