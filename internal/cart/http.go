package cart

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"Bakeshop/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Svc *Service
	Log *zap.Logger
}

type cartView struct {
	Items     []LineItem      `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type summaryView struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

func view(c *Cart) cartView {
	return cartView{Items: c.Items(), ItemCount: c.ItemCount(), Subtotal: c.Subtotal()}
}

func (s *Server) GetHandler() http.HandlerFunc         { return s.get }
func (s *Server) SummaryHandler() http.HandlerFunc     { return s.summary }
func (s *Server) AddItemHandler() http.HandlerFunc     { return s.addItem }
func (s *Server) SetQuantityHandler() http.HandlerFunc { return s.setQuantity }
func (s *Server) RemoveItemHandler() http.HandlerFunc  { return s.removeItem }
func (s *Server) ClearHandler() http.HandlerFunc       { return s.clear }

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	c, err := s.Svc.Get(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, r, "get cart", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, view(c))
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	c, err := s.Svc.Get(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, r, "cart summary", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, summaryView{ItemCount: c.ItemCount(), Subtotal: c.Subtotal()})
}

func (s *Server) addItem(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	item, err := decodeBody[LineItem](w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	c, err := s.Svc.AddItem(r.Context(), u.ID, item)
	if err != nil {
		if errors.Is(err, ErrMissingID) {
			kit.WriteError(w, r, http.StatusBadRequest, "item id required", nil)
			return
		}
		s.serverError(w, r, "add item", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, view(c))
}

type setQuantityReq struct {
	Quantity int `json:"quantity"`
}

func (s *Server) setQuantity(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	req, err := decodeBody[setQuantityReq](w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	id := chi.URLParam(r, "id")
	c, err := s.Svc.SetQuantity(r.Context(), u.ID, id, req.Quantity)
	if err != nil {
		s.serverError(w, r, "set quantity", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, view(c))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	id := chi.URLParam(r, "id")
	c, err := s.Svc.RemoveItem(r.Context(), u.ID, id)
	if err != nil {
		s.serverError(w, r, "remove item", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, view(c))
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	u, ok := UserFromContext(r.Context())
	if !ok {
		kit.WriteError(w, r, http.StatusUnauthorized, "no user", nil)
		return
	}

	c, err := s.Svc.Clear(r.Context(), u.ID)
	if err != nil {
		s.serverError(w, r, "clear cart", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, view(c))
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if s.Log != nil {
		s.Log.Error(op+" failed", zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, error) {
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
