package product

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/authsvc/pkg/binder"
	"github.com/dmitrymomot/authsvc/pkg/respond"
)

// Handler exposes product CRUD over HTTP. All routes sit behind the bearer
// token middleware; handlers themselves do not inspect the caller identity.
type Handler struct {
	storage Storage
	log     *slog.Logger
}

func NewHandler(storage Storage, log *slog.Logger) *Handler {
	return &Handler{storage: storage, log: log}
}

// Routes returns the product endpoints:
//
//	POST   /products
//	GET    /products
//	GET    /products/{id}
//	PUT    /products/{id}
//	DELETE /products/{id}
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/products", h.create)
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)
	r.Put("/products/{id}", h.update)
	r.Delete("/products/{id}", h.remove)

	return r
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

func (r productRequest) validate() bool {
	return r.Name != "" && r.Price != nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := binder.JSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.validate() {
		respond.Error(w, http.StatusBadRequest, "Name and price are required fields")
		return
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		CreatedAt:   time.Now(),
	}
	if err := h.storage.CreateProduct(r.Context(), p); err != nil {
		h.respondError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]any{
		"message": "Product created successfully",
		"id":      p.ID,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := Filter{Name: r.URL.Query().Get("name")}

	for param, dst := range map[string]**float64{
		"min_price": &filter.MinPrice,
		"max_price": &filter.MaxPrice,
	} {
		raw := r.URL.Query().Get(param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "Invalid price filter")
			return
		}
		*dst = &value
	}

	products, err := h.storage.ListProducts(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if products == nil {
		products = []Product{}
	}

	respond.JSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Product not found")
		return
	}

	p, err := h.storage.GetProduct(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Product not found")
		return
	}

	var req productRequest
	if err := binder.JSON(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !req.validate() {
		respond.Error(w, http.StatusBadRequest, "Name and price are required fields")
		return
	}

	p := &Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
	}
	if err := h.storage.UpdateProduct(r.Context(), p); err != nil {
		h.respondError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Product updated successfully"})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.storage.DeleteProduct(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		respond.Error(w, http.StatusNotFound, "Product not found")
	default:
		h.log.ErrorContext(r.Context(), "product request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
