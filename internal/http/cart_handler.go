package httpapi

import (
	"net/http"
	"strconv"

	"github.com/brandonbohn/adebackend/internal/domain"
	"github.com/brandonbohn/adebackend/internal/service"

	"go.uber.org/zap"
)

type CartHandler struct {
	cartService *service.CartService
	logger      *zap.Logger
}

func NewCartHandler(cartService *service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, logger: logger}
}

// cartView cart plus its computed total
type cartView struct {
	*domain.Cart
	Total float64 `json:"total"`
}

func viewCart(c *domain.Cart) cartView {
	return cartView{Cart: c, Total: c.Total()}
}

type createCartRequest struct {
	DonorID string `json:"donorId"`
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	var req createCartRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.logger, "CreateCart", err)
		return
	}
	c, err := h.cartService.CreateCart(r.Context(), req.DonorID)
	if err != nil {
		writeError(w, h.logger, "CreateCart", err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(viewCart(c)))
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cartService.GetCart(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.logger, "GetCart", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(viewCart(c)))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item domain.CartItem
	if err := decodeBody(r, &item); err != nil {
		writeError(w, h.logger, "AddCartItem", err)
		return
	}
	c, err := h.cartService.AddItem(r.Context(), r.PathValue("id"), item)
	if err != nil {
		writeError(w, h.logger, "AddCartItem", err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(viewCart(c)))
}

// RemoveItem DELETE /api/cart/{id}/items/{index}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, h.logger, "RemoveCartItem", service.ValidationError("index", "item index must be an integer"))
		return
	}
	c, err := h.cartService.RemoveItem(r.Context(), r.PathValue("id"), index)
	if err != nil {
		writeError(w, h.logger, "RemoveCartItem", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(viewCart(c)))
}
