package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/konecta/cart-service/internal/platform/logger"
	"github.com/konecta/cart-service/internal/service"
)

type AddCartItemRequest struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CartHandler struct {
	carts      service.CartService
	log        logger.Logger
	defaultTTL time.Duration
}

func NewCartHandler(carts service.CartService, log logger.Logger, defaultTTL time.Duration) *CartHandler {
	return &CartHandler{
		carts:      carts,
		log:        log,
		defaultTTL: defaultTTL,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		h.log.Errorf("HTTP GetCart failed for user %s: %v", userID, err)
		http.Error(w, "Failed to retrieve cart", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// AddItem adds the line and then resets the cart expiry to the configured
// default. The TTL reset is request-layer policy, not part of the add itself.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warnf("Failed to decode request body for AddItem: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ProductID <= 0 || req.Quantity <= 0 {
		http.Error(w, "productId and quantity must be positive", http.StatusBadRequest)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), userID, req.ProductID, req.Quantity, req.Price)
	if err != nil {
		h.log.Errorf("HTTP AddItem failed for user %s: %v", userID, err)
		http.Error(w, "Failed to add item to cart", http.StatusInternalServerError)
		return
	}

	if err := h.carts.SetTTL(r.Context(), userID, h.defaultTTL); err != nil {
		h.log.Errorf("HTTP AddItem: failed to reset cart ttl for user %s: %v", userID, err)
		http.Error(w, "Failed to add item to cart", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), userID, productID)
	if err != nil {
		h.log.Errorf("HTTP RemoveItem failed for user %s: %v", userID, err)
		http.Error(w, "Failed to remove item from cart", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in token", http.StatusUnauthorized)
		return
	}

	if err := h.carts.ClearCart(r.Context(), userID); err != nil {
		h.log.Errorf("HTTP ClearCart failed for user %s: %v", userID, err)
		http.Error(w, "Failed to clear cart", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
