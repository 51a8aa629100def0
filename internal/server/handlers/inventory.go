package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"stockroom/internal/models"
	"stockroom/internal/server/storage"
	"stockroom/pkg/api"
)

// InventoryHandler handles the protected inventory CRUD routes.
// All routes sit behind the auth middleware.
type InventoryHandler struct {
	logger *slog.Logger
	items  storage.InventoryStorage
}

// NewInventoryHandler creates a new handler for the inventory routes
func NewInventoryHandler(logger *slog.Logger, items storage.InventoryStorage) *InventoryHandler {
	return &InventoryHandler{
		logger: logger,
		items:  items,
	}
}

// parseItemID validates the {id} path value as a store-assigned identifier.
// Responds 400 and returns false on a malformed id.
func (h *InventoryHandler) parseItemID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		h.logger.WarnContext(r.Context(), "malformed item id", slog.String("id", id))
		sendItemError(h.logger, w, "Invalid ID format", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// List handles GET /api/inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.items.ListItems(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list items", slog.Any("error", err))
		sendItemError(h.logger, w, "Error fetching inventory items", http.StatusInternalServerError)
		return
	}

	// items is never nil, so an empty store encodes as []
	sendJSON(h.logger, w, items, http.StatusOK)
}

// Add handles POST /api/inventory/add
func (h *InventoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode add-item request", slog.Any("error", err))
		sendItemError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	now := time.Now()
	item := &models.InventoryItem{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Category:  req.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.items.CreateItem(ctx, item); err != nil {
		h.logger.ErrorContext(ctx, "failed to create item", slog.Any("error", err))
		sendItemError(h.logger, w, "Error adding item", http.StatusInternalServerError)
		return
	}

	userID, _ := GetUserID(ctx)
	h.logger.InfoContext(ctx, "item added",
		slog.String("item_id", item.ID),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, item, http.StatusCreated)
}

// Get handles GET /api/inventory/{id}
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.parseItemID(w, r)
	if !ok {
		return
	}

	item, err := h.items.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			sendItemError(h.logger, w, "Item not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get item", slog.Any("error", err))
		sendItemError(h.logger, w, "Error fetching inventory items", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, item, http.StatusOK)
}

// Update handles PUT /api/inventory/{id}
// Last write wins; concurrent updates are not ordered
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.parseItemID(w, r)
	if !ok {
		return
	}

	var req api.ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode update-item request", slog.Any("error", err))
		sendItemError(h.logger, w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item := &models.InventoryItem{
		ID:        id,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Category:  req.Category,
		UpdatedAt: time.Now(),
	}

	if err := h.items.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			sendItemError(h.logger, w, "Item not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update item", slog.Any("error", err))
		sendItemError(h.logger, w, "Error updating item", http.StatusInternalServerError)
		return
	}

	updated, err := h.items.GetItem(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to reload item", slog.Any("error", err))
		sendItemError(h.logger, w, "Error updating item", http.StatusInternalServerError)
		return
	}

	userID, _ := GetUserID(ctx)
	h.logger.InfoContext(ctx, "item updated",
		slog.String("item_id", id),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, updated, http.StatusOK)
}

// Delete handles DELETE /api/inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.parseItemID(w, r)
	if !ok {
		return
	}

	if err := h.items.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			sendItemError(h.logger, w, "Item not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete item", slog.Any("error", err))
		sendItemError(h.logger, w, "Error deleting item", http.StatusInternalServerError)
		return
	}

	userID, _ := GetUserID(ctx)
	h.logger.InfoContext(ctx, "item deleted",
		slog.String("item_id", id),
		slog.String("user_id", userID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "Item deleted successfully!"}, http.StatusOK)
}
