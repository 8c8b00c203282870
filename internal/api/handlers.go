package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Nikcet/get-gifts-backend/internal/auth"
	"github.com/Nikcet/get-gifts-backend/internal/database"
	"github.com/Nikcet/get-gifts-backend/internal/models"
	"github.com/Nikcet/get-gifts-backend/internal/queue"
)

// GiftStore is the slice of the gift repository the handlers need.
type GiftStore interface {
	Insert(ctx context.Context, gift *models.Gift) error
	GetByID(ctx context.Context, id string) (*models.Gift, error)
	List(ctx context.Context) ([]*models.Gift, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Gift, error)
	Update(ctx context.Context, gift *models.Gift) error
	Delete(ctx context.Context, id string) error
	Reserve(ctx context.Context, id, owner string) error
	Unreserve(ctx context.Context, id string) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

type Handlers struct {
	gifts  GiftStore
	users  UserStore
	queue  queue.Queue
	auth   *auth.Service
	logger *slog.Logger
}

func NewHandlers(gifts GiftStore, users UserStore, q queue.Queue, authSvc *auth.Service, logger *slog.Logger) *Handlers {
	return &Handlers{
		gifts:  gifts,
		users:  users,
		queue:  q,
		auth:   authSvc,
		logger: logger.With("component", "api"),
	}
}

// CreateGiftRequest carries the product-page URL to extract.
type CreateGiftRequest struct {
	URL string `json:"url"`
}

// CreateGiftResponse acknowledges the enqueued job.
type CreateGiftResponse struct {
	GiftID string `json:"gift_id"`
	Status string `json:"status"`
}

// CreateGift registers a processing gift row and enqueues the extraction
// job. The response returns immediately; clients poll GetGift for the
// outcome.
func (h *Handlers) CreateGift(w http.ResponseWriter, r *http.Request) {
	var req CreateGiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validateProductURL(req.URL); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	gift := &models.Gift{
		ID:     uuid.New().String(),
		UserID: claims.UserID,
		Link:   req.URL,
		Status: models.GiftStatusProcessing,
	}

	if err := h.gifts.Insert(r.Context(), gift); err != nil {
		h.logger.Error("failed to insert gift", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to create gift")
		return
	}

	task := &queue.Task{
		ID:        uuid.New().String(),
		GiftID:    gift.ID,
		UserID:    gift.UserID,
		URL:       gift.Link,
		CreatedAt: time.Now(),
	}
	if err := h.queue.Push(r.Context(), task); err != nil {
		h.logger.Error("failed to enqueue extraction", "error", err, "gift_id", gift.ID)
		h.respondError(w, http.StatusInternalServerError, "failed to enqueue extraction")
		return
	}

	h.respondJSON(w, http.StatusAccepted, CreateGiftResponse{
		GiftID: gift.ID,
		Status: gift.Status,
	})
}

// GetGift reports the gift, including its processing/completed/failed state.
func (h *Handlers) GetGift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	gift, err := h.gifts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "the gift does not exist")
			return
		}
		h.logger.Error("failed to get gift", "error", err, "gift_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to get gift")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]*models.Gift{"gift": gift})
}

func (h *Handlers) ListGifts(w http.ResponseWriter, r *http.Request) {
	gifts, err := h.gifts.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list gifts", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list gifts")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string][]*models.Gift{"gifts": gifts})
}

func (h *Handlers) ListUserGifts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	gifts, err := h.gifts.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list user gifts", "error", err, "user_id", userID)
		h.respondError(w, http.StatusInternalServerError, "failed to list gifts")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string][]*models.Gift{"gifts": gifts})
}

func (h *Handlers) UpdateGift(w http.ResponseWriter, r *http.Request) {
	var gift models.Gift
	if err := json.NewDecoder(r.Body).Decode(&gift); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	gift.ID = chi.URLParam(r, "id")

	if err := h.gifts.Update(r.Context(), &gift); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "the gift does not exist")
			return
		}
		h.logger.Error("failed to update gift", "error", err, "gift_id", gift.ID)
		h.respondError(w, http.StatusInternalServerError, "failed to update gift")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Gift updated successfully."})
}

func (h *Handlers) DeleteGift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.gifts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "the gift does not exist")
			return
		}
		h.logger.Error("failed to delete gift", "error", err, "gift_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to delete gift")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Gift %s deleted successfully.", id)})
}

func (h *Handlers) ReserveGift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	if err := h.gifts.Reserve(r.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusConflict, "gift not found or already reserved")
			return
		}
		h.logger.Error("failed to reserve gift", "error", err, "gift_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to reserve gift")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Gift reserved successfully."})
}

func (h *Handlers) UnreserveGift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.gifts.Unreserve(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "the gift does not exist")
			return
		}
		h.logger.Error("failed to unreserve gift", "error", err, "gift_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to unreserve gift")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Gift released successfully."})
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		h.respondError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			h.respondError(w, http.StatusBadRequest, "username already registered")
			return
		}
		h.logger.Error("failed to create user", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully."})
}

// LoginResponse carries the bearer token for subsequent requests.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      string `json:"user_id"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		h.logger.Error("failed to look up user", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		h.respondError(w, http.StatusUnauthorized, "incorrect username or password")
		return
	}

	token, err := h.auth.CreateToken(user.ID, user.Username)
	if err != nil {
		h.logger.Error("failed to create token", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	h.respondJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
	})
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		h.respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string][]*models.User{"users": users})
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "the user does not exist")
			return
		}
		h.logger.Error("failed to get user", "error", err, "user_id", id)
		h.respondError(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	size, err := h.queue.Size(r.Context())
	if err != nil {
		h.respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"queued_tasks": size,
	})
}

// validateProductURL accepts only absolute links to a product page.
func validateProductURL(raw string) error {
	if raw == "" {
		return errors.New("url is required")
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errors.New("url must be an absolute http(s) link")
	}
	if !strings.Contains(parsed.Path, "/product/") {
		return errors.New("url must point to a product page")
	}

	return nil
}

// Helper methods
func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
