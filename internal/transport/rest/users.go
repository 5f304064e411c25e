package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ren-lyn/midterm-lab3/internal/domain"
	"github.com/ren-lyn/midterm-lab3/internal/service/user"
)

const maxBodyBytes = 1 << 20

type userService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, input user.RecordInput) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input user.RecordInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UsersHandler serves the /api/users resource.
type UsersHandler struct {
	svc userService
	log *slog.Logger
}

// NewUsersHandler creates a UsersHandler.
func NewUsersHandler(svc userService, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{
		svc: svc,
		log: logger.With("handler", "users"),
	}
}

// userResponse is the wire shape of a record.
type userResponse struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Age        int       `json:"age"`
	Occupation string    `json:"occupation"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Age:        u.Age,
		Occupation: u.Occupation,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// recordRequest is the JSON body of create and update. Age stays raw so a
// number and a numeric string are both accepted.
type recordRequest struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Age        json.RawMessage `json:"age"`
	Occupation string          `json:"occupation"`
}

// List returns every record.
// GET /api/users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one record.
// GET /api/users/{id}
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

// Create stores a new record.
// POST /api/users
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, err := decodeRecord(w, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	u, err := h.svc.Create(r.Context(), input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserResponse(*u))
}

// Update replaces the four fields of an existing record.
// PUT /api/users/{id}
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	input, err := decodeRecord(w, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	u, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(*u))
}

// Delete removes a record.
// DELETE /api/users/{id}
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// pathID parses the {id} segment. An id that cannot name a record is
// reported the same way as a missing record.
func (h *UsersHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return uuid.Nil, false
	}
	return id, true
}

func (h *UsersHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *domain.ValidationError
		dup  *domain.DuplicateKeyError
	)

	switch {
	case errors.Is(err, errInvalidBody):
		writeError(w, http.StatusBadRequest, errInvalidBody.Error())
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &dup):
		writeError(w, http.StatusBadRequest, dup.Error())
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid user data")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, "user already exists")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		h.log.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

var errInvalidBody = errors.New("invalid request body")

// decodeRecord reads a JSON or urlencoded form body into a RecordInput.
func decodeRecord(w http.ResponseWriter, r *http.Request) (user.RecordInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return user.RecordInput{}, errInvalidBody
		}
		age, err := parseAge(r.PostForm.Get("age"))
		if err != nil {
			return user.RecordInput{}, err
		}
		return user.RecordInput{
			Name:       r.PostForm.Get("name"),
			Email:      r.PostForm.Get("email"),
			Age:        age,
			Occupation: r.PostForm.Get("occupation"),
		}, nil
	}

	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return user.RecordInput{}, errInvalidBody
	}

	age, err := ageFromJSON(req.Age)
	if err != nil {
		return user.RecordInput{}, err
	}
	return user.RecordInput{
		Name:       req.Name,
		Email:      req.Email,
		Age:        age,
		Occupation: req.Occupation,
	}, nil
}

// ageFromJSON accepts a JSON number, a numeric string or null.
func ageFromJSON(raw json.RawMessage) (*int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errInvalidBody
		}
	} else {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, domain.NewValidationError("age", "must be a whole number")
		}
		s = n.String()
	}
	return parseAge(s)
}

// parseAge converts a textual age. Empty means not supplied.
func parseAge(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		return &n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return nil, domain.NewValidationError("age", "must be a whole number")
	}
	n := int(f)
	return &n, nil
}
