package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
	"github.com/aryansawant3579-cell/review-app/internal/review"
)

const maxRequestBody = 1 << 20 // 1 MiB

const defaultPageSize = 10

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type reviewCreateRequest struct {
	BranchID      string  `json:"branchId"`
	Rating        int     `json:"rating"`
	Title         *string `json:"title"`
	Content       string  `json:"content"`
	Source        *string `json:"source"`
	Category      *string `json:"category"`
	CustomerName  *string `json:"customerName"`
	CustomerEmail *string `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone"`
	StaffID       *string `json:"staffId"`
}

type reviewRespondRequest struct {
	ResponseText string `json:"responseText"`
}

type reviewResponse struct {
	ID            string     `json:"id"`
	BranchID      string     `json:"branchId"`
	Rating        int        `json:"rating"`
	Title         *string    `json:"title,omitempty"`
	Content       string     `json:"content"`
	Source        string     `json:"source"`
	Category      *string    `json:"category,omitempty"`
	Sentiment     string     `json:"sentiment"`
	CustomerName  *string    `json:"customerName,omitempty"`
	CustomerEmail *string    `json:"customerEmail,omitempty"`
	CustomerPhone *string    `json:"customerPhone,omitempty"`
	StaffID       *string    `json:"staffId,omitempty"`
	IsResponded   bool       `json:"isResponded"`
	ResponseText  *string    `json:"responseText,omitempty"`
	RespondedBy   *string    `json:"respondedBy,omitempty"`
	RespondedAt   *time.Time `json:"respondedAt,omitempty"`
	IsEscalated   bool       `json:"isEscalated"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type reviewListResponse struct {
	Items    []reviewResponse `json:"items"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	filters, err := buildListFilters(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	items, total, err := s.reviews.List(r.Context(), actor, filters)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
			return
		}
		s.logger.Printf("list reviews error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reviews")
		return
	}

	resp := reviewListResponse{
		Items:    make([]reviewResponse, 0, len(items)),
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toReviewResponse(item))
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func buildListFilters(query url.Values) (review.ListFilters, error) {
	filters := review.ListFilters{
		Page:     1,
		PageSize: defaultPageSize,
	}

	if val := strings.TrimSpace(query.Get("branchId")); val != "" {
		filters.BranchID = &val
	}
	if val := strings.TrimSpace(query.Get("sentiment")); val != "" {
		filters.Sentiment = &val
	}
	if val := strings.TrimSpace(query.Get("category")); val != "" {
		filters.Category = &val
	}
	if val := strings.TrimSpace(query.Get("source")); val != "" {
		filters.Source = &val
	}
	if val := strings.TrimSpace(query.Get("page")); val != "" {
		page, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("invalid page value")
		}
		filters.Page = page
	}
	if val := strings.TrimSpace(query.Get("pageSize")); val != "" {
		size, err := strconv.Atoi(val)
		if err != nil {
			return filters, fmt.Errorf("invalid pageSize value")
		}
		filters.PageSize = size
	}
	return filters, nil
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	source := "internal"
	if req.Source != nil && strings.TrimSpace(*req.Source) != "" {
		source = strings.TrimSpace(*req.Source)
	}

	created, err := s.reviews.Create(r.Context(), review.CreateParams{
		BranchID:      strings.TrimSpace(req.BranchID),
		Rating:        req.Rating,
		Title:         normalizeStringPtr(req.Title),
		Content:       req.Content,
		Source:        source,
		Category:      normalizeStringPtr(req.Category),
		CustomerName:  normalizeStringPtr(req.CustomerName),
		CustomerEmail: normalizeStringPtr(req.CustomerEmail),
		CustomerPhone: normalizeStringPtr(req.CustomerPhone),
		StaffID:       normalizeStringPtr(req.StaffID),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, domain.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		default:
			s.logger.Printf("create review error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create review")
		}
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/reviews/%s", created.ID))
	s.respondJSON(w, http.StatusCreated, toReviewResponse(created))
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewID")

	rev, err := s.reviews.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("get review error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch review")
		return
	}
	s.respondJSON(w, http.StatusOK, toReviewResponse(rev))
}

func (s *Server) handleRespondReview(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}
	id := chi.URLParam(r, "reviewID")

	var req reviewRespondRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	updated, err := s.reviews.Respond(r.Context(), id, req.ResponseText, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, domain.ErrNotFound):
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		default:
			s.logger.Printf("respond review error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to respond to review")
		}
		return
	}
	s.respondJSON(w, http.StatusOK, toReviewResponse(updated))
}

func (s *Server) handleEscalateReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reviewID")

	updated, err := s.reviews.Escalate(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "NOT_FOUND", "Resource not found")
			return
		}
		s.logger.Printf("escalate review error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to escalate review")
		return
	}
	s.respondJSON(w, http.StatusOK, toReviewResponse(updated))
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}

func toReviewResponse(rev domain.Review) reviewResponse {
	resp := reviewResponse{
		ID:            rev.ID,
		BranchID:      rev.BranchID,
		Rating:        rev.Rating,
		Title:         rev.Title,
		Content:       rev.Content,
		Source:        rev.Source,
		Category:      rev.Category,
		Sentiment:     string(rev.Sentiment),
		CustomerName:  rev.CustomerName,
		CustomerEmail: rev.CustomerEmail,
		CustomerPhone: rev.CustomerPhone,
		StaffID:       rev.StaffID,
		IsResponded:   rev.IsResponded,
		ResponseText:  rev.ResponseText,
		RespondedBy:   rev.RespondedBy,
		IsEscalated:   rev.IsEscalated,
		CreatedAt:     rev.CreatedAt.UTC(),
		UpdatedAt:     rev.UpdatedAt.UTC(),
	}
	if rev.RespondedAt != nil {
		at := rev.RespondedAt.UTC()
		resp.RespondedAt = &at
	}
	return resp
}

func normalizeStringPtr(ptr *string) *string {
	if ptr == nil {
		return nil
	}
	val := strings.TrimSpace(*ptr)
	if val == "" {
		return nil
	}
	return &val
}
