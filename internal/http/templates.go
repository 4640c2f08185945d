package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
	"github.com/aryansawant3579-cell/review-app/internal/repository"
)

type templateCreateRequest struct {
	Name          string  `json:"name"`
	TemplateText  string  `json:"templateText"`
	Category      *string `json:"category"`
	SentimentType *string `json:"sentimentType"`
}

type templateResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	TemplateText  string    `json:"templateText"`
	Category      *string   `json:"category,omitempty"`
	SentimentType *string   `json:"sentimentType,omitempty"`
	CreatedBy     *string   `json:"createdBy,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.repo.Templates.ListActive(r.Context())
	if err != nil {
		s.logger.Printf("list templates error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list templates")
		return
	}

	resp := make([]templateResponse, 0, len(templates))
	for _, tmpl := range templates {
		resp = append(resp, toTemplateResponse(tmpl))
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var req templateCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.TemplateText) == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name and templateText are required")
		return
	}

	var sentimentType *domain.Sentiment
	if req.SentimentType != nil {
		switch sentiment := domain.Sentiment(strings.TrimSpace(*req.SentimentType)); sentiment {
		case domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative:
			sentimentType = &sentiment
		case "":
		default:
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "sentimentType must be positive, neutral or negative")
			return
		}
	}

	tmpl, err := s.repo.Templates.Create(r.Context(), repository.TemplateCreateParams{
		Name:          strings.TrimSpace(req.Name),
		TemplateText:  req.TemplateText,
		Category:      normalizeStringPtr(req.Category),
		SentimentType: sentimentType,
		CreatedBy:     &actor.ID,
	})
	if err != nil {
		s.logger.Printf("create template error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create template")
		return
	}
	s.respondJSON(w, http.StatusCreated, toTemplateResponse(tmpl))
}

func toTemplateResponse(tmpl domain.ReplyTemplate) templateResponse {
	resp := templateResponse{
		ID:           tmpl.ID,
		Name:         tmpl.Name,
		TemplateText: tmpl.TemplateText,
		Category:     tmpl.Category,
		CreatedBy:    tmpl.CreatedBy,
		IsActive:     tmpl.IsActive,
		CreatedAt:    tmpl.CreatedAt.UTC(),
	}
	if tmpl.SentimentType != nil {
		sentiment := string(*tmpl.SentimentType)
		resp.SentimentType = &sentiment
	}
	return resp
}
