package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aryansawant3579-cell/review-app/internal/domain"
	"github.com/aryansawant3579-cell/review-app/internal/repository"
)

type branchCreateRequest struct {
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Code      string  `json:"branchCode"`
	ManagerID *string `json:"managerId"`
}

type branchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Code      string    `json:"branchCode"`
	ManagerID *string   `json:"managerId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type publicBranchResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (s *Server) handleListBranches(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	var (
		branches []domain.Branch
		err      error
	)
	if actor.Role == domain.RoleManager {
		branches, err = s.repo.Branches.ListByManager(r.Context(), actor.ID)
	} else {
		branches, err = s.repo.Branches.List(r.Context())
	}
	if err != nil {
		s.logger.Printf("list branches error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list branches")
		return
	}

	resp := make([]branchResponse, 0, len(branches))
	for _, branch := range branches {
		resp = append(resp, toBranchResponse(branch))
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePublicBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := s.repo.Branches.List(r.Context())
	if err != nil {
		s.logger.Printf("public branches error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list branches")
		return
	}

	resp := make([]publicBranchResponse, 0, len(branches))
	for _, branch := range branches {
		resp = append(resp, publicBranchResponse{
			ID:       branch.ID,
			Name:     branch.Name,
			Location: branch.Location,
		})
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateBranch(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleOwner {
		s.respondError(w, http.StatusForbidden, "FORBIDDEN", "Only admins and owners can create branches")
		return
	}

	var req branchCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" || strings.TrimSpace(req.Code) == "" {
		s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name, location and branchCode are required")
		return
	}

	branch, err := s.repo.Branches.Create(r.Context(), repository.BranchCreateParams{
		Name:      strings.TrimSpace(req.Name),
		Location:  strings.TrimSpace(req.Location),
		Code:      strings.TrimSpace(req.Code),
		ManagerID: normalizeStringPtr(req.ManagerID),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 is a unique violation: the branch code is already taken.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			s.respondError(w, http.StatusConflict, "CONFLICT", "Branch code already exists")
			return
		}
		s.logger.Printf("create branch error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create branch")
		return
	}
	s.respondJSON(w, http.StatusCreated, toBranchResponse(branch))
}

func toBranchResponse(branch domain.Branch) branchResponse {
	return branchResponse{
		ID:        branch.ID,
		Name:      branch.Name,
		Location:  branch.Location,
		Code:      branch.Code,
		ManagerID: branch.ManagerID,
		CreatedAt: branch.CreatedAt.UTC(),
	}
}
