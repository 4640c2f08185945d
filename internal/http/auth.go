package httpserver

import (
	"errors"
	"net/http"

	"github.com/aryansawant3579-cell/review-app/internal/auth"
	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"fullName"`
	Role     string  `json:"role"`
	BranchID *string `json:"branchId"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"fullName"`
	Role     string  `json:"role"`
	BranchID *string `json:"branchId,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	result, err := s.auth.Register(r.Context(), req.Email, req.Password, req.FullName, domain.Role(req.Role), normalizeStringPtr(req.BranchID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, auth.ErrEmailTaken):
			s.respondError(w, http.StatusConflict, "CONFLICT", "Email already registered")
		default:
			s.logger.Printf("register error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to register")
		}
		return
	}
	s.respondJSON(w, http.StatusCreated, toAuthResponse(result))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	result, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			s.respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
		case errors.Is(err, auth.ErrInactiveUser):
			s.respondError(w, http.StatusForbidden, "FORBIDDEN", "User account is inactive")
		default:
			s.logger.Printf("login error: %v", err)
			s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to log in")
		}
		return
	}
	s.respondJSON(w, http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(result auth.Result) authResponse {
	return authResponse{
		Token: result.Token,
		User: userResponse{
			ID:       result.User.ID,
			Email:    result.User.Email,
			FullName: result.User.FullName,
			Role:     string(result.User.Role),
			BranchID: result.User.BranchID,
		},
	}
}
