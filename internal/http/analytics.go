package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aryansawant3579-cell/review-app/internal/analytics"
	"github.com/aryansawant3579-cell/review-app/internal/domain"
)

type dashboardResponse struct {
	TotalReviews int                  `json:"totalReviews"`
	AvgRating    float64              `json:"avgRating"`
	ResponseRate float64              `json:"responseRate"`
	Sentiments   sentimentsResponse   `json:"sentiments"`
	BranchStats  []branchStatResponse `json:"branchStats"`
}

type sentimentsResponse struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

type branchStatResponse struct {
	BranchID     string  `json:"branchId"`
	BranchName   string  `json:"branchName"`
	AvgRating    float64 `json:"avgRating"`
	TotalReviews int     `json:"totalReviews"`
}

type trendBucketResponse struct {
	Total     int     `json:"total"`
	AvgRating float64 `json:"avgRating"`
	Positive  int     `json:"positive"`
	Neutral   int     `json:"neutral"`
	Negative  int     `json:"negative"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	dashboard, err := s.analytics.Dashboard(r.Context(), actor)
	if err != nil {
		s.logger.Printf("dashboard error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard")
		return
	}
	s.respondJSON(w, http.StatusOK, toDashboardResponse(dashboard))
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
		return
	}

	days, err := parseDaysParam(r.URL.Query().Get("days"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	trends, err := s.analytics.Trends(r.Context(), actor, days)
	if err != nil {
		s.logger.Printf("trends error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build trends")
		return
	}

	resp := make(map[string]trendBucketResponse, len(trends))
	for day, bucket := range trends {
		resp[day] = trendBucketResponse{
			Total:     bucket.Total,
			AvgRating: bucket.AvgRating,
			Positive:  bucket.Positive,
			Neutral:   bucket.Neutral,
			Negative:  bucket.Negative,
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// parseDaysParam treats an absent value as "use the default window" and
// rejects anything that is not a positive integer.
func parseDaysParam(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, fmt.Errorf("days must be a positive integer")
	}
	return days, nil
}

func toDashboardResponse(dashboard analytics.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		TotalReviews: dashboard.TotalReviews,
		AvgRating:    dashboard.AvgRating,
		ResponseRate: dashboard.ResponseRate,
		Sentiments:   toSentimentsResponse(dashboard.Sentiments),
		BranchStats:  make([]branchStatResponse, 0, len(dashboard.BranchStats)),
	}
	for _, stat := range dashboard.BranchStats {
		resp.BranchStats = append(resp.BranchStats, branchStatResponse{
			BranchID:     stat.BranchID,
			BranchName:   stat.BranchName,
			AvgRating:    stat.AvgRating,
			TotalReviews: stat.TotalReviews,
		})
	}
	return resp
}

func toSentimentsResponse(tally domain.SentimentTally) sentimentsResponse {
	return sentimentsResponse{
		Positive: tally.Positive,
		Neutral:  tally.Neutral,
		Negative: tally.Negative,
	}
}
