package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/admissions-advisor/internal/metrics"
	"github.com/jonathan/admissions-advisor/internal/types"
	"go.uber.org/zap"
)

// chancesResponse is a ChancesResult plus whether the school had its own base rate.
type chancesResponse struct {
	School string `json:"school"`
	types.ChancesResult
	KnownSchool bool `json:"knownSchool"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req types.CreateProfileRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	profile, err := s.profiles.CreateProfile(r.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		s.handleError(w, r, fmt.Errorf("failed to create profile: %w", err))
		return
	}

	token, err := s.jwtService.GenerateToken(profile.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, types.CreateProfileResponse{ID: profile.ID, Token: token})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.loadProfile(r.Context(), pathProfileID(r))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	profileID := pathProfileID(r)

	if err := s.profiles.DeleteProfile(r.Context(), profileID); err != nil {
		s.handleError(w, r, storeError(err, profileID))
		return
	}
	if err := s.drafts.DeleteAll(r.Context(), profileID); err != nil {
		// Drafts expire on their own; the profile is already gone.
		s.logger.Warn("failed to delete drafts for profile", zap.Stringer("profile_id", profileID), zap.Error(err))
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSaveAcademics(w http.ResponseWriter, r *http.Request) {
	profileID := pathProfileID(r)

	var req types.AcademicsRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	academics := types.Academics{
		GPAUnweighted: req.GPAUnweighted,
		GPAWeighted:   req.GPAWeighted,
		ClassRank:     req.ClassRank,
	}
	if err := s.profiles.SaveAcademics(r.Context(), profileID, academics); err != nil {
		s.handleError(w, r, storeError(err, profileID))
		return
	}

	s.jsonResponse(w, http.StatusOK, academics)
}

func (s *Server) handleSaveTesting(w http.ResponseWriter, r *http.Request) {
	profileID := pathProfileID(r)

	var req types.TestingRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	scores := types.Testing{SATTotal: req.SATTotal, ACTComposite: req.ACTComposite}
	if err := s.profiles.SaveTesting(r.Context(), profileID, scores); err != nil {
		s.handleError(w, r, storeError(err, profileID))
		return
	}

	s.jsonResponse(w, http.StatusOK, scores)
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	profileID := pathProfileID(r)

	var req types.ActivityRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	activity, err := s.profiles.CreateActivity(r.Context(), profileID, types.Activity{
		Title:        req.Title,
		IsLeadership: req.IsLeadership,
	})
	if err != nil {
		s.handleError(w, r, storeError(err, profileID))
		return
	}

	s.jsonResponse(w, http.StatusCreated, activity)
}

func (s *Server) handleCreateAward(w http.ResponseWriter, r *http.Request) {
	profileID := pathProfileID(r)

	var req types.AwardRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	award, err := s.profiles.CreateAward(r.Context(), profileID, types.Award{Title: req.Title, Level: req.Level})
	if err != nil {
		s.handleError(w, r, storeError(err, profileID))
		return
	}

	s.jsonResponse(w, http.StatusCreated, award)
}

// handleCreateSchool adds a school, tiering it against the current profile.
func (s *Server) handleCreateSchool(w http.ResponseWriter, r *http.Request) {
	profileID := pathProfileID(r)

	var req types.SchoolRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	school, err := s.addSchool(r, profileID, strings.TrimSpace(req.Name))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, school)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	profileID := pathProfileID(r)

	var req types.GoalRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	goal, err := s.profiles.CreateGoal(r.Context(), profileID, types.Goal{
		Title:    req.Title,
		Category: req.Category,
		Status:   req.Status,
	})
	if err != nil {
		s.handleError(w, r, storeError(err, profileID))
		return
	}

	s.jsonResponse(w, http.StatusCreated, goal)
}

func (s *Server) handleChances(w http.ResponseWriter, r *http.Request) {
	school := strings.TrimSpace(r.URL.Query().Get("school"))
	if school == "" {
		s.handleError(w, r, &ErrValidation{Field: "school", Message: "query parameter is required"})
		return
	}

	profile, err := s.loadProfile(r.Context(), pathProfileID(r))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	result := s.estimator.Estimate(profile, school)
	metrics.ChancesEstimates.WithLabelValues(string(result.Tier)).Inc()

	s.jsonResponse(w, http.StatusOK, chancesResponse{
		School:        school,
		ChancesResult: result,
		KnownSchool:   s.estimator.KnownSchool(school),
	})
}

func (s *Server) handleListSchools(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"schools":            s.tables.SelectiveSchools(),
		"defaultSelectivity": s.tables.DefaultSelectivity,
	})
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req types.ClassifyRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	parsed := s.classifier.Classify(req.Text)
	metrics.Classifications.WithLabelValues(string(parsed.Type)).Inc()

	s.jsonResponse(w, http.StatusOK, parsed)
}
