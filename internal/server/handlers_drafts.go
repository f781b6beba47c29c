package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/drafts"
	"github.com/jonathan/admissions-advisor/internal/metrics"
	"github.com/jonathan/admissions-advisor/internal/types"
)

// confirmResponse reports the record a draft became.
type confirmResponse struct {
	Type   types.ParsedType `json:"type"`
	Record any              `json:"record"`
}

// handleMessage classifies one chat message. Recognised signals are held as a
// draft for the user to confirm; unrecognised text is echoed back without a draft.
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	profileID := pathProfileID(r)

	var req types.MessageRequest
	if err := decodeRequest(w, r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if _, err := s.loadProfile(r.Context(), profileID); err != nil {
		s.handleError(w, r, err)
		return
	}

	parsed := s.classifier.Classify(req.Text)
	metrics.Classifications.WithLabelValues(string(parsed.Type)).Inc()

	if parsed.Type == types.ParsedUnknown {
		s.jsonResponse(w, http.StatusOK, map[string]any{"parsed": parsed})
		return
	}

	draft := &drafts.Draft{ProfileID: profileID, Parsed: parsed}
	if err := s.drafts.Save(r.Context(), draft); err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, draft)
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	profileID := pathProfileID(r)
	if _, err := s.loadProfile(r.Context(), profileID); err != nil {
		s.handleError(w, r, err)
		return
	}

	list, err := s.drafts.List(r.Context(), profileID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"drafts": list})
}

func (s *Server) handleDiscardDraft(w http.ResponseWriter, r *http.Request) {
	draftID, err := uuid.Parse(r.PathValue("draft_id"))
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "draft_id", Message: "must be a UUID"})
		return
	}

	if err := s.drafts.Delete(r.Context(), pathProfileID(r), draftID); err != nil {
		s.handleError(w, r, draftError(err, draftID))
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "discarded"})
}

func (s *Server) handleConfirmDraft(w http.ResponseWriter, r *http.Request) {
	profileID := pathProfileID(r)
	draftID, err := uuid.Parse(r.PathValue("draft_id"))
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "draft_id", Message: "must be a UUID"})
		return
	}

	draft, err := s.drafts.Get(r.Context(), profileID, draftID)
	if err != nil {
		s.handleError(w, r, draftError(err, draftID))
		return
	}

	record, err := s.applyDraft(r, profileID, draft.Parsed)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	// The record is saved; a draft that already expired is not an error.
	if err := s.drafts.Delete(r.Context(), profileID, draftID); err != nil && !errors.Is(err, drafts.ErrNotFound) {
		s.handleError(w, r, err)
		return
	}
	metrics.DraftsConfirmed.WithLabelValues(string(draft.Parsed.Type)).Inc()

	s.jsonResponse(w, http.StatusOK, confirmResponse{Type: draft.Parsed.Type, Record: record})
}

// applyDraft writes a parsed signal into the profile and returns the stored record.
// GPA and test scores merge into the stored section; everything else is a new record.
func (s *Server) applyDraft(r *http.Request, profileID uuid.UUID, parsed types.ParsedData) (any, error) {
	ctx := r.Context()

	switch d := parsed.Data.(type) {
	case types.GPAData:
		patch := types.Academics{}
		if d.IsWeighted {
			patch.GPAWeighted = types.Float64Ptr(d.Value)
		} else {
			patch.GPAUnweighted = types.Float64Ptr(d.Value)
		}
		academics, err := s.profiles.MergeAcademics(ctx, profileID, patch)
		if err != nil {
			return nil, storeError(err, profileID)
		}
		return academics, nil

	case types.ScoreData:
		return s.mergeScore(ctx, profileID, parsed.Type, d.Value)

	case types.ActivityData:
		rec, err := s.profiles.CreateActivity(ctx, profileID, types.Activity{Title: d.Title, IsLeadership: d.IsLeadership})
		return rec, storeError(err, profileID)

	case types.AwardData:
		rec, err := s.profiles.CreateAward(ctx, profileID, types.Award{Title: d.Title, Level: d.Level})
		return rec, storeError(err, profileID)

	case types.GoalData:
		rec, err := s.profiles.CreateGoal(ctx, profileID, types.Goal{Title: d.Title, Category: d.Category})
		return rec, storeError(err, profileID)

	case types.SchoolData:
		return s.addSchool(r, profileID, d.Name)
	}

	return nil, &ErrNotConfirmable{Type: parsed.Type}
}

func (s *Server) mergeScore(ctx context.Context, profileID uuid.UUID, kind types.ParsedType, value int) (any, error) {
	patch := types.Testing{}
	switch kind {
	case types.ParsedSAT:
		patch.SATTotal = types.IntPtr(value)
	case types.ParsedACT:
		patch.ACTComposite = types.IntPtr(value)
	default:
		return nil, &ErrNotConfirmable{Type: kind}
	}

	scores, err := s.profiles.MergeTesting(ctx, profileID, patch)
	if err != nil {
		return nil, storeError(err, profileID)
	}
	return scores, nil
}

// addSchool stores a school with the tier the estimator assigns for the current profile.
func (s *Server) addSchool(r *http.Request, profileID uuid.UUID, name string) (*types.SchoolInterest, error) {
	profile, err := s.loadProfile(r.Context(), profileID)
	if err != nil {
		return nil, err
	}

	result := s.estimator.Estimate(profile, name)
	metrics.ChancesEstimates.WithLabelValues(string(result.Tier)).Inc()

	school, err := s.profiles.CreateSchool(r.Context(), profileID, types.SchoolInterest{Name: name, Tier: result.Tier})
	if err != nil {
		return nil, storeError(err, profileID)
	}
	return school, nil
}

func draftError(err error, draftID uuid.UUID) error {
	if errors.Is(err, drafts.ErrNotFound) {
		return &ErrDraftNotFound{DraftID: draftID}
	}
	return err
}
