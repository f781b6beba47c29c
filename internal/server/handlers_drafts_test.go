package server

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jonathan/admissions-advisor/internal/drafts"
	"github.com/jonathan/admissions-advisor/internal/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postMessage sends chat text and returns the created draft.
func postMessage(t *testing.T, env *testEnv, id uuid.UUID, token, text string) drafts.Draft {
	t.Helper()

	w := env.do(http.MethodPost, "/profiles/"+id.String()+"/messages", token, map[string]string{"text": text})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var draft drafts.Draft
	decodeBody(t, w, &draft)
	require.NotEqual(t, uuid.Nil, draft.ID)
	return draft
}

func confirmPath(id, draftID uuid.UUID) string {
	return "/profiles/" + id.String() + "/drafts/" + draftID.String() + "/confirm"
}

func TestMessage_CreatesDraft(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")

	draft := postMessage(t, env, id, token, "I got a 1520 on the SAT")
	assert.Equal(t, id, draft.ProfileID)
	assert.Equal(t, types.ParsedSAT, draft.Parsed.Type)
	assert.Equal(t, types.ScoreData{Value: 1520}, draft.Parsed.Data)

	w := env.do(http.MethodGet, "/profiles/"+id.String()+"/drafts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Drafts []drafts.Draft `json:"drafts"`
	}
	decodeBody(t, w, &list)
	require.Len(t, list.Drafts, 1)
	assert.Equal(t, draft.ID, list.Drafts[0].ID)
}

func TestMessage_UnknownTextIsNotDrafted(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")

	w := env.do(http.MethodPost, "/profiles/"+id.String()+"/messages", token, map[string]string{"text": "asdkfj random text"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Parsed types.ParsedData `json:"parsed"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, types.ParsedUnknown, resp.Parsed.Type)

	list, err := env.drafts.List(t.Context(), id)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMessage_Validation(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")

	w := env.do(http.MethodPost, "/profiles/"+id.String()+"/messages", token, map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirm_MapsEachTypeToARecord(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")

	messages := []string{
		"My weighted GPA is 4.4",
		"My GPA is 3.9",
		"I got a 1520 on the SAT",
		"I scored a 34 on the ACT",
		"I'm the president of the robotics club",
		"I won first place at the state science fair",
		"I want to do research this summer",
		"I want to go to Stanford",
	}
	for _, text := range messages {
		draft := postMessage(t, env, id, token, text)
		w := env.do(http.MethodPost, confirmPath(id, draft.ID), token, nil)
		require.Equal(t, http.StatusOK, w.Code, "%s: %s", text, w.Body.String())

		var resp struct {
			Type types.ParsedType `json:"type"`
		}
		decodeBody(t, w, &resp)
		assert.Equal(t, draft.Parsed.Type, resp.Type)
	}

	profile, err := env.profiles.GetProfile(t.Context(), id)
	require.NoError(t, err)

	require.NotNil(t, profile.Academics)
	assert.Equal(t, 4.4, *profile.Academics.GPAWeighted)
	assert.Equal(t, 3.9, *profile.Academics.GPAUnweighted)
	require.NotNil(t, profile.Testing)
	assert.Equal(t, 1520, *profile.Testing.SATTotal)
	assert.Equal(t, 34, *profile.Testing.ACTComposite)

	require.Len(t, profile.Activities, 1)
	assert.True(t, profile.Activities[0].IsLeadership)
	require.Len(t, profile.Awards, 1)
	assert.Equal(t, types.AwardLevelRegional, profile.Awards[0].Level)
	require.Len(t, profile.Goals, 1)
	assert.Equal(t, types.GoalResearch, profile.Goals[0].Category)
	require.Len(t, profile.Schools, 1)
	assert.Equal(t, "Stanford", profile.Schools[0].Name)
	assert.NotEqual(t, types.TierUnknown, profile.Schools[0].Tier)

	list, err := env.drafts.List(t.Context(), id)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConfirm_ConcurrentScoresAreBothKept(t *testing.T) {
	env := newTestEnv(t)

	for round := 0; round < 25; round++ {
		id, token := env.createProfile("Ada")
		sat := postMessage(t, env, id, token, "I got a 1520 on the SAT")
		act := postMessage(t, env, id, token, "I scored a 34 on the ACT")

		var wg sync.WaitGroup
		codes := make([]int, 2)
		for i, draft := range []drafts.Draft{sat, act} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes[i] = env.do(http.MethodPost, confirmPath(id, draft.ID), token, nil).Code
			}()
		}
		wg.Wait()
		require.Equal(t, []int{http.StatusOK, http.StatusOK}, codes)

		profile, err := env.profiles.GetProfile(t.Context(), id)
		require.NoError(t, err)
		require.NotNil(t, profile.Testing)
		require.NotNil(t, profile.Testing.SATTotal, "round %d lost the SAT score", round)
		require.NotNil(t, profile.Testing.ACTComposite, "round %d lost the ACT score", round)
		assert.Equal(t, 1520, *profile.Testing.SATTotal)
		assert.Equal(t, 34, *profile.Testing.ACTComposite)
	}
}

func TestConfirm_GPAKeepsOtherAcademics(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")

	w := env.do(http.MethodPut, "/profiles/"+id.String()+"/academics", token,
		map[string]any{"gpaWeighted": 4.3, "classRank": "5/400"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	draft := postMessage(t, env, id, token, "My GPA is 3.9")
	w = env.do(http.MethodPost, confirmPath(id, draft.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Record types.Academics `json:"record"`
	}
	decodeBody(t, w, &resp)
	require.NotNil(t, resp.Record.GPAUnweighted)
	require.NotNil(t, resp.Record.GPAWeighted)
	assert.Equal(t, 3.9, *resp.Record.GPAUnweighted)
	assert.Equal(t, 4.3, *resp.Record.GPAWeighted)
	require.NotNil(t, resp.Record.ClassRank)
	assert.Equal(t, "5/400", *resp.Record.ClassRank)
}

func TestConfirm_Twice(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")
	draft := postMessage(t, env, id, token, "My GPA is 3.9")

	require.Equal(t, http.StatusOK, env.do(http.MethodPost, confirmPath(id, draft.ID), token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPost, confirmPath(id, draft.ID), token, nil).Code)
}

func TestConfirm_UnknownDraftIsUnprocessable(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")

	draft := &drafts.Draft{
		ProfileID: id,
		Parsed:    types.ParsedData{Type: types.ParsedUnknown, Data: types.UnknownData{Text: "hmm"}, Confidence: types.ConfidenceLow, Original: "hmm"},
	}
	require.NoError(t, env.drafts.Save(t.Context(), draft))

	w := env.do(http.MethodPost, confirmPath(id, draft.ID), token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// the draft stays until it is discarded
	_, err := env.drafts.Get(t.Context(), id, draft.ID)
	assert.NoError(t, err)
}

func TestConfirm_OtherProfilesDraftIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")
	otherID, otherToken := env.createProfile("Grace")
	draft := postMessage(t, env, otherID, otherToken, "My GPA is 3.9")

	w := env.do(http.MethodPost, confirmPath(id, draft.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirm_InvalidDraftID(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")

	w := env.do(http.MethodPost, "/profiles/"+id.String()+"/drafts/nope/confirm", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDiscardDraft(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")
	draft := postMessage(t, env, id, token, "I volunteer at the hospital on weekends")
	path := "/profiles/" + id.String() + "/drafts/" + draft.ID.String()

	require.Equal(t, http.StatusOK, env.do(http.MethodDelete, path, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, path, token, nil).Code)

	profile, err := env.profiles.GetProfile(t.Context(), id)
	require.NoError(t, err)
	assert.Empty(t, profile.Activities)
}

func TestDeleteProfile_RemovesDrafts(t *testing.T) {
	env := newTestEnv(t)
	id, token := env.createProfile("Ada")
	postMessage(t, env, id, token, "My GPA is 3.9")
	postMessage(t, env, id, token, "I want to go to Stanford")

	require.Equal(t, http.StatusOK, env.do(http.MethodDelete, "/profiles/"+id.String(), token, nil).Code)

	list, err := env.drafts.List(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDraftFlow_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	env := newTestEnv(t, withDraftStore(drafts.NewRedisStore(client, drafts.DefaultTTL)))
	id, token := env.createProfile("Ada")

	draft := postMessage(t, env, id, token, "My weighted GPA is 4.4")
	assert.Len(t, mr.Keys(), 1)

	w := env.do(http.MethodPost, confirmPath(id, draft.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, mr.Keys())

	profile, err := env.profiles.GetProfile(t.Context(), id)
	require.NoError(t, err)
	require.NotNil(t, profile.Academics)
	assert.Equal(t, 4.4, *profile.Academics.GPAWeighted)
	assert.Nil(t, profile.Academics.GPAUnweighted)
}

func TestDrafts_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	env := newTestEnv(t, withDraftStore(drafts.NewRedisStore(client, drafts.DefaultTTL)))
	id, token := env.createProfile("Ada")
	mr.Close()

	w := env.do(http.MethodPost, "/profiles/"+id.String()+"/messages", token, map[string]string{"text": "My GPA is 3.9"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", errorMessage(t, w))
}
