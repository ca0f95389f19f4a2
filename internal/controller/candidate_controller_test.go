package controller

import (
	"ai_interview_backend/internal/model"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateInterviewFlow(t *testing.T) {
	h := newHarness(t)
	token, candidateID := h.signup("Jane", "jane@example.com", model.Candidate)

	iv := h.startInterview(token)
	assert.Equal(t, model.StatusInProgress, iv.Status)
	assert.Equal(t, candidateID, iv.CandidateID)
	assert.Equal(t, "555-0100", iv.CandidatePhone)
	require.Len(t, iv.Questions, 6)
	assert.Equal(t, []int{30, 30, 50, 50, 80, 80}, []int{
		iv.Questions[0].TimeLimit, iv.Questions[1].TimeLimit, iv.Questions[2].TimeLimit,
		iv.Questions[3].TimeLimit, iv.Questions[4].TimeLimit, iv.Questions[5].TimeLimit,
	})

	for i := range iv.Questions {
		w := h.do(http.MethodPost, "/api/candidate/submit-answer", token, gin.H{
			"interviewId": iv.ID.Hex(), "questionIndex": i, "answer": "answer text",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Message           string `json:"message"`
			NextQuestionIndex int    `json:"nextQuestionIndex"`
			IsFinished        bool   `json:"isFinished"`
		}
		decode(t, w, &resp)
		assert.Equal(t, "Answer saved successfully", resp.Message)
		assert.Equal(t, i+1, resp.NextQuestionIndex)
		assert.Equal(t, i == 5, resp.IsFinished)
	}

	w := h.do(http.MethodPost, "/api/candidate/submit-answer", token, gin.H{
		"interviewId": iv.ID.Hex(), "questionIndex": 6, "answer": "one too many",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Question index out of bounds", errorMessage(t, w))

	w = h.do(http.MethodPost, "/api/candidate/finalize-interview", token, gin.H{"interviewId": iv.ID.Hex()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var final struct {
		Message    string `json:"message"`
		TotalScore int    `json:"totalScore"`
		Summary    string `json:"summary"`
	}
	decode(t, w, &final)
	assert.Equal(t, "Interview finalized, scored, and results emailed!", final.Message)
	assert.Equal(t, 90, final.TotalScore)
	assert.Equal(t, "Potential Hire\nSolid basics", final.Summary)
	assert.Equal(t, []string{"jane@example.com"}, h.mailer.to)

	w = h.do(http.MethodPost, "/api/candidate/finalize-interview", token, gin.H{"interviewId": iv.ID.Hex()})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Interview already completed.", errorMessage(t, w))

	w = h.do(http.MethodPost, "/api/candidate/submit-answer", token, gin.H{
		"interviewId": iv.ID.Hex(), "questionIndex": 0, "answer": "rewrite",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Interview is not in progress", errorMessage(t, w))

	w = h.do(http.MethodGet, "/api/candidate/interview/"+iv.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got interviewEnvelope
	decode(t, w, &got)
	assert.Equal(t, model.StatusCompleted, got.Interview.Status)
	assert.Equal(t, 90, got.Interview.TotalScore)
	for _, q := range got.Interview.Questions {
		require.NotNil(t, q.Score)
		assert.Equal(t, "answer text", q.Answer)
	}

	w = h.do(http.MethodGet, "/api/candidate/interviews", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Interviews []model.Interview `json:"interviews"`
	}
	decode(t, w, &list)
	assert.Len(t, list.Interviews, 1)
}

func TestStartInterview_RejectsBadUploads(t *testing.T) {
	h := newHarness(t)
	token, id := h.signup("Jane", "jane@example.com", model.Candidate)

	w := h.upload(token, "", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Resume file required", errorMessage(t, w))

	w = h.upload(token, "resume.docx", "binary", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Resume must be a PDF or plain text file", errorMessage(t, w))

	w = h.upload(token, "resume.txt", "   \n  ", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list, _ := h.store.ListByCandidate(t.Context(), id)
	assert.Empty(t, list)
}

func TestSubmitAnswer_Validation(t *testing.T) {
	h := newHarness(t)
	token, _ := h.signup("Jane", "jane@example.com", model.Candidate)
	iv := h.startInterview(token)

	cases := []struct {
		name    string
		body    gin.H
		status  int
		message string
	}{
		{"missing index", gin.H{"interviewId": iv.ID.Hex(), "answer": "a"}, http.StatusBadRequest, "Invalid questionIndex or missing answer"},
		{"blank answer", gin.H{"interviewId": iv.ID.Hex(), "questionIndex": 0, "answer": "  "}, http.StatusBadRequest, "Invalid questionIndex or missing answer"},
		{"negative index", gin.H{"interviewId": iv.ID.Hex(), "questionIndex": -1, "answer": "a"}, http.StatusBadRequest, "Question index out of bounds"},
		{"malformed id", gin.H{"interviewId": "xyz", "questionIndex": 0, "answer": "a"}, http.StatusBadRequest, "Invalid Interview ID format."},
		{"unknown id", gin.H{"interviewId": "000000000000000000000000", "questionIndex": 0, "answer": "a"}, http.StatusNotFound, "Interview not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := h.do(http.MethodPost, "/api/candidate/submit-answer", token, tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.message, errorMessage(t, w))
		})
	}
}

func TestCandidateCannotSeeOthersInterviews(t *testing.T) {
	h := newHarness(t)
	owner, _ := h.signup("Jane", "jane@example.com", model.Candidate)
	other, _ := h.signup("Joe", "joe@example.com", model.Candidate)
	iv := h.startInterview(owner)

	w := h.do(http.MethodGet, "/api/candidate/interview/"+iv.ID.Hex(), other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodPost, "/api/candidate/submit-answer", other, gin.H{
		"interviewId": iv.ID.Hex(), "questionIndex": 0, "answer": "hijack",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = h.do(http.MethodPost, "/api/candidate/finalize-interview", other, gin.H{"interviewId": iv.ID.Hex()})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, model.StatusInProgress, h.store.Get(iv.ID).Status)
}

func TestFinalize_ScoringFailureLeavesInterviewFailed(t *testing.T) {
	h := newHarness(t)
	token, _ := h.signup("Jane", "jane@example.com", model.Candidate)
	iv := h.startInterview(token)
	h.do(http.MethodPost, "/api/candidate/submit-answer", token, gin.H{
		"interviewId": iv.ID.Hex(), "questionIndex": 0, "answer": "a",
	})

	h.gemini.failed = true
	w := h.do(http.MethodPost, "/api/candidate/finalize-interview", token, gin.H{"interviewId": iv.ID.Hex()})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, model.StatusFailed, h.store.Get(iv.ID).Status)
	assert.Empty(t, h.mailer.to)

	h.gemini.failed = false
	w = h.do(http.MethodPost, "/api/candidate/finalize-interview", token, gin.H{"interviewId": iv.ID.Hex()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, model.StatusCompleted, h.store.Get(iv.ID).Status)
}

func TestFinalize_EmailFailureStillCompletes(t *testing.T) {
	h := newHarness(t)
	token, _ := h.signup("Jane", "jane@example.com", model.Candidate)
	iv := h.startInterview(token)
	h.mailer.fail = true

	w := h.do(http.MethodPost, "/api/candidate/finalize-interview", token, gin.H{"interviewId": iv.ID.Hex()})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Interview was scored, but the results email could not be sent.", errorMessage(t, w))

	stored := h.store.Get(iv.ID)
	assert.Equal(t, model.StatusCompleted, stored.Status)
	assert.Zero(t, stored.TotalScore)
}

func TestAuthEndpoints(t *testing.T) {
	h := newHarness(t)
	token, id := h.signup("Jane", "jane@example.com", model.Candidate)

	w := h.do(http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Jane", "email": "jane@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", errorMessage(t, w))

	w = h.do(http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Root", "email": "root@example.com", "password": "secret1", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "jane@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid credentials", errorMessage(t, w))

	w = h.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "jane@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email and password are required", errorMessage(t, w))

	w = h.do(http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		User model.UserSummary `json:"user"`
	}
	decode(t, w, &profile)
	assert.Equal(t, id, profile.User.ID)
	assert.Equal(t, model.Candidate, profile.User.Role)
	assert.NotContains(t, w.Body.String(), "password")

	w = h.do(http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
