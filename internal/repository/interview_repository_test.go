package repository

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockRepo(mt *mtest.T) *InterviewRepository {
	mt.Helper()
	// createIndexes
	mt.AddMockResponses(mtest.CreateSuccessResponse())
	repo, err := NewInterviewRepository(context.Background(), mt.Client, mt.DB.Name(), mt.Coll.Name())
	require.NoError(mt, err)
	mt.ClearEvents()
	return repo
}

func matched(n int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
}

// updateStatement 返回最近一次 update 命令的过滤条件和更新文档
func updateStatement(mt *mtest.T) (filter, update bson.Raw) {
	mt.Helper()
	evt := mt.GetStartedEvent()
	require.NotNil(mt, evt)
	require.Equal(mt, "update", evt.CommandName)
	stmt := evt.Command.Lookup("updates", "0").Document()
	return stmt.Lookup("q").Document(), stmt.Lookup("u").Document()
}

func keys(t *testing.T, doc bson.Raw) []string {
	elems, err := doc.Elements()
	require.NoError(t, err)
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.Key())
	}
	return out
}

func statusIn(t *testing.T, filter bson.Raw) []model.InterviewStatus {
	var from []model.InterviewStatus
	require.NoError(t, filter.Lookup("status", "$in").Unmarshal(&from))
	return from
}

func TestInterviewRepository_SetAnswer(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("writes a single answer path", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(matched(1))

		require.NoError(mt, repo.SetAnswer(context.Background(), id, 7, 2, "late"))

		filter, update := updateStatement(mt)
		assert.Equal(mt, id, filter.Lookup("_id").ObjectID())
		var candidateID uint
		require.NoError(mt, filter.Lookup("candidate_id").Unmarshal(&candidateID))
		assert.Equal(mt, uint(7), candidateID)
		assert.Equal(mt, string(model.StatusInProgress), filter.Lookup("status").StringValue())
		assert.True(mt, filter.Lookup("questions.2", "$exists").Boolean())

		set := update.Lookup("$set").Document()
		assert.ElementsMatch(mt, []string{"questions.2.answer", "updated_at"}, keys(mt.T, set))
		assert.Equal(mt, "late", set.Lookup("questions.2.answer").StringValue())
	})

	mt.Run("no match is not in progress", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(matched(0))

		err := repo.SetAnswer(context.Background(), id, 7, 9, "late")
		assert.ErrorIs(mt, err, util.ErrInterviewNotInProgress)
	})
}

func TestInterviewRepository_CompleteInterview(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("sets scores without touching answers", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(matched(1))

		err := repo.CompleteInterview(context.Background(), id,
			[]model.InterviewStatus{model.StatusInProgress}, map[int]int{0: 80, 3: 55}, 23, "No Hire")
		require.NoError(mt, err)

		filter, update := updateStatement(mt)
		assert.Equal(mt, id, filter.Lookup("_id").ObjectID())
		assert.Equal(mt, []model.InterviewStatus{model.StatusInProgress}, statusIn(mt.T, filter))

		set := update.Lookup("$set").Document()
		assert.ElementsMatch(mt, []string{
			"questions.0.score", "questions.3.score", "total_score", "summary", "status", "updated_at",
		}, keys(mt.T, set))

		var score, total int
		require.NoError(mt, set.Lookup("questions.3.score").Unmarshal(&score))
		require.NoError(mt, set.Lookup("total_score").Unmarshal(&total))
		assert.Equal(mt, 55, score)
		assert.Equal(mt, 23, total)
		assert.Equal(mt, "No Hire", set.Lookup("summary").StringValue())
		assert.Equal(mt, string(model.StatusCompleted), set.Lookup("status").StringValue())
	})

	mt.Run("status moved on", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(matched(0))

		err := repo.CompleteInterview(context.Background(), id,
			[]model.InterviewStatus{model.StatusFailed}, nil, 0, "")
		assert.ErrorIs(mt, err, util.ErrInterviewNotFound)
	})
}

func TestInterviewRepository_TransitionStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("guards on the from set", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(matched(1))

		from := []model.InterviewStatus{model.StatusInProgress, model.StatusFailed}
		require.NoError(mt, repo.TransitionStatus(context.Background(), id, from, model.StatusFailed))

		filter, update := updateStatement(mt)
		assert.Equal(mt, from, statusIn(mt.T, filter))
		assert.Equal(mt, string(model.StatusFailed), update.Lookup("$set", "status").StringValue())
	})

	mt.Run("no match", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(matched(0))

		err := repo.TransitionStatus(context.Background(), id, []model.InterviewStatus{model.StatusPending}, model.StatusInProgress)
		assert.ErrorIs(mt, err, util.ErrInterviewNotFound)
	})
}

func TestInterviewRepository_ReplaceFiltersOnIDOnly(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("replace", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		mt.AddMockResponses(matched(1))

		iv := &model.Interview{ID: primitive.NewObjectID(), CandidateID: 3, Status: model.StatusPending}
		require.NoError(mt, repo.Replace(context.Background(), iv))
		assert.False(mt, iv.UpdatedAt.IsZero())

		filter, update := updateStatement(mt)
		assert.Equal(mt, []string{"_id"}, keys(mt.T, filter))
		assert.Equal(mt, string(model.StatusPending), update.Lookup("status").StringValue())
	})
}

func TestInterviewRepository_FindOwned(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	id := primitive.NewObjectID()

	mt.Run("decodes the owned document", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "candidate_id", Value: 4},
			{Key: "status", Value: "in-progress"},
			{Key: "questions", Value: bson.A{
				bson.D{{Key: "question", Value: "Explain defer"}, {Key: "difficulty", Value: "easy"}, {Key: "time_limit", Value: 30}},
			}},
		}))

		got, err := repo.FindOwned(context.Background(), id.Hex(), 4)
		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
		assert.Equal(mt, model.StatusInProgress, got.Status)
		require.Len(mt, got.Questions, 1)
		assert.Equal(mt, model.Question{Text: "Explain defer", Difficulty: model.Easy, TimeLimit: 30}, got.Questions[0])

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		var candidateID uint
		require.NoError(mt, evt.Command.Lookup("filter", "candidate_id").Unmarshal(&candidateID))
		assert.Equal(mt, uint(4), candidateID)
	})

	mt.Run("missing is not found", func(mt *mtest.T) {
		repo := newMockRepo(mt)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindOwned(context.Background(), id.Hex(), 4)
		assert.ErrorIs(mt, err, util.ErrInterviewNotFound)
	})

	mt.Run("malformed id never reaches the server", func(mt *mtest.T) {
		repo := newMockRepo(mt)

		_, err := repo.FindOwned(context.Background(), "xyz", 4)
		assert.ErrorIs(mt, err, util.ErrInvalidInterviewID)
		assert.Nil(mt, mt.GetStartedEvent())
	})
}
