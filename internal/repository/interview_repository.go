package repository

import (
	"ai_interview_backend/internal/model"
	"ai_interview_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// InterviewRepository 面试文档存储，每场面试一个文档
type InterviewRepository struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewInterviewRepository(ctx context.Context, client *mongo.Client, database, collection string) (*InterviewRepository, error) {
	col := client.Database(database).Collection(collection)
	r := &InterviewRepository{client: client, col: col}

	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "candidate_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("create interview indexes: %w", err)
	}

	return r, nil
}

// ParseID 非法的十六进制ID返回 ErrInvalidInterviewID
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, util.ErrInvalidInterviewID
	}
	return oid, nil
}

func (r *InterviewRepository) Create(ctx context.Context, interview *model.Interview) error {
	now := time.Now().UTC()
	if interview.ID.IsZero() {
		interview.ID = primitive.NewObjectID()
	}
	interview.CreatedAt, interview.UpdatedAt = now, now
	if interview.Questions == nil {
		interview.Questions = []model.Question{}
	}

	_, err := r.col.InsertOne(ctx, interview)
	return err
}

func (r *InterviewRepository) FindByID(ctx context.Context, id string) (*model.Interview, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindOwned 按候选人过滤，非本人的面试与不存在同样返回 ErrInterviewNotFound
func (r *InterviewRepository) FindOwned(ctx context.Context, id string, candidateID uint) (*model.Interview, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid, "candidate_id": candidateID})
}

func (r *InterviewRepository) FindLatestByCandidate(ctx context.Context, candidateID uint) (*model.Interview, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var interview model.Interview
	err := r.col.FindOne(ctx, bson.M{"candidate_id": candidateID}, opts).Decode(&interview)
	if err != nil {
		return nil, notFound(err)
	}
	return &interview, nil
}

func (r *InterviewRepository) ListByCandidate(ctx context.Context, candidateID uint) ([]model.Interview, error) {
	return r.find(ctx, bson.M{"candidate_id": candidateID})
}

func (r *InterviewRepository) ListCompleted(ctx context.Context) ([]model.Interview, error) {
	return r.find(ctx, bson.M{"status": model.StatusCompleted})
}

// SetAnswer 单次原子更新，只在面试仍处于 in-progress 且该题存在时写入
func (r *InterviewRepository) SetAnswer(ctx context.Context, id primitive.ObjectID, candidateID uint, index int, answer string) error {
	filter := bson.M{
		"_id":          id,
		"candidate_id": candidateID,
		"status":       model.StatusInProgress,
	}
	filter[fmt.Sprintf("questions.%d", index)] = bson.M{"$exists": true}
	update := bson.M{"$set": bson.M{
		fmt.Sprintf("questions.%d.answer", index): answer,
		"updated_at": time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrInterviewNotInProgress
	}
	return nil
}

// Replace 整体覆盖文档，用于面试官重新分配题目
func (r *InterviewRepository) Replace(ctx context.Context, interview *model.Interview) error {
	interview.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": interview.ID}, interview)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrInterviewNotFound
	}
	return nil
}

// CompleteInterview 只写入各题分数、总分和总结并标记 completed，不触碰答案
func (r *InterviewRepository) CompleteInterview(ctx context.Context, id primitive.ObjectID, from []model.InterviewStatus, scores map[int]int, totalScore int, summary string) error {
	set := bson.M{
		"total_score": totalScore,
		"summary":     summary,
		"status":      model.StatusCompleted,
		"updated_at":  time.Now().UTC(),
	}
	for i, score := range scores {
		set[fmt.Sprintf("questions.%d.score", i)] = score
	}
	filter := bson.M{"_id": id, "status": bson.M{"$in": from}}

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrInterviewNotFound
	}
	return nil
}

// TransitionStatus 仅当当前状态为 from 时切换到 to
func (r *InterviewRepository) TransitionStatus(ctx context.Context, id primitive.ObjectID, from []model.InterviewStatus, to model.InterviewStatus) error {
	filter := bson.M{"_id": id}
	if len(from) > 0 {
		filter["status"] = bson.M{"$in": from}
	}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now().UTC()}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return util.ErrInterviewNotFound
	}
	return nil
}

func (r *InterviewRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *InterviewRepository) findOne(ctx context.Context, filter bson.M) (*model.Interview, error) {
	var interview model.Interview
	if err := r.col.FindOne(ctx, filter).Decode(&interview); err != nil {
		return nil, notFound(err)
	}
	return &interview, nil
}

func (r *InterviewRepository) find(ctx context.Context, filter bson.M) ([]model.Interview, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.Interview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return util.ErrInterviewNotFound
	}
	return err
}
