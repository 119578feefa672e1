package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cosmoconnect/internal/model"
)

// ExplorerRepo 探险家成就仓库 (MongoDB)
type ExplorerRepo struct {
	collection *mongo.Collection
}

// NewExplorerRepo 创建探险家仓库
func NewExplorerRepo(db *mongo.Database) *ExplorerRepo {
	return &ExplorerRepo{
		collection: db.Collection(model.Explorer{}.Collection()),
	}
}

// FindByID 根据 ID 查询，不存在时返回 nil
func (r *ExplorerRepo) FindByID(ctx context.Context, id string) (*model.Explorer, error) {
	var explorer model.Explorer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&explorer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &explorer, nil
}

// AddAchievement 授予成就，返回是否为新获得
// 已获得时过滤条件不匹配，upsert 会因 _id 冲突失败，视为已存在
func (r *ExplorerRepo) AddAchievement(ctx context.Context, id, achievementID string) (bool, error) {
	now := time.Now()

	filter := bson.M{
		"_id":          id,
		"achievements": bson.M{"$ne": achievementID},
	}
	update := bson.M{
		"$addToSet":    bson.M{"achievements": achievementID},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0 || result.UpsertedCount > 0, nil
}
