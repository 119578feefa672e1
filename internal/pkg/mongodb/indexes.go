package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"cosmoconnect/internal/model"
)

// Model 需要管理索引的集合
type Model interface {
	Collection() string
	EnsureIndexes(ctx context.Context, db *mongo.Database) error
}

// managedModels 启动时需要建索引的集合
func managedModels() []Model {
	return []Model{
		&model.Explorer{},
	}
}

// EnsureIndexes 应用启动时为所有集合创建索引
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	return ensureAll(ctx, db, managedModels()...)
}

func ensureAll(ctx context.Context, db *mongo.Database, models ...Model) error {
	for _, m := range models {
		if err := m.EnsureIndexes(ctx, db); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", m.Collection(), err)
		}
	}
	return nil
}
