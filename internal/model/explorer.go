package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Explorer 小探险家（匿名访客）及其获得的成就
// ID 由前端生成并持久保存在浏览器中
type Explorer struct {
	ID           string    `bson:"_id" json:"id"`
	Achievements []string  `bson:"achievements" json:"achievements"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection 集合名称
func (Explorer) Collection() string {
	return "explorers"
}

// EnsureIndexes 创建索引
func (e Explorer) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(e.Collection()).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_updated"),
		},
	})
	return err
}

// HasAchievement 是否已获得成就
func (e *Explorer) HasAchievement(id string) bool {
	for _, a := range e.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

// Achievement 成就定义
type Achievement struct {
	ID          string `json:"id"`
	Emoji       string `json:"emoji"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

const (
	AchievementStoryExplorer           = "story-explorer"
	AchievementSunGrazer               = "sun-grazer"
	AchievementAuroraArtist            = "aurora-artist"
	AchievementCosmicPhotographer      = "cosmic-photographer"
	AchievementStellarInterviewer      = "stellar-interviewer"
	AchievementSkyWatcher              = "sky-watcher"
	AchievementPlanetDesigner          = "planet-designer"
	AchievementCosmicConversationalist = "cosmic-conversationalist"
)

// Achievements 成就目录，顺序即展示顺序
var Achievements = []Achievement{
	{ID: AchievementStoryExplorer, Emoji: "🗺️", Title: "Story Explorer", Description: "Made 5 choices in the Living Storybook."},
	{ID: AchievementSunGrazer, Emoji: "🌟", Title: "Sun Grazer", Description: "Completed the Parker Solar Probe mission."},
	{ID: AchievementAuroraArtist, Emoji: "🎨", Title: "Aurora Artist", Description: "Painted a beautiful aurora."},
	{ID: AchievementCosmicPhotographer, Emoji: "📸", Title: "Cosmic Photographer", Description: "Completed the Telescope Image Quiz."},
	{ID: AchievementStellarInterviewer, Emoji: "🎙️", Title: "Stellar Interviewer", Description: "Heard from all of Sunny's friends."},
	{ID: AchievementSkyWatcher, Emoji: "👀", Title: "Sky Watcher", Description: "Checked for aurora activity."},
	{ID: AchievementPlanetDesigner, Emoji: "🪐", Title: "Planet Designer", Description: "Designed a new planet from scratch."},
	{ID: AchievementCosmicConversationalist, Emoji: "💬", Title: "Cosmic Conversationalist", Description: "Had your first chat with Sunny in AR Mode."},
}

// LookupAchievement 按 ID 查找成就
func LookupAchievement(id string) (Achievement, bool) {
	for _, a := range Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
