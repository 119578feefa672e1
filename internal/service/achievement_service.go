package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"cosmoconnect/internal/model"
	"cosmoconnect/internal/pkg/logger"
)

// AchievementService 成就服务
type AchievementService interface {
	// List 成就目录及探险家是否已获得
	List(ctx context.Context, explorerID string) ([]model.AchievementView, error)
	// Award 授予成就，返回是否为新获得；重复授予不会报错
	Award(ctx context.Context, explorerID, achievementID string) (bool, error)
}

type achievementService struct {
	store  AchievementStore
	logger zerolog.Logger
}

// NewAchievementService 创建成就服务
func NewAchievementService(store AchievementStore) AchievementService {
	return &achievementService{
		store:  store,
		logger: logger.Component("achievement"),
	}
}

func (s *achievementService) List(ctx context.Context, explorerID string) ([]model.AchievementView, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	explorerID = strings.TrimSpace(explorerID)
	if explorerID == "" {
		return nil, ErrInvalidExplorer
	}

	explorer, err := s.store.FindByID(ctx, explorerID)
	if err != nil {
		return nil, err
	}

	views := make([]model.AchievementView, 0, len(model.Achievements))
	for _, a := range model.Achievements {
		views = append(views, model.AchievementView{
			Achievement: a,
			Earned:      explorer != nil && explorer.HasAchievement(a.ID),
		})
	}
	return views, nil
}

func (s *achievementService) Award(ctx context.Context, explorerID, achievementID string) (bool, error) {
	if s.store == nil {
		return false, ErrStoreUnavailable
	}
	explorerID = strings.TrimSpace(explorerID)
	if explorerID == "" {
		return false, ErrInvalidExplorer
	}
	if _, ok := model.LookupAchievement(achievementID); !ok {
		return false, ErrUnknownAchievement
	}

	awarded, err := s.store.AddAchievement(ctx, explorerID, achievementID)
	if err != nil {
		return false, err
	}
	if awarded {
		s.logger.Info().Str("explorer_id", explorerID).Str("achievement", achievementID).Msg("achievement unlocked")
	}
	return awarded, nil
}
