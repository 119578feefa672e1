package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"cosmoconnect/internal/model"
)

// SpaceService NASA 数据
type SpaceService interface {
	APOD(ctx context.Context, random bool) model.APOD
	RecentCMEs(ctx context.Context) []model.CME
	// Overview 并发获取 APOD 和 CME，再根据 CME 生成 Sunny 的心情
	Overview(ctx context.Context) model.SpaceOverview
}

type spaceService struct {
	source    SpaceSource
	companion CompanionService
}

// NewSpaceService 创建 NASA 数据服务
func NewSpaceService(source SpaceSource, companion CompanionService) SpaceService {
	return &spaceService{source: source, companion: companion}
}

func (s *spaceService) APOD(ctx context.Context, random bool) model.APOD {
	return s.source.APOD(ctx, random)
}

func (s *spaceService) RecentCMEs(ctx context.Context) []model.CME {
	return s.source.RecentCMEs(ctx)
}

func (s *spaceService) Overview(ctx context.Context) model.SpaceOverview {
	var overview model.SpaceOverview

	// 数据源自身处理失败，这里只做并发
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overview.APOD = s.source.APOD(gctx, false)
		return nil
	})
	g.Go(func() error {
		overview.CMEs = s.source.RecentCMEs(gctx)
		return nil
	})
	_ = g.Wait()

	overview.Mood = s.companion.SunnyMoodFrom(ctx, overview.CMEs)
	return overview
}
