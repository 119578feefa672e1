package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"cosmoconnect/internal/ai/gateway"
	"cosmoconnect/internal/model"
	"cosmoconnect/internal/pkg/logger"
)

// CompanionService 一次性生成功能
// 生成失败不会返回 error，而是返回带 Degraded 标记的兜底文案
type CompanionService interface {
	// SunnyMood 根据最近的 CME 数据描述 Sunny 的心情
	SunnyMood(ctx context.Context) model.TextResponse
	// SunnyMoodFrom 根据给定的 CME 数据描述 Sunny 的心情
	SunnyMoodFrom(ctx context.Context, cmes []model.CME) model.TextResponse
	// Perspective 角色讲述太空天气如何影响自己的工作
	Perspective(ctx context.Context, character string) (model.TextResponse, error)
	AuroraStory(ctx context.Context) model.TextResponse
	PlanetFact(ctx context.Context, planet string) (model.TextResponse, error)
	JWSTFact(ctx context.Context, part string) (model.TextResponse, error)
	ParkerFact(ctx context.Context) model.TextResponse
}

type companionService struct {
	gen    Generator
	space  SpaceSource
	logger zerolog.Logger
}

// NewCompanionService 创建一次性生成服务
func NewCompanionService(gen Generator, space SpaceSource) CompanionService {
	return &companionService{
		gen:    gen,
		space:  space,
		logger: logger.Component("companion"),
	}
}

func (s *companionService) SunnyMood(ctx context.Context) model.TextResponse {
	var cmes []model.CME
	if s.space != nil {
		cmes = s.space.RecentCMEs(ctx)
	}
	return s.SunnyMoodFrom(ctx, cmes)
}

func (s *companionService) SunnyMoodFrom(ctx context.Context, cmes []model.CME) model.TextResponse {
	s.logger.Debug().Int("cmes", len(cmes)).Msg("generating sunny mood")
	return s.generate(ctx, FeatureSunnyMood, sunnyMoodPrompt(cmes), sunnyMoodFallback)
}

func (s *companionService) Perspective(ctx context.Context, character string) (model.TextResponse, error) {
	c, ok := ParseCharacter(strings.TrimSpace(character))
	if !ok {
		return model.TextResponse{}, ErrUnknownCharacter
	}
	return s.generate(ctx, FeaturePerspective, perspectivePrompt(c), perspectiveFallback(c)), nil
}

func (s *companionService) AuroraStory(ctx context.Context) model.TextResponse {
	return s.generate(ctx, FeatureAuroraStory, auroraStoryPrompt, auroraStoryFallback)
}

func (s *companionService) PlanetFact(ctx context.Context, planet string) (model.TextResponse, error) {
	planet = strings.TrimSpace(planet)
	if planet == "" {
		return model.TextResponse{}, ErrEmptySubject
	}
	return s.generate(ctx, FeaturePlanetFact, planetFactPrompt(planet), planetFactFallback(planet)), nil
}

func (s *companionService) JWSTFact(ctx context.Context, part string) (model.TextResponse, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return model.TextResponse{}, ErrEmptySubject
	}
	return s.generate(ctx, FeatureJWSTFact, jwstFactPrompt(part), jwstFactFallback(part)), nil
}

func (s *companionService) ParkerFact(ctx context.Context) model.TextResponse {
	return s.generate(ctx, FeatureParkerFact, parkerFactPrompt, parkerFactFallback)
}

func (s *companionService) generate(ctx context.Context, feature, prompt string, fallback gateway.Fallback) model.TextResponse {
	result := s.gen.Invoke(ctx, gateway.GenerationRequest{
		Feature: feature,
		Prompt:  prompt,
	}, fallback)
	return result.Response()
}
