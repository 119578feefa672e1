package ai

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"cosmoconnect/internal/ai/backend"
	"cosmoconnect/internal/config"
)

func TestNewBackend(t *testing.T) {
	ctx := context.Background()

	Convey("未配置 API key 时退回 mock", t, func() {
		b, provider, err := NewBackend(ctx, &config.AIConfig{Provider: "gemini"})
		So(err, ShouldBeNil)
		So(provider, ShouldEqual, "mock")
		So(b, ShouldHaveSameTypeAs, &backend.Mock{})
	})

	Convey("provider 为空时默认 gemini", t, func() {
		b, provider, err := NewBackend(ctx, &config.AIConfig{APIKey: "test-key"})
		So(err, ShouldBeNil)
		So(provider, ShouldEqual, "gemini")
		So(b, ShouldHaveSameTypeAs, &backend.Gemini{})
	})

	Convey("openai 走 eino 后端", t, func() {
		b, provider, err := NewBackend(ctx, &config.AIConfig{Provider: "openai", APIKey: "sk-test", Model: "gpt-4o-mini"})
		So(err, ShouldBeNil)
		So(provider, ShouldEqual, "openai")
		So(b, ShouldHaveSameTypeAs, &backend.Eino{})
	})

	Convey("不支持的 provider 报错", t, func() {
		_, _, err := NewBackend(ctx, &config.AIConfig{Provider: "claude", APIKey: "x"})
		So(err, ShouldNotBeNil)
	})
}

func TestNewClient(t *testing.T) {
	Convey("mock 客户端可直接生成", t, func() {
		c, err := NewClient(context.Background(), &config.AIConfig{Provider: "mock"})
		So(err, ShouldBeNil)
		So(c.Provider(), ShouldEqual, "mock")
		So(c.Close(), ShouldBeNil)
	})
}
