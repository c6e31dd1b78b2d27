package component

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"storymaker/internal/config"
)

func TestNewChatModel(t *testing.T) {
	Convey("NewChatModel 按 provider 创建模型", t, func() {
		ctx := context.Background()

		Convey("缺少 api_key 时返回错误", func() {
			m, err := NewChatModel(ctx, &config.AIConfig{Provider: "openai"})
			So(m, ShouldBeNil)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "api_key")
		})

		Convey("azure 需要 base_url", func() {
			_, err := NewChatModel(ctx, &config.AIConfig{Provider: "azure", APIKey: "k"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "base_url")
		})

		Convey("未知 provider 返回错误", func() {
			_, err := NewChatModel(ctx, &config.AIConfig{Provider: "anthropic", APIKey: "k"})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unsupported")
		})

		Convey("openai 配置可以本地构建", func() {
			m, err := NewChatModel(ctx, &config.AIConfig{Provider: "openai", APIKey: "k", Model: "gpt-4o-mini"})
			So(err, ShouldBeNil)
			So(m, ShouldNotBeNil)
		})
	})
}

func TestOptions(t *testing.T) {
	Convey("options 把零值视为未设置", t, func() {
		temp, maxTokens, topP := options(&config.AIConfig{})
		So(temp, ShouldBeNil)
		So(maxTokens, ShouldBeNil)
		So(topP, ShouldBeNil)

		temp, maxTokens, topP = options(&config.AIConfig{Options: config.AIOptionsConfig{
			Temperature: 0.7, MaxTokens: 2048, TopP: 0.9,
		}})
		So(*temp, ShouldAlmostEqual, float32(0.7), 0.0001)
		So(*maxTokens, ShouldEqual, 2048)
		So(*topP, ShouldAlmostEqual, float32(0.9), 0.0001)
	})
}
