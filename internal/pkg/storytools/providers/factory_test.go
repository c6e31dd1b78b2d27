package providers

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"storymaker/internal/config"
)

func TestNewLLMProvider(t *testing.T) {
	Convey("NewLLMProvider 按 ai.provider 选择实现", t, func() {
		ctx := context.Background()

		Convey("openai 走 eino", func() {
			p, err := NewLLMProvider(ctx, &config.AIConfig{Provider: "openai", APIKey: "k"})
			So(err, ShouldBeNil)
			_, ok := p.(*EinoProvider)
			So(ok, ShouldBeTrue)
		})

		Convey("ark-native 走 arkruntime", func() {
			p, err := NewLLMProvider(ctx, &config.AIConfig{Provider: "ark-native", APIKey: "k"})
			So(err, ShouldBeNil)
			_, ok := p.(*ArkProvider)
			So(ok, ShouldBeTrue)
		})

		Convey("未知 provider 返回错误", func() {
			p, err := NewLLMProvider(ctx, &config.AIConfig{Provider: "anthropic", APIKey: "k"})
			So(p, ShouldBeNil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewImageProvider(t *testing.T) {
	Convey("NewImageProvider 按 image.provider 选择实现", t, func() {
		ctx := context.Background()

		p, err := NewImageProvider(ctx, &config.ImageConfig{Provider: "mock"})
		So(err, ShouldBeNil)
		_, ok := p.(*MockImageProvider)
		So(ok, ShouldBeTrue)

		p, err = NewImageProvider(ctx, &config.ImageConfig{Provider: "ark", APIKey: "k"})
		So(err, ShouldBeNil)
		_, ok = p.(*ArkImageProvider)
		So(ok, ShouldBeTrue)

		_, err = NewImageProvider(ctx, &config.ImageConfig{Provider: "dalle"})
		So(err, ShouldNotBeNil)
	})
}
