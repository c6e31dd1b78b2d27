package bundle

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"storymaker/internal/model/story"
	"storymaker/internal/pkg/storage/local"
	"storymaker/internal/pkg/storytools"
)

func sampleResponse() *story.StoryResponse {
	return &story.StoryResponse{
		Story: &story.Story{
			Prompt:      "A dragon tale",
			ScenesCount: 2,
			Scenes: []story.Scene{
				{ID: 1, Title: "Scene 1", Narration: "one"},
				{ID: 2, Title: "Scene 2", Narration: "two"},
			},
			Characters: []story.Character{{ID: 1, Name: "Hero", Description: "A generic warrior."}},
		},
		Images: []string{
			storytools.PNGDataURI([]byte("img-1")),
			storytools.PNGDataURI([]byte("img-2")),
		},
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestSaveAndLoad(t *testing.T) {
	Convey("故事包保存与读取", t, func() {
		ctx := context.Background()
		store, err := local.NewLocalStorage(t.TempDir(), "http://cdn.test")
		So(err, ShouldBeNil)

		result, err := Save(ctx, store, "runs/dragon", sampleResponse())
		So(err, ShouldBeNil)
		So(result.StoryKey, ShouldEqual, "runs/dragon/story.json")
		So(result.StoryURL, ShouldEqual, "http://cdn.test/runs/dragon/story.json")
		So(result.ImageKeys, ShouldResemble, []string{
			"runs/dragon/images/scene-01.png",
			"runs/dragon/images/scene-02.png",
		})

		rc, err := store.Download(ctx, "runs/dragon/images/scene-02.png")
		So(err, ShouldBeNil)
		data, _ := io.ReadAll(rc)
		rc.Close()
		So(string(data), ShouldEqual, "img-2")

		loaded, err := Load(ctx, store, result.StoryKey)
		So(err, ShouldBeNil)
		So(loaded.Story.Prompt, ShouldEqual, "A dragon tale")
		So(loaded.Story.Scenes, ShouldHaveLength, 2)
		So(loaded.Images, ShouldHaveLength, 2)
		So(loaded.GeneratedAt.Equal(sampleResponse().GeneratedAt), ShouldBeTrue)

		Convey("非 data URI 图片保存失败", func() {
			resp := sampleResponse()
			resp.Images[1] = "https://example.com/a.png"
			_, err := Save(ctx, store, "bad", resp)
			So(errors.Is(err, storytools.ErrInvalidDataURI), ShouldBeTrue)
		})

		Convey("空故事包", func() {
			_, err := Save(ctx, store, "empty", &story.StoryResponse{})
			So(errors.Is(err, ErrEmptyBundle), ShouldBeTrue)
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Decode 兼容两代结构", t, func() {
		Convey("第一代结构按顺序重建场景", func() {
			legacy := `{
  "metadata": {
    "prompt": "A dragon tale",
    "scenes": [{"narration": "n1", "imageDescription": "d1"}, {"narration": "n2", "imageDescription": "d2"}],
    "characterDescriptions": {"Zed": "tall", "Amy": "short"},
    "generatedAt": "2024-01-02T03:04:05Z"
  },
  "images": ["data:image/png;base64,AA=="]
}`
			resp, err := Decode(strings.NewReader(legacy))
			So(err, ShouldBeNil)
			So(resp.Story.Prompt, ShouldEqual, "A dragon tale")
			So(resp.Story.ScenesCount, ShouldEqual, 2)
			So(resp.Story.Scenes[1].ID, ShouldEqual, 2)
			So(resp.Story.Scenes[1].Narration, ShouldEqual, "n2")
			So(resp.Story.Characters[0].Name, ShouldEqual, "Amy")
			So(resp.Story.Characters[1].Name, ShouldEqual, "Zed")
			So(resp.Images, ShouldHaveLength, 1)
		})

		Convey("没有故事内容", func() {
			_, err := Decode(strings.NewReader(`{"images": []}`))
			So(errors.Is(err, ErrEmptyBundle), ShouldBeTrue)
		})

		Convey("非法 JSON", func() {
			_, err := Decode(strings.NewReader(`{`))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestKeys(t *testing.T) {
	Convey("存储键名", t, func() {
		So(StoryKey(""), ShouldEqual, "story.json")
		So(ImageKey("a", 3), ShouldEqual, "a/images/scene-03.png")
		So(AudioKey("a", 12, ""), ShouldEqual, "a/audio/scene-12.mp3")
		So(AudioKey("a", 1, "wav"), ShouldEqual, "a/audio/scene-01.wav")
		So(ManifestKey("a/"), ShouldEqual, "a/audio/manifest.json")
	})
}
