package narration

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"storymaker/internal/model/story"
	"storymaker/internal/pkg/storage/local"
	"storymaker/internal/pkg/storytools"
)

type stubTTS struct {
	texts []string
	err   error
}

func (t *stubTTS) Synthesize(ctx context.Context, text string, speedRatio float64) (*storytools.TTSResult, error) {
	if t.err != nil {
		return nil, t.err
	}
	t.texts = append(t.texts, text)
	return &storytools.TTSResult{
		AudioData: []byte("audio:" + text),
		Format:    "mp3",
		Duration:  float64(len(text)) / 10,
	}, nil
}

func bundleWith(narrations ...string) *story.StoryResponse {
	st := &story.Story{Prompt: "A dragon tale"}
	for i, n := range narrations {
		st.Scenes = append(st.Scenes, story.Scene{ID: i + 1, Narration: n})
	}
	st.ScenesCount = len(st.Scenes)
	return &story.StoryResponse{Story: st}
}

func TestNarrate(t *testing.T) {
	Convey("Narrate 合成并上传场景配音", t, func() {
		ctx := context.Background()
		store, err := local.NewLocalStorage(t.TempDir(), "http://cdn.test")
		So(err, ShouldBeNil)

		tts := &stubTTS{}
		svc := NewNarrationService(tts, store, "BV700_streaming").(*narrationService)
		svc.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

		manifest, err := svc.Narrate(ctx, bundleWith("Ngày xưa", "   ", "Hết"), Options{Prefix: "runs/1"})
		So(err, ShouldBeNil)
		So(manifest.Voice, ShouldEqual, "BV700_streaming")
		So(manifest.Prompt, ShouldEqual, "A dragon tale")

		Convey("空解说的场景被跳过", func() {
			So(manifest.Tracks, ShouldHaveLength, 2)
			So(manifest.Tracks[0].SceneID, ShouldEqual, 1)
			So(manifest.Tracks[1].SceneID, ShouldEqual, 3)
			So(tts.texts, ShouldResemble, []string{"Ngày xưa", "Hết"})
		})

		Convey("音频与清单写入存储", func() {
			So(manifest.Tracks[0].Key, ShouldEqual, "runs/1/audio/scene-01.mp3")
			So(manifest.Tracks[0].URL, ShouldEqual, "http://cdn.test/runs/1/audio/scene-01.mp3")
			So(manifest.Tracks[0].TextLength, ShouldEqual, 8)

			rc, err := store.Download(ctx, "runs/1/audio/scene-03.mp3")
			So(err, ShouldBeNil)
			data, _ := io.ReadAll(rc)
			rc.Close()
			So(string(data), ShouldEqual, "audio:Hết")

			rc, err = store.Download(ctx, "runs/1/audio/manifest.json")
			So(err, ShouldBeNil)
			var saved story.NarrationManifest
			So(json.NewDecoder(rc).Decode(&saved), ShouldBeNil)
			rc.Close()
			So(saved.Tracks, ShouldHaveLength, 2)
			So(saved.GeneratedAt.Equal(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("再次运行复用已有音频与时长", func() {
			again, err := svc.Narrate(ctx, bundleWith("Ngày xưa", "", "Hết"), Options{Prefix: "runs/1"})
			So(err, ShouldBeNil)
			So(tts.texts, ShouldHaveLength, 2)
			So(again.Tracks[0].DurationSeconds, ShouldEqual, manifest.Tracks[0].DurationSeconds)
			So(again.Tracks[1].URL, ShouldEqual, manifest.Tracks[1].URL)
		})

		Convey("Force 时重新合成", func() {
			_, err := svc.Narrate(ctx, bundleWith("Ngày xưa", "", "Hết"), Options{Prefix: "runs/1", Force: true})
			So(err, ShouldBeNil)
			So(tts.texts, ShouldHaveLength, 4)
		})
	})

	Convey("合成失败时返回错误且不写清单", t, func() {
		ctx := context.Background()
		store, err := local.NewLocalStorage(t.TempDir(), "")
		So(err, ShouldBeNil)

		svc := NewNarrationService(&stubTTS{err: errors.New("tts error code 3001")}, store, "v")
		_, err = svc.Narrate(ctx, bundleWith("hello"), Options{Prefix: "p"})
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "scene 1")

		exists, err := store.Exists(ctx, "p/audio/manifest.json")
		So(err, ShouldBeNil)
		So(exists, ShouldBeFalse)
	})

	Convey("空故事包返回错误", t, func() {
		svc := NewNarrationService(&stubTTS{}, nil, "v")
		_, err := svc.Narrate(context.Background(), &story.StoryResponse{}, Options{})
		So(err, ShouldNotBeNil)
	})
}
