package story

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"

	"storymaker/internal/model/story"
	httputil "storymaker/internal/pkg/http"
	storyService "storymaker/internal/service/story"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeService 记录收到的请求并返回预设结果
type fakeService struct {
	err         error
	storyReq    *story.StoryRequest
	imageReq    *story.ImageRequest
	imagesReq   *story.ImagesRequest
	contentReq  *story.ContentRequest
	generatedAt time.Time
}

func (f *fakeService) response(req *story.StoryRequest, images []string) *story.StoryResponse {
	return &story.StoryResponse{
		Story: &story.Story{
			Prompt:      req.Prompt,
			ScenesCount: 1,
			Scenes:      []story.Scene{{ID: 1, Title: "Scene 1", Narration: "n1", ImageDescription: "d1"}},
			Characters:  []story.Character{{ID: 1, Name: "Hero", Description: "A generic warrior."}},
		},
		Images:      images,
		GeneratedAt: f.generatedAt,
	}
}

func (f *fakeService) GenerateStory(ctx context.Context, req *story.StoryRequest) (*story.StoryResponse, error) {
	f.storyReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response(req, []string{"data:image/png;base64,AA=="}), nil
}

func (f *fakeService) GenerateOutline(ctx context.Context, req *story.StoryRequest) (*story.StoryResponse, error) {
	f.storyReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response(req, []string{}), nil
}

func (f *fakeService) GenerateContent(ctx context.Context, req *story.ContentRequest) (*story.ContentResponse, error) {
	f.contentReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &story.ContentResponse{Story: f.response(&story.StoryRequest{Prompt: req.Topic}, nil).Story}, nil
}

func (f *fakeService) GenerateImage(ctx context.Context, req *story.ImageRequest) (*story.ImageResponse, error) {
	f.imageReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &story.ImageResponse{Image: "data:image/png;base64,AA=="}, nil
}

func (f *fakeService) GenerateImages(ctx context.Context, req *story.ImagesRequest) (*story.ImagesResponse, error) {
	f.imagesReq = req
	if f.err != nil {
		return nil, f.err
	}
	images := make([]string, len(req.Scenes))
	for i := range images {
		images[i] = fmt.Sprintf("data:image/png;base64,%d", i)
	}
	return &story.ImagesResponse{Images: images}, nil
}

var _ storyService.StoryService = (*fakeService)(nil)

func newRouter(svc storyService.StoryService) *gin.Engine {
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateStoryHandler(t *testing.T) {
	Convey("POST /api/generate-story", t, func() {
		svc := &fakeService{generatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
		r := newRouter(svc)

		Convey("返回故事包并以附件下载", func() {
			w := post(r, "/api/generate-story", `{"prompt": "A dragon tale", "sceneCount": 2}`)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Disposition"), ShouldEqual, "attachment; filename=story-output.json")
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/json")
			So(svc.storyReq.Prompt, ShouldEqual, "A dragon tale")
			So(svc.storyReq.SceneCount, ShouldEqual, 2)

			var body map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body, ShouldContainKey, "story")
			So(body, ShouldContainKey, "images")
			So(body["generatedAt"], ShouldEqual, "2024-01-02T03:04:05Z")
			st := body["story"].(map[string]any)
			So(st["scenesCount"], ShouldEqual, float64(1))
			scene := st["scenes"].([]any)[0].(map[string]any)
			So(scene, ShouldContainKey, "imageDescription")
		})

		Convey("sceneCount 不是整数返回 400", func() {
			w := post(r, "/api/generate-story", `{"prompt": "x", "sceneCount": "two"}`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)

			var body httputil.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Code, ShouldEqual, httputil.CodeInvalidRequest)
			So(body.Error, ShouldNotBeEmpty)
			So(svc.storyReq, ShouldBeNil)
		})

		Convey("非法 JSON 返回 400", func() {
			w := post(r, "/api/generate-story", `{"prompt":`)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("校验错误返回 400", func() {
			svc.err = fmt.Errorf("%w: missing prompt or invalid scene count", storyService.ErrInvalidRequest)
			w := post(r, "/api/generate-story", `{"sceneCount": 2}`)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			var body httputil.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Error, ShouldContainSubstring, "missing prompt")
			So(body.Code, ShouldEqual, httputil.CodeInvalidRequest)
		})

		Convey("上游错误返回 500 并带上原始信息", func() {
			svc.err = errors.New("failed to generate image: quota exceeded")
			w := post(r, "/api/generate-story", `{"prompt": "x", "sceneCount": 1}`)

			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			var body httputil.ErrorResponse
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Error, ShouldEqual, "failed to generate image: quota exceeded")
			So(body.Code, ShouldEqual, httputil.CodeUpstream)
		})
	})
}

func TestGenerateStoryLegacyHandler(t *testing.T) {
	Convey("POST /generate-story 返回第一代结构", t, func() {
		svc := &fakeService{}
		w := post(newRouter(svc), "/generate-story", `{"prompt": "A dragon tale", "sceneCount": 1}`)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Header().Get("Content-Disposition"), ShouldEqual, "attachment; filename=story_output.json")

		var body story.LegacyStoryResponse
		So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
		So(body.Metadata.Prompt, ShouldEqual, "A dragon tale")
		So(body.Metadata.Scenes, ShouldHaveLength, 1)
		So(body.Metadata.Scenes[0].ImageDescription, ShouldEqual, "d1")
		So(body.Metadata.CharacterDescriptions["Hero"], ShouldEqual, "A generic warrior.")
		So(body.Images, ShouldHaveLength, 1)
	})
}

func TestGenerateOutlineHandler(t *testing.T) {
	Convey("POST /api/generate-story-outline 返回空图片数组", t, func() {
		w := post(newRouter(&fakeService{}), "/api/generate-story-outline", `{"prompt": "p", "sceneCount": 1}`)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Header().Get("Content-Disposition"), ShouldEqual, "attachment; filename=story-outline-output.json")
		So(w.Body.String(), ShouldContainSubstring, `"images":[]`)
	})
}

func TestGenerateImageHandler(t *testing.T) {
	Convey("单图接口两个路径都可用", t, func() {
		for _, path := range []string{"/api/generate-image", "/api/generate/image"} {
			svc := &fakeService{}
			w := post(newRouter(svc), path, `{"prompt": "a castle", "characters": [{"name": "Aria", "description": "red hair"}]}`)

			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Disposition"), ShouldEqual, "attachment; filename=image-output.json")
			So(svc.imageReq.Prompt, ShouldEqual, "a castle")
			So(svc.imageReq.Characters, ShouldHaveLength, 1)

			var body story.ImageResponse
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Image, ShouldStartWith, "data:image/png;base64,")
		}
	})
}

func TestGenerateImagesHandler(t *testing.T) {
	Convey("POST /api/generate/images", t, func() {
		svc := &fakeService{}
		w := post(newRouter(svc), "/api/generate/images",
			`{"scenes": [{"imageDescription": "a"}, {"image": "b"}], "characters": []}`)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Header().Get("Content-Disposition"), ShouldEqual, "attachment; filename=images-output.json")
		So(svc.imagesReq.Scenes, ShouldHaveLength, 2)
		So(svc.imagesReq.Scenes[1].Image, ShouldEqual, "b")

		var body story.ImagesResponse
		So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
		So(body.Images, ShouldHaveLength, 2)
	})
}

func TestGenerateContentHandler(t *testing.T) {
	Convey("POST /api/generate/content", t, func() {
		svc := &fakeService{}
		w := post(newRouter(svc), "/api/generate/content", `{"topic": "friendship", "type": "fable", "sceneCount": 3}`)

		So(w.Code, ShouldEqual, http.StatusOK)
		So(w.Header().Get("Content-Disposition"), ShouldEqual, "attachment; filename=content-output.json")
		So(svc.contentReq.Topic, ShouldEqual, "friendship")
		So(svc.contentReq.Type, ShouldEqual, "fable")
		So(svc.contentReq.SceneCount, ShouldEqual, 3)
		So(w.Body.String(), ShouldContainSubstring, `"story"`)
	})
}
