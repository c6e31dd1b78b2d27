package tts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"storymaker/internal/config"
)

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, body map[string]any)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer; test-token" {
			t.Errorf("unexpected Authorization header: %q", got)
		}
		handler(w, body)
	}))
}

func TestClient_Synthesize(t *testing.T) {
	Convey("Client.Synthesize 调用 openspeech 接口", t, func() {
		ctx := context.Background()
		audio := []byte("fake-mp3-bytes")

		Convey("成功返回音频与时长", func() {
			var captured map[string]any
			srv := newTestServer(t, func(w http.ResponseWriter, body map[string]any) {
				captured = body
				_ = json.NewEncoder(w).Encode(map[string]any{
					"code":     3000,
					"message":  "Success",
					"data":     base64.StdEncoding.EncodeToString(audio),
					"addition": map[string]any{"duration": "2500"},
				})
			})
			defer srv.Close()

			client, err := NewClient(&config.TTSConfig{
				APIURL:      srv.URL,
				AccessToken: "test-token",
				VoiceType:   "BV074_streaming",
				Language:    "vi",
			})
			So(err, ShouldBeNil)

			result, err := client.Synthesize(ctx, "Xin chào", 1.2)
			So(err, ShouldBeNil)
			So(result.AudioData, ShouldResemble, audio)
			So(result.Duration, ShouldAlmostEqual, 2.5)
			So(result.RequestID, ShouldNotBeEmpty)

			audioCfg := captured["audio"].(map[string]any)
			So(audioCfg["voice_type"], ShouldEqual, "BV074_streaming")
			So(audioCfg["speed_ratio"], ShouldAlmostEqual, 1.2)
			So(audioCfg["language"], ShouldEqual, "vi")
			request := captured["request"].(map[string]any)
			So(request["text"], ShouldEqual, "Xin chào")
			So(request["reqid"], ShouldEqual, result.RequestID)
		})

		Convey("数字类型的 duration 也能解析", func() {
			srv := newTestServer(t, func(w http.ResponseWriter, body map[string]any) {
				_ = json.NewEncoder(w).Encode(map[string]any{
					"code":     3000,
					"data":     base64.StdEncoding.EncodeToString(audio),
					"addition": map[string]any{"duration": 1200},
				})
			})
			defer srv.Close()

			client, _ := NewClient(&config.TTSConfig{APIURL: srv.URL, AccessToken: "test-token"})
			result, err := client.Synthesize(ctx, "hello", 0)
			So(err, ShouldBeNil)
			So(result.Duration, ShouldAlmostEqual, 1.2)
		})

		Convey("业务错误码返回错误", func() {
			srv := newTestServer(t, func(w http.ResponseWriter, body map[string]any) {
				_ = json.NewEncoder(w).Encode(map[string]any{"code": 3001, "message": "invalid request"})
			})
			defer srv.Close()

			client, _ := NewClient(&config.TTSConfig{APIURL: srv.URL, AccessToken: "test-token"})
			result, err := client.Synthesize(ctx, "hello", 1.0)
			So(result, ShouldBeNil)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "invalid request")
			So(err.Error(), ShouldContainSubstring, "3001")
		})

		Convey("HTTP 非 200 返回错误", func() {
			srv := newTestServer(t, func(w http.ResponseWriter, body map[string]any) {
				w.WriteHeader(http.StatusBadGateway)
			})
			defer srv.Close()

			client, _ := NewClient(&config.TTSConfig{APIURL: srv.URL, AccessToken: "test-token"})
			_, err := client.Synthesize(ctx, "hello", 1.0)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "status 502")
		})

		Convey("缺少 access token 时创建失败", func() {
			t.Setenv("TTS_ACCESS_TOKEN", "")
			client, err := NewClient(&config.TTSConfig{})
			So(client, ShouldBeNil)
			So(err, ShouldNotBeNil)
		})

		Convey("默认参数", func() {
			client, err := NewClient(&config.TTSConfig{AccessToken: "test-token"})
			So(err, ShouldBeNil)
			So(client.apiURL, ShouldEqual, DefaultAPIURL)
			So(client.VoiceType(), ShouldEqual, DefaultVoiceType)
			So(client.sampleRate, ShouldEqual, DefaultSampleRate)
		})
	})
}
