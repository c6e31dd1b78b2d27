package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"storymaker/internal/config"
	"storymaker/internal/pkg/id"
)

// 默认值
const (
	DefaultAPIURL     = "https://openspeech.bytedance.com/api/v1/tts"
	DefaultCluster    = "volcano_tts"
	DefaultVoiceType  = "BV115_streaming"
	DefaultSampleRate = 44100
	DefaultEncoding   = "mp3"

	successCode = 3000
)

// Client TTS 客户端封装
// 用于调用火山引擎的 TTS API（文本转语音）
// 参考: https://openspeech.bytedance.com/api/v1/tts
type Client struct {
	apiURL      string
	accessToken string
	appID       string
	cluster     string
	voiceType   string
	sampleRate  int
	language    string
	httpClient  *http.Client
}

// NewClient 创建 TTS 客户端
// AccessToken 为空时回退到环境变量 TTS_ACCESS_TOKEN
func NewClient(cfg *config.TTSConfig) (*Client, error) {
	accessToken := cfg.AccessToken
	if accessToken == "" {
		accessToken = os.Getenv("TTS_ACCESS_TOKEN")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("TTS access token is required")
	}

	c := &Client{
		apiURL:      cfg.APIURL,
		accessToken: accessToken,
		appID:       cfg.AppID,
		cluster:     cfg.Cluster,
		voiceType:   cfg.VoiceType,
		sampleRate:  cfg.SampleRate,
		language:    cfg.Language,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	if c.apiURL == "" {
		c.apiURL = DefaultAPIURL
	}
	if c.cluster == "" {
		c.cluster = DefaultCluster
	}
	if c.voiceType == "" {
		c.voiceType = DefaultVoiceType
	}
	if c.sampleRate == 0 {
		c.sampleRate = DefaultSampleRate
	}
	return c, nil
}

// VoiceType 当前使用的音色
func (c *Client) VoiceType() string {
	return c.voiceType
}

// Result TTS 合成结果
type Result struct {
	AudioData []byte  // 音频数据
	Duration  float64 // 音频时长（秒），接口未返回时为 0
	RequestID string
}

// apiResponse openspeech 响应
type apiResponse struct {
	ReqID    string         `json:"reqid"`
	Code     int            `json:"code"`
	Message  string         `json:"message"`
	Data     string         `json:"data"`
	Addition map[string]any `json:"addition"`
}

// Synthesize 合成语音，返回音频数据和时长，不保存到文件
func (c *Client) Synthesize(ctx context.Context, text string, speedRatio float64) (*Result, error) {
	if speedRatio <= 0 {
		speedRatio = 1.0
	}

	requestID := id.New()
	reqBody, err := json.Marshal(c.buildRequest(text, requestID, speedRatio))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer; %s", c.accessToken))
	req.Header.Set("Content-Type", "application/json")

	log.Debug().
		Str("request_id", requestID).
		Int("text_length", len([]rune(text))).
		Msg("sending TTS request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error().
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Str("body", string(respBody)).
			Msg("TTS API request failed")
		return nil, fmt.Errorf("TTS API request failed: status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse TTS response: %w", err)
	}

	if apiResp.Code != successCode {
		message := apiResp.Message
		if message == "" {
			message = "unknown error"
		}
		return nil, fmt.Errorf("TTS API response error: %s (code: %d)", message, apiResp.Code)
	}

	if apiResp.Data == "" {
		return nil, fmt.Errorf("audio data not found in TTS response")
	}

	audioData, err := base64.StdEncoding.DecodeString(apiResp.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio data: %w", err)
	}

	return &Result{
		AudioData: audioData,
		Duration:  parseDuration(apiResp.Addition),
		RequestID: requestID,
	}, nil
}

// buildRequest 构建请求体
// 参考官方文档: https://openspeech.bytedance.com/api/v1/tts
func (c *Client) buildRequest(text, requestID string, speedRatio float64) map[string]any {
	app := map[string]any{
		"token":   c.accessToken,
		"cluster": c.cluster,
	}
	if c.appID != "" {
		app["appid"] = c.appID
	}

	audio := map[string]any{
		"voice_type":   c.voiceType,
		"encoding":     DefaultEncoding,
		"rate":         c.sampleRate,
		"speed_ratio":  speedRatio,
		"volume_ratio": 1.0,
		"pitch_ratio":  1.0,
	}
	if c.language != "" {
		audio["language"] = c.language
	}

	return map[string]any{
		"app":   app,
		"user":  map[string]any{"uid": requestID},
		"audio": audio,
		"request": map[string]any{
			"reqid":     requestID,
			"text":      text,
			"text_type": "plain",
			"operation": "query",
		},
	}
}

// parseDuration 从 addition.duration 读取时长（毫秒，字符串或数字）并转换为秒
func parseDuration(addition map[string]any) float64 {
	if addition == nil {
		return 0
	}
	switch v := addition["duration"].(type) {
	case string:
		if ms, err := strconv.ParseFloat(v, 64); err == nil {
			return ms / 1000.0
		}
	case float64:
		return v / 1000.0
	}
	return 0
}
