package storagefactory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"storymaker/internal/config"
	"storymaker/internal/pkg/storage"
)

func TestNewStorage(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr bool
	}{
		{
			name: "valid local storage config",
			cfg: &config.StorageConfig{
				Type:  "local",
				Local: &config.LocalConfig{BasePath: t.TempDir(), BaseURL: "http://localhost:8080/storage"},
			},
		},
		{
			name: "empty type defaults to local",
			cfg:  &config.StorageConfig{Local: &config.LocalConfig{BasePath: t.TempDir()}},
		},
		{
			name:    "missing local config",
			cfg:     &config.StorageConfig{Type: "local"},
			wantErr: true,
		},
		{
			name:    "missing local base path",
			cfg:     &config.StorageConfig{Type: "local", Local: &config.LocalConfig{}},
			wantErr: true,
		},
		{
			name:    "missing oss config",
			cfg:     &config.StorageConfig{Type: "oss"},
			wantErr: true,
		},
		{
			name:    "missing minio config",
			cfg:     &config.StorageConfig{Type: "minio"},
			wantErr: true,
		},
		{
			name:    "unsupported storage type",
			cfg:     &config.StorageConfig{Type: "s3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStorage(context.Background(), tt.cfg)

			if tt.wantErr {
				if err == nil {
					t.Errorf("NewStorage() expected error, got nil")
				}
				if s != nil {
					t.Errorf("NewStorage() expected nil storage, got %v", s)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewStorage() unexpected error: %v", err)
			}
			if s.GetStorageType() != string(storage.StorageTypeLocal) {
				t.Errorf("GetStorageType() = %s, want local", s.GetStorageType())
			}
		})
	}
}

func TestLocalStorage_Operations(t *testing.T) {
	Convey("本地存储读写故事文件", t, func() {
		ctx := context.Background()
		baseURL := "http://localhost:8080/storage"
		s, err := NewStorage(ctx, &config.StorageConfig{
			Type:  "local",
			Local: &config.LocalConfig{BasePath: t.TempDir(), BaseURL: baseURL},
		})
		So(err, ShouldBeNil)

		key := "stories/abc/story.json"
		content := `{"story":{"prompt":"A dragon tale"}}`

		Convey("上传后可以检查、下载并获取URL", func() {
			url, err := s.Upload(ctx, key, strings.NewReader(content), int64(len(content)), "application/json")
			So(err, ShouldBeNil)
			So(url, ShouldEqual, baseURL+"/"+key)

			exists, err := s.Exists(ctx, key)
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)

			reader, err := s.Download(ctx, key)
			So(err, ShouldBeNil)
			defer reader.Close()
			data, err := io.ReadAll(reader)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, content)

			presigned, err := s.GetPresignedDownloadURL(ctx, key, time.Hour)
			So(err, ShouldBeNil)
			So(presigned, ShouldEqual, url)
		})

		Convey("不存在的文件", func() {
			exists, err := s.Exists(ctx, "missing.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)

			_, err = s.Download(ctx, "missing.json")
			So(errors.Is(err, storage.ErrNotFound), ShouldBeTrue)
		})

		Convey("越界路径被限制在 base_path 下", func() {
			url, err := s.Upload(ctx, "../../escape.txt", strings.NewReader("x"), 1, "text/plain")
			So(err, ShouldBeNil)
			So(url, ShouldNotContainSubstring, "..")
		})
	})
}

func TestContentTypeOf(t *testing.T) {
	Convey("ContentTypeOf 根据扩展名推断类型", t, func() {
		So(storage.ContentTypeOf("a/story.json"), ShouldEqual, "application/json")
		So(storage.ContentTypeOf("a/scene-01.PNG"), ShouldEqual, "image/png")
		So(storage.ContentTypeOf("a/scene-01.mp3"), ShouldEqual, "audio/mpeg")
		So(storage.ContentTypeOf("a/blob"), ShouldEqual, "application/octet-stream")
	})
}
