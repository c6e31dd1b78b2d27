package storytools

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDataURI(t *testing.T) {
	Convey("data URI 编解码", t, func() {
		payload := []byte{0x89, 'P', 'N', 'G'}

		Convey("PNGDataURI 使用 png 前缀", func() {
			So(PNGDataURI(payload), ShouldEqual, "data:image/png;base64,iVBORw==")
		})

		Convey("DecodeDataURI 还原字节和 MIME", func() {
			data, mime, err := DecodeDataURI(PNGDataURI(payload))
			So(err, ShouldBeNil)
			So(mime, ShouldEqual, "image/png")
			So(data, ShouldResemble, payload)
		})

		Convey("非法输入返回 ErrInvalidDataURI", func() {
			for _, in := range []string{
				"iVBORw==",
				"data:image/png;base64",
				"data:image/png,iVBORw==",
				"data:image/png;base64,%%%",
			} {
				_, _, err := DecodeDataURI(in)
				So(errors.Is(err, ErrInvalidDataURI), ShouldBeTrue)
			}
		})
	})
}
