package storytools

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// PNGDataURIPrefix 图片 data URI 前缀，图片字节按原样重新编码
const PNGDataURIPrefix = "data:image/png;base64,"

// ErrInvalidDataURI 不是 base64 data URI
var ErrInvalidDataURI = errors.New("invalid data URI")

// PNGDataURI 把图片字节编码为 data URI
func PNGDataURI(data []byte) string {
	return PNGDataURIPrefix + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI 解析 data:<mime>;base64,<payload>，返回字节和 MIME 类型
func DecodeDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrInvalidDataURI
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return data, mime, nil
}
