package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"syscall"

	"google.golang.org/genai"
)

// 命中任一标记即视为限流
var rateLimitMarkers = []string{"RESOURCE_EXHAUSTED", "429"}

// Classify 对任意形态的失败值分类
// 纯函数，不会 panic；无法提取信息时返回 KindUnknown
func Classify(failure any) (kind ErrorKind) {
	defer func() {
		if recover() != nil {
			kind = KindUnknown
		}
	}()

	msg, ok := Describe(failure)
	if !ok {
		return KindUnknown
	}

	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return KindRateLimited
		}
	}

	if err, isErr := failure.(error); isErr && isTransportError(err) {
		return KindNetwork
	}

	return KindUnknown
}

// Describe 从失败值中提取可读信息（消息 + 状态/错误码）
// 依次尝试：
//  1. Go error 的消息（以及 genai.APIError 的 message/status/code）
//  2. 嵌套的 "error" 对象
//  3. 嵌套的 HTTP 响应体 "response" -> "body"/"data"
//  4. 对象自身的 "message" 字段
//
// 未知结构体先经 JSON 规整为对象再探测。
func Describe(failure any) (msg string, ok bool) {
	defer func() {
		if recover() != nil {
			msg, ok = "", false
		}
	}()

	msg = describe(failure)
	return msg, msg != ""
}

func describe(failure any) string {
	switch v := failure.(type) {
	case nil:
		return ""
	case error:
		return describeError(v)
	case map[string]any:
		return describeObject(v)
	case json.RawMessage:
		return describeObject(decodeObject(v))
	case []byte:
		return describeObject(decodeObject(v))
	case string:
		if obj := decodeObject([]byte(v)); obj != nil {
			return describeObject(obj)
		}
		return strings.TrimSpace(v)
	default:
		return describeObject(normalize(v))
	}
}

func describeError(err error) string {
	fragments := []string{err.Error()}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		fragments = append(fragments, apiErr.Message, apiErr.Status)
		if apiErr.Code != 0 {
			fragments = append(fragments, strconv.Itoa(apiErr.Code))
		}
	}

	return joinFragments(fragments...)
}

func describeObject(obj map[string]any) string {
	if obj == nil {
		return ""
	}

	// 嵌套 error 对象
	if nested, ok := asObject(field(obj, "error")); ok {
		if s := joinFragments(scalar(field(nested, "message")), scalar(field(nested, "status")), scalar(field(nested, "code"))); s != "" {
			return s
		}
	}
	if s, ok := field(obj, "error").(string); ok && strings.TrimSpace(s) != "" {
		return joinFragments(s, scalar(field(obj, "status")), scalar(field(obj, "code")))
	}

	// 嵌套 HTTP 响应体
	if resp, ok := asObject(field(obj, "response")); ok {
		var fragments []string
		body, ok := asObject(field(resp, "body"))
		if !ok {
			body, ok = asObject(field(resp, "data"))
		}
		if ok {
			fragments = append(fragments, scalar(field(body, "message")), scalar(field(body, "code")))
			if nested, ok := asObject(field(body, "error")); ok {
				fragments = append(fragments, scalar(field(nested, "message")), scalar(field(nested, "status")), scalar(field(nested, "code")))
			}
		}
		fragments = append(fragments, scalar(field(resp, "status")), scalar(field(resp, "statusCode")))
		if s := joinFragments(fragments...); s != "" {
			return s
		}
	}

	// 只有带 message 时才附带自身的 status/code
	if msg := scalar(field(obj, "message")); strings.TrimSpace(msg) != "" {
		return joinFragments(msg, scalar(field(obj, "status")), scalar(field(obj, "code")))
	}
	return ""
}

// field 按名字取值，大小写不敏感
// 没有 json tag 的结构体经 normalize 后字段名是 Message/Status/Error
func field(obj map[string]any, name string) any {
	if v, ok := obj[name]; ok {
		return v
	}
	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return nil
}

func asObject(v any) (map[string]any, bool) {
	var obj map[string]any
	switch t := v.(type) {
	case map[string]any:
		obj = t
	case json.RawMessage:
		obj = decodeObject(t)
	case []byte:
		obj = decodeObject(t)
	case string:
		obj = decodeObject([]byte(t))
	}
	return obj, obj != nil
}

func decodeObject(data []byte) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	return obj
}

// normalize 把未知类型经 JSON 转成对象
func normalize(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return decodeObject(data)
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func joinFragments(fragments ...string) string {
	seen := make(map[string]bool, len(fragments))
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		parts = append(parts, f)
	}
	return strings.Join(parts, " ")
}

func isTransportError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET)
}
