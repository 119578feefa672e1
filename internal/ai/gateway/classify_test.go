package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"google.golang.org/genai"
)

type sdkFailure struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// 没有 json tag 的上游失败
type upstreamStatus struct {
	Message string
	Status  string
}

type upstreamEnvelope struct {
	Error upstreamStatus
}

type brokenError struct{ msg *string }

func (e *brokenError) Error() string { return *e.msg }

func TestClassify(t *testing.T) {
	Convey("Classify 识别限流", t, func() {
		cases := []struct {
			name    string
			failure any
		}{
			{"plain error with RESOURCE_EXHAUSTED", errors.New("got status RESOURCE_EXHAUSTED from server")},
			{"wrapped genai.APIError", fmt.Errorf("send message: %w", genai.APIError{Code: 429, Message: "Quota exceeded", Status: "RESOURCE_EXHAUSTED"})},
			{"nested error object with status", map[string]any{"error": map[string]any{"message": "Quota exceeded", "status": "RESOURCE_EXHAUSTED"}}},
			{"nested error object with numeric code", map[string]any{"error": map[string]any{"message": "slow down", "code": float64(429)}}},
			{"nested error object with status 429", map[string]any{"error": map[string]any{"message": "busy", "status": "429"}}},
			{"http response body as JSON string", map[string]any{"response": map[string]any{"body": `{"message":"slow down","code":429}`}}},
			{"http response data object", map[string]any{"response": map[string]any{"data": map[string]any{"message": "Too Many Requests", "code": 429}}}},
			{"http response status only", map[string]any{"response": map[string]any{"status": 429}}},
			{"raw JSON body", []byte(`{"error":{"message":"quota","status":"RESOURCE_EXHAUSTED"}}`)},
			{"struct with message", sdkFailure{Message: "HTTP 429 Too Many Requests"}},
			{"struct with code", &sdkFailure{Message: "Too Many Requests", Code: 429}},
			{"untagged struct with status", upstreamStatus{Message: "quota", Status: "RESOURCE_EXHAUSTED"}},
			{"untagged struct pointer with 429", &upstreamStatus{Message: "quota", Status: "429"}},
			{"untagged struct nested under Error", upstreamEnvelope{Error: upstreamStatus{Message: "quota", Status: "RESOURCE_EXHAUSTED"}}},
			{"capitalised keys in object", map[string]any{"Error": map[string]any{"Message": "busy", "Status": "429"}}},
			{"generic message field", map[string]any{"message": "429: rate limited"}},
			{"bare string", "429 Too Many Requests"},
		}

		for _, c := range cases {
			Convey(c.name, func() {
				So(Classify(c.failure), ShouldEqual, KindRateLimited)
			})
		}
	})

	Convey("Classify 识别网络错误", t, func() {
		cases := []struct {
			name    string
			failure error
		}{
			{"dial refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}},
			{"deadline exceeded", fmt.Errorf("generate: %w", context.DeadlineExceeded)},
			{"unexpected EOF", fmt.Errorf("read body: %w", io.ErrUnexpectedEOF)},
			{"connection reset", fmt.Errorf("stream: %w", syscall.ECONNRESET)},
		}

		for _, c := range cases {
			Convey(c.name, func() {
				So(Classify(c.failure), ShouldEqual, KindNetwork)
			})
		}
	})

	Convey("无法提取信息或不认识的失败返回 Unknown 且不会 panic", t, func() {
		cases := []struct {
			name    string
			failure any
		}{
			{"nil", nil},
			{"empty error", errors.New("")},
			{"nil pointer error", &brokenError{}},
			{"empty object", map[string]any{}},
			{"non-string error field", map[string]any{"error": 5}},
			{"number", 42},
			{"function", func() {}},
			{"channel", make(chan int)},
			{"empty struct", struct{}{}},
			{"invalid JSON bytes", []byte("{not json")},
			{"other message", errors.New("model not found")},
			{"nested error without rate limit", map[string]any{"error": map[string]any{"message": "bad request", "status": "INVALID_ARGUMENT"}}},
			{"untagged struct without rate limit", upstreamStatus{Message: "bad request", Status: "INVALID_ARGUMENT"}},
		}

		for _, c := range cases {
			Convey(c.name, func() {
				So(func() { Classify(c.failure) }, ShouldNotPanic)
				So(Classify(c.failure), ShouldEqual, KindUnknown)
			})
		}
	})

	Convey("同一个失败值重复分类结果一致", t, func() {
		failures := []any{
			map[string]any{"error": map[string]any{"status": "RESOURCE_EXHAUSTED"}},
			&net.OpError{Op: "dial", Err: syscall.ECONNREFUSED},
			errors.New("boom"),
			nil,
		}
		for _, f := range failures {
			So(Classify(f), ShouldEqual, Classify(f))
		}
	})
}

func TestDescribe(t *testing.T) {
	Convey("Describe 拼接消息与状态", t, func() {
		msg, ok := Describe(map[string]any{"error": map[string]any{"message": "Quota exceeded", "status": "RESOURCE_EXHAUSTED"}})
		So(ok, ShouldBeTrue)
		So(msg, ShouldEqual, "Quota exceeded RESOURCE_EXHAUSTED")

		msg, ok = Describe(map[string]any{"message": "hello"})
		So(ok, ShouldBeTrue)
		So(msg, ShouldEqual, "hello")

		msg, ok = Describe(fmt.Errorf("call: %w", genai.APIError{Code: 503, Message: "unavailable", Status: "UNAVAILABLE"}))
		So(ok, ShouldBeTrue)
		So(msg, ShouldContainSubstring, "UNAVAILABLE")
		So(msg, ShouldContainSubstring, "503")

		_, ok = Describe(map[string]any{"detail": "nothing useful"})
		So(ok, ShouldBeFalse)
	})
}
