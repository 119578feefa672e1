package backend

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"

	"cosmoconnect/internal/ai/gateway"
	dm "cosmoconnect/internal/model"
)

// fakeChatModel 记录收到的消息并返回脚本结果
type fakeChatModel struct {
	reply     *schema.Message
	err       error
	chunks    []string
	gotInputs [][]*schema.Message
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.gotInputs = append(m.gotInputs, input)
	return m.reply, m.err
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	m.gotInputs = append(m.gotInputs, input)
	if m.err != nil {
		return nil, m.err
	}
	msgs := make([]*schema.Message, 0, len(m.chunks))
	for _, c := range m.chunks {
		msgs = append(msgs, schema.AssistantMessage(c, nil))
	}
	return schema.StreamReaderFromArray(msgs), nil
}

func drain(t *testing.T, fs gateway.FragmentStream) (string, error) {
	t.Helper()
	defer fs.Close()

	var sb strings.Builder
	for {
		f, err := fs.Recv()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return sb.String(), err
		}
		sb.WriteString(f)
	}
}

func TestEino(t *testing.T) {
	ctx := context.Background()

	Convey("Eino.Generate 发送系统指令和提示词", t, func() {
		cm := &fakeChatModel{reply: schema.AssistantMessage("Mars has the tallest volcano! 🌋", nil)}
		text, err := NewEino(cm).Generate(ctx, "Tell me about Mars", "Be fun")

		So(err, ShouldBeNil)
		So(text, ShouldEqual, "Mars has the tallest volcano! 🌋")
		So(len(cm.gotInputs), ShouldEqual, 1)
		So(cm.gotInputs[0][0].Role, ShouldEqual, schema.System)
		So(cm.gotInputs[0][1].Content, ShouldEqual, "Tell me about Mars")
	})

	Convey("没有系统指令时只发送用户消息", t, func() {
		cm := &fakeChatModel{reply: schema.AssistantMessage("ok", nil)}
		_, err := NewEino(cm).Generate(ctx, "hi", "")
		So(err, ShouldBeNil)
		So(len(cm.gotInputs[0]), ShouldEqual, 1)
	})

	Convey("模型返回 nil 消息时报错", t, func() {
		_, err := NewEino(&fakeChatModel{}).Generate(ctx, "hi", "")
		So(err, ShouldNotBeNil)
	})

	Convey("模型错误被包装且保留原始错误", t, func() {
		cause := errors.New("status code: 429")
		_, err := NewEino(&fakeChatModel{err: cause}).Generate(ctx, "hi", "")
		So(errors.Is(err, cause), ShouldBeTrue)
		So(gateway.Classify(err), ShouldEqual, gateway.KindRateLimited)
	})

	Convey("会话按顺序回放历史", t, func() {
		cm := &fakeChatModel{reply: schema.AssistantMessage("Next question!", nil)}
		history := dm.Transcript{
			{Role: dm.RoleAssistant, Text: "Hi, I'm Nova!"},
			{Role: dm.RoleUser, Text: "Call it Zork"},
			{Role: dm.RoleAssistant, Text: "Zork is a great name!"},
		}

		session, err := NewEino(cm).NewSession(ctx, history, "You are Nova")
		So(err, ShouldBeNil)

		text, err := session.Send(ctx, "Make it purple")
		So(err, ShouldBeNil)
		So(text, ShouldEqual, "Next question!")

		input := cm.gotInputs[0]
		So(len(input), ShouldEqual, 5)
		So(input[0].Role, ShouldEqual, schema.System)
		So(input[1].Role, ShouldEqual, schema.Assistant)
		So(input[2].Role, ShouldEqual, schema.User)
		So(input[3].Content, ShouldEqual, "Zork is a great name!")
		So(input[4].Content, ShouldEqual, "Make it purple")
	})

	Convey("非法角色的历史被拒绝", t, func() {
		_, err := NewEino(&fakeChatModel{}).NewSession(ctx, dm.Transcript{{Role: "model", Text: "x"}}, "")
		So(err, ShouldNotBeNil)
	})

	Convey("流式回复逐片返回并以 io.EOF 结束", t, func() {
		cm := &fakeChatModel{chunks: []string{"ZAP! ", "[CHOICE 1: Go]"}}
		session, _ := NewEino(cm).NewSession(ctx, nil, "storyteller")

		fs, err := session.SendStream(ctx, "start")
		So(err, ShouldBeNil)

		text, err := drain(t, fs)
		So(err, ShouldBeNil)
		So(text, ShouldEqual, "ZAP! [CHOICE 1: Go]")
	})
}

func TestMock(t *testing.T) {
	ctx := context.Background()

	Convey("Mock 后端返回固定文本", t, func() {
		m := NewMock()

		text, err := m.Generate(ctx, "anything", "")
		So(err, ShouldBeNil)
		So(text, ShouldEqual, mockReply)

		Convey("讲故事的会话返回带两个选项的片段", func() {
			session, _ := m.NewSession(ctx, nil, "Format the choices like [CHOICE 1: ...]")
			fs, _ := session.SendStream(ctx, "start")
			text, err := drain(t, fs)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, mockStorySegment)

			_, choices := gateway.ExtractChoices(text)
			So(len(choices), ShouldEqual, 2)
		})

		Convey("取消后不再产出", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := m.Generate(cctx, "x", "")
			So(err, ShouldNotBeNil)
		})
	})
}
