package model

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTranscript_Append(t *testing.T) {
	Convey("Transcript.Append 只追加且不修改原记录", t, func() {
		Convey("N 次成功对话后恰好有 2N 条记录且按时间顺序排列", func() {
			var tr Transcript
			for i := 0; i < 4; i++ {
				tr = tr.Append("question", "answer")
			}

			So(len(tr), ShouldEqual, 8)
			for i, turn := range tr {
				if i%2 == 0 {
					So(turn.Role, ShouldEqual, RoleUser)
				} else {
					So(turn.Role, ShouldEqual, RoleAssistant)
				}
			}
			So(tr.UserTurns(), ShouldEqual, 4)
		})

		Convey("原记录保持不变，即使有多余容量", func() {
			base := make(Transcript, 1, 8)
			base[0] = Turn{Role: RoleAssistant, Text: "Hi there!"}

			next := base.Append("What is a comet?", "A dirty snowball!")
			other := base.Append("Why is Mars red?", "Rust!")

			So(len(base), ShouldEqual, 1)
			So(next[1].Text, ShouldEqual, "What is a comet?")
			So(other[1].Text, ShouldEqual, "Why is Mars red?")
		})
	})
}

func TestTranscript_CloneAndValidate(t *testing.T) {
	Convey("Clone 返回独立副本", t, func() {
		var empty Transcript
		So(empty.Clone(), ShouldNotBeNil)
		So(len(empty.Clone()), ShouldEqual, 0)

		tr := Transcript{{Role: RoleUser, Text: "hello"}}
		cp := tr.Clone()
		cp[0].Text = "changed"
		So(tr[0].Text, ShouldEqual, "hello")
	})

	Convey("Validate 拒绝未知角色", t, func() {
		So(Transcript{{Role: RoleUser, Text: "a"}, {Role: RoleAssistant, Text: "b"}}.Validate(), ShouldBeNil)
		So(Transcript{{Role: "model", Text: "a"}}.Validate(), ShouldNotBeNil)
	})
}
