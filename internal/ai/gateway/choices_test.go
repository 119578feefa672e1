package gateway

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChoiceParser(t *testing.T) {
	Convey("ChoiceParser 增量解析选项标记", t, func() {
		Convey("标记跨片段时在右括号到达后才提交", func() {
			p := NewChoiceParser()

			p.Feed("Sunny feels")
			So(p.Text(), ShouldEqual, "Sunny feels")
			So(p.Choices(), ShouldBeEmpty)

			p.Feed(" energy! [CHOICE 1: Go")
			So(p.Text(), ShouldEqual, "Sunny feels energy! [CHOICE 1: Go")
			So(p.Choices(), ShouldBeEmpty)

			p.Feed(" north] [CHOICE 2: Stay put]")
			So(p.Text(), ShouldEqual, "Sunny feels energy!")
			So(cmp.Diff([]string{"Go north", "Stay put"}, p.Choices()), ShouldBeEmpty)
			So(p.Raw(), ShouldEqual, "Sunny feels energy! [CHOICE 1: Go north] [CHOICE 2: Stay put]")
		})

		Convey("未闭合的标记不产生选项", func() {
			p := NewChoiceParser()
			p.Feed("Hello [CHOICE 1: Jump")
			So(p.Choices(), ShouldBeEmpty)
			So(p.Text(), ShouldEqual, "Hello [CHOICE 1: Jump")
		})

		Convey("支持换行分隔、无空格和多位序号", func() {
			clean, choices := ExtractChoices("WHOOSH! Sunny zooms past Mercury.\n[CHOICE 1: Race a comet]\n[CHOICE2:Visit Venus]\n[CHOICE 12: Nap]")
			So(clean, ShouldEqual, "WHOOSH! Sunny zooms past Mercury.")
			So(cmp.Diff([]string{"Race a comet", "Visit Venus", "Nap"}, choices), ShouldBeEmpty)
		})

		Convey("未闭合标记不会吞掉下一行的完整标记", func() {
			clean, choices := ExtractChoices("ZAP! [CHOICE 1: broken\n[CHOICE 2: Fly home]")
			So(cmp.Diff([]string{"Fly home"}, choices), ShouldBeEmpty)
			So(clean, ShouldEqual, "ZAP! [CHOICE 1: broken")
		})

		Convey("已提交的选项只增不减", func() {
			p := NewChoiceParser()
			var previous []string
			for _, f := range []string{"A [CHOI", "CE 1: one] B [CHOICE 2", ": two]", " tail [CHOICE 3: three"} {
				p.Feed(f)
				current := p.Choices()
				So(len(current), ShouldBeGreaterThanOrEqualTo, len(previous))
				So(cmp.Diff(previous, current[:len(previous)], cmpopts.EquateEmpty()), ShouldBeEmpty)
				previous = current
			}
			So(cmp.Diff([]string{"one", "two"}, previous), ShouldBeEmpty)
		})

		Convey("Choices 返回副本", func() {
			p := NewChoiceParser()
			p.Feed("[CHOICE 1: a]")
			got := p.Choices()
			got[0] = "changed"
			So(p.Choices()[0], ShouldEqual, "a")
		})
	})
}
