package gateway

import (
	"regexp"
	"slices"
	"strings"
)

// choiceMarker 匹配 [CHOICE <n>: <label>]，label 不跨行
var choiceMarker = regexp.MustCompile(`\[CHOICE\s?(\d+):\s?([^\]\n]*)\]`)

// ChoiceParser 流式选项标记解析器
//
// 已扫描区间 raw[:scanned] 中的标记一旦闭合就被提交（移出正文、记入 choices），
// 之后永不回退；raw[scanned:] 是暂定区，未闭合的标记原样留在正文里，
// 直到后续片段带来右括号。
type ChoiceParser struct {
	raw     strings.Builder
	clean   strings.Builder
	scanned int
	choices []string
}

// NewChoiceParser 创建解析器
func NewChoiceParser() *ChoiceParser {
	return &ChoiceParser{}
}

// Feed 追加一个片段
func (p *ChoiceParser) Feed(fragment string) {
	p.raw.WriteString(fragment)

	tail := p.raw.String()[p.scanned:]
	consumed := 0
	for _, m := range choiceMarker.FindAllStringSubmatchIndex(tail, -1) {
		p.clean.WriteString(tail[consumed:m[0]])
		p.choices = append(p.choices, tail[m[4]:m[5]])
		consumed = m[1]
	}
	// 没有闭合标记时不推进，暂定区保持原样
	if consumed > 0 {
		p.scanned += consumed
	}
}

// Text 去掉已闭合标记并修剪空白后的正文
func (p *ChoiceParser) Text() string {
	return strings.TrimSpace(p.clean.String() + p.raw.String()[p.scanned:])
}

// Choices 目前为止解析出的选项（副本）
func (p *ChoiceParser) Choices() []string {
	return slices.Clone(p.choices)
}

// Raw 累计的原始文本
func (p *ChoiceParser) Raw() string {
	return p.raw.String()
}

// ExtractChoices 对完整文本一次性解析
func ExtractChoices(text string) (clean string, choices []string) {
	p := NewChoiceParser()
	p.Feed(text)
	return p.Text(), p.Choices()
}
