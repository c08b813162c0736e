package lm

import "strings"

// StringConverter rewrites phrase text on its way in or out of the
// model. A nil converter is the identity.
type StringConverter interface {
	Convert(s string) string
}

// RuneMapConverter converts character by character over a fixed table,
// leaving unmapped runes alone.
type RuneMapConverter struct {
	table map[rune]rune
}

// Convert implements StringConverter.
func (c *RuneMapConverter) Convert(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if mapped, ok := c.table[r]; ok {
			r = mapped
		}
		b.WriteRune(r)
	}
	return b.String()
}

// traditionalToSimplified covers the high-frequency characters the
// default dictionary emits. One-to-many mappings keep the dominant
// reading.
var traditionalToSimplified = map[rune]rune{
	'愛': '爱', '罷': '罢', '備': '备', '筆': '笔', '邊': '边',
	'標': '标', '賓': '宾', '長': '长', '場': '场', '車': '车',
	'陳': '陈', '稱': '称', '遲': '迟', '齒': '齿', '處': '处',
	'傳': '传', '創': '创', '從': '从', '達': '达', '帶': '带',
	'單': '单', '當': '当', '黨': '党', '動': '动', '東': '东',
	'對': '对', '隊': '队', '爾': '尔', '發': '发', '飛': '飞',
	'豐': '丰', '風': '风', '婦': '妇', '個': '个', '給': '给',
	'關': '关', '觀': '观', '廣': '广', '國': '国', '過': '过',
	'還': '还', '漢': '汉', '號': '号', '後': '后', '華': '华',
	'話': '话', '會': '会', '機': '机', '幾': '几', '記': '记',
	'際': '际', '繼': '继', '家': '家', '價': '价', '間': '间',
	'見': '见', '將': '将', '講': '讲', '進': '进', '經': '经',
	'舊': '旧', '開': '开', '來': '来', '樂': '乐', '裡': '里',
	'歷': '历', '連': '连', '兩': '两', '靈': '灵', '龍': '龙',
	'馬': '马', '嗎': '吗', '買': '买', '賣': '卖', '門': '门',
	'們': '们', '夢': '梦', '麵': '面', '鳥': '鸟', '農': '农',
	'氣': '气', '錢': '钱', '親': '亲', '請': '请', '讓': '让',
	'熱': '热', '認': '认', '聲': '声', '時': '时', '實': '实',
	'書': '书', '術': '术', '雙': '双', '誰': '谁', '說': '说',
	'歲': '岁', '體': '体', '聽': '听', '頭': '头', '圖': '图',
	'為': '为', '偉': '伟', '問': '问', '無': '无', '習': '习',
	'戲': '戏', '現': '现', '鄉': '乡', '寫': '写', '興': '兴',
	'學': '学', '訓': '训', '壓': '压', '業': '业', '葉': '叶',
	'醫': '医', '藝': '艺', '億': '亿', '憶': '忆', '應': '应',
	'語': '语', '員': '员', '遠': '远', '雲': '云', '運': '运',
	'這': '这', '證': '证', '隻': '只', '執': '执', '紙': '纸',
	'鐘': '钟', '眾': '众', '專': '专', '準': '准', '總': '总',
	'嘴': '嘴', '組': '组', '鑽': '钻', '妳': '你',
}

var simplifiedToTraditional = func() map[rune]rune {
	m := make(map[rune]rune, len(traditionalToSimplified))
	for t, s := range traditionalToSimplified {
		if _, taken := m[s]; !taken {
			m[s] = t
		}
	}
	return m
}()

// NewTraditionalToSimplifiedConverter returns the output converter
// used when Simplified display is enabled.
func NewTraditionalToSimplifiedConverter() StringConverter {
	return &RuneMapConverter{table: traditionalToSimplified}
}

// NewSimplifiedToTraditionalConverter returns the input converter used
// to store user phrases typed while Simplified display is enabled.
func NewSimplifiedToTraditionalConverter() StringConverter {
	return &RuneMapConverter{table: simplifiedToTraditional}
}
