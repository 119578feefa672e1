package model

// APOD NASA 每日天文图
type APOD struct {
	Copyright      string `json:"copyright,omitempty"`
	Date           string `json:"date"`
	Explanation    string `json:"explanation"`
	HDURL          string `json:"hdurl,omitempty"`
	MediaType      string `json:"media_type"` // image, video
	ServiceVersion string `json:"service_version"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	Fallback       bool   `json:"fallback,omitempty"` // 接口失败时返回的兜底内容
}

// CME 日冕物质抛射事件 (DONKI)
type CME struct {
	ActivityID  string          `json:"activityID"`
	StartTime   string          `json:"startTime"`
	Note        string          `json:"note"`
	Instruments []CMEInstrument `json:"instruments"`
	Analyses    []CMEAnalysis   `json:"cmeAnalyses"`
}

// CMEInstrument 观测仪器
type CMEInstrument struct {
	DisplayName string `json:"displayName"`
}

// CMEAnalysis CME 分析结果
type CMEAnalysis struct {
	Time21_5       string  `json:"time21_5"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	HalfAngle      float64 `json:"halfAngle"`
	Speed          float64 `json:"speed"`
	Type           string  `json:"type"`
	IsMostAccurate bool    `json:"isMostAccurate"`
	Note           string  `json:"note"`
	LevelOfData    int     `json:"levelOfData"`
}
