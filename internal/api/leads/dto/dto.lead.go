// Package leadsdto chứa các DTO cho lead endpoints.
package leadsdto

// LeadSummary là bản ghi lead phẳng trả về cho listing.
// Intent và Confidence là pointer để serialize thành null
// khi document chưa được phân tích.
type LeadSummary struct {
	SessionID     string        `json:"sessionId"`
	MessageLength int           `json:"messageLength"`
	AnalysedAt    interface{}   `json:"analysedAt"` // Chuỗi ISO-8601 hoặc null
	LeadAnalysed  bool          `json:"leadAnalysed"`
	HasOutput     bool          `json:"hasOutput"`
	Qualified     bool          `json:"qualified"`
	Intent        *string       `json:"intent"`
	Confidence    *float64      `json:"confidence"`
	Signals       []interface{} `json:"signals"`
	Summary       []interface{} `json:"summary"`
}

// ChatEntry là một tin nhắn trong cuộc trò chuyện
type ChatEntry struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// LeadDetail là lead summary kèm toàn bộ chat
type LeadDetail struct {
	LeadSummary
	Chat []ChatEntry `json:"chat"`
}

// ListLeadsQuery chứa các tham số query cho danh sách lead.
// Qualified là pointer để phân biệt "không filter" với "filter false".
type ListLeadsQuery struct {
	Search    string `json:"search" validate:"omitempty,no_xss"`
	Intent    string `json:"intent" validate:"omitempty,no_xss"`
	Qualified *bool  `json:"qualified"`
	Sort      string `json:"sort" validate:"omitempty,oneof=asc desc"`
	Skip      int    `json:"skip" validate:"gte=0"`
	Limit     int    `json:"limit"`
}

// ListLeadsResult là kết quả phân trang của danh sách lead
type ListLeadsResult struct {
	Leads   []LeadSummary `json:"leads"`
	Total   int64         `json:"total"`
	Skip    int           `json:"skip"`
	Limit   int           `json:"limit"`
	HasMore bool          `json:"hasMore"`
}

// StatsResult chứa thống kê tổng hợp trên các document đã phân tích
type StatsResult struct {
	Total             int64            `json:"total"`
	Qualified         int64            `json:"qualified"`
	NotQualified      int64            `json:"notQualified"`
	QualificationRate float64          `json:"qualificationRate"`
	AvgConfidence     float64          `json:"avgConfidence"`
	AvgMessages       float64          `json:"avgMessages"`
	IntentBreakdown   map[string]int64 `json:"intentBreakdown"`
}

// HealthResult chứa trạng thái kết nối store và số lượng document
type HealthResult struct {
	Reachable         bool   `json:"reachable"`
	TotalDocuments    int64  `json:"totalDocuments"`
	WithAnalysisCount int64  `json:"withAnalysisCount"`
	Database          string `json:"database"`
	Collection        string `json:"collection"`
}
