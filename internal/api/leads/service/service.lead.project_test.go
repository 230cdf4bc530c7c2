// Package leadsvc - Test ProjectLead và ExtractChat trên các shape document thực tế.
package leadsvc

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	leadmodels "leadq/internal/api/leads/models"
)

func TestProjectLead_FullDocument(t *testing.T) {
	analysedAt := primitive.NewDateTimeFromTime(time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	doc := leadmodels.LeadDocument{
		"sessionId":     "84909123456",
		"messageLength": int32(12),
		"analysedAt":    analysedAt,
		"leadAnalysed":  true,
		"output": bson.M{
			"qualified":  true,
			"intent":     leadmodels.IntentInterested,
			"confidence": 0.87,
			"signals":    primitive.A{"asked price", "left phone"},
			"summary":    primitive.A{"wants demo"},
		},
	}

	got := ProjectLead(doc)
	if got.SessionID != "84909123456" {
		t.Errorf("sessionId sai: %q", got.SessionID)
	}
	if got.MessageLength != 12 {
		t.Errorf("messageLength sai: %d", got.MessageLength)
	}
	if !got.HasOutput || !got.Qualified || !got.LeadAnalysed {
		t.Errorf("cờ phân tích sai: hasOutput=%v qualified=%v leadAnalysed=%v", got.HasOutput, got.Qualified, got.LeadAnalysed)
	}
	if got.Intent == nil || *got.Intent != leadmodels.IntentInterested {
		t.Errorf("intent sai: %v", got.Intent)
	}
	if got.Confidence == nil || *got.Confidence != 0.87 {
		t.Errorf("confidence sai: %v", got.Confidence)
	}
	if len(got.Signals) != 2 || len(got.Summary) != 1 {
		t.Errorf("signals/summary sai: %v / %v", got.Signals, got.Summary)
	}
	if got.AnalysedAt == nil {
		t.Error("analysedAt không được nil khi document có timestamp")
	}
}

func TestProjectLead_MissingOutput(t *testing.T) {
	doc := leadmodels.LeadDocument{
		"sessionId":     "123",
		"messageLength": int32(3),
	}

	got := ProjectLead(doc)
	if got.HasOutput || got.Qualified {
		t.Error("document chưa phân tích phải có hasOutput=false, qualified=false")
	}
	if got.Intent != nil {
		t.Errorf("intent phải nil khi chưa phân tích, got %v", *got.Intent)
	}
	if got.Confidence != nil {
		t.Errorf("confidence phải nil khi chưa phân tích, got %v", *got.Confidence)
	}
	if got.AnalysedAt != nil {
		t.Errorf("analysedAt phải nil khi vắng mặt, got %v", got.AnalysedAt)
	}
	if got.Signals == nil || len(got.Signals) != 0 {
		t.Errorf("signals phải là mảng rỗng, got %v", got.Signals)
	}
	if got.Summary == nil || len(got.Summary) != 0 {
		t.Errorf("summary phải là mảng rỗng, got %v", got.Summary)
	}
}

func TestProjectLead_EmptyOutput(t *testing.T) {
	doc := leadmodels.LeadDocument{
		"sessionId": "123",
		"output":    bson.M{},
	}
	got := ProjectLead(doc)
	if got.HasOutput {
		t.Error("output rỗng phải coi như chưa phân tích")
	}
}

func TestProjectLead_MalformedFields(t *testing.T) {
	doc := leadmodels.LeadDocument{
		"sessionId":     bson.M{"weird": true},
		"messageLength": "not a number",
		"leadAnalysed":  "yes",
		"output": bson.M{
			"qualified":  "true",
			"intent":     int32(5),
			"confidence": "high",
			"signals":    "not an array",
		},
	}

	// Không được panic, mọi trường sai kiểu degrade về default
	got := ProjectLead(doc)
	if got.MessageLength != 0 {
		t.Errorf("messageLength sai kiểu phải về 0, got %d", got.MessageLength)
	}
	if got.LeadAnalysed || got.Qualified {
		t.Error("bool sai kiểu phải về false")
	}
	if got.Intent != nil {
		t.Errorf("intent sai kiểu phải nil, got %v", *got.Intent)
	}
	if got.Confidence != nil {
		t.Errorf("confidence sai kiểu phải nil, got %v", *got.Confidence)
	}
	if len(got.Signals) != 0 {
		t.Errorf("signals sai kiểu phải là mảng rỗng, got %v", got.Signals)
	}
}

func TestStringifySessionID(t *testing.T) {
	cases := []struct {
		input interface{}
		want  string
	}{
		{"abc123", "abc123"},
		{int64(919220908612), "919220908612"},
		{int32(12345), "12345"},
		{float64(919220908612), "919220908612"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := stringifySessionID(c.input); got != c.want {
			t.Errorf("stringifySessionID(%v) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestExtractChat_NestedData(t *testing.T) {
	doc := leadmodels.LeadDocument{
		"messages": primitive.A{
			bson.M{"type": "human", "data": bson.M{"content": "hello"}},
			bson.M{"type": "ai", "data": bson.M{"content": "hi there"}},
		},
	}
	chat := ExtractChat(doc)
	if len(chat) != 2 {
		t.Fatalf("phải có 2 entry, got %d", len(chat))
	}
	if chat[0].Type != "human" || chat[0].Content != "hello" {
		t.Errorf("entry 0 sai: %+v", chat[0])
	}
	if chat[1].Type != "ai" || chat[1].Content != "hi there" {
		t.Errorf("entry 1 sai: %+v", chat[1])
	}
}

func TestExtractChat_DataAsString(t *testing.T) {
	doc := leadmodels.LeadDocument{
		"messages": primitive.A{
			bson.M{"type": "human", "data": "raw text"},
		},
	}
	chat := ExtractChat(doc)
	if len(chat) != 1 || chat[0].Content != "raw text" {
		t.Errorf("data dạng chuỗi phải thành content trực tiếp, got %+v", chat)
	}
}

func TestExtractChat_FlatContent(t *testing.T) {
	doc := leadmodels.LeadDocument{
		"messages": primitive.A{
			bson.M{"type": "ai", "content": "flat"},
		},
	}
	chat := ExtractChat(doc)
	if len(chat) != 1 || chat[0].Content != "flat" {
		t.Errorf("content phẳng phải được đọc, got %+v", chat)
	}
}

func TestExtractChat_EmptyContentKept(t *testing.T) {
	doc := leadmodels.LeadDocument{
		"messageLength": int32(3),
		"messages": primitive.A{
			bson.M{"type": "human", "data": bson.M{"content": "hello"}},
			bson.M{"type": "ai"},
			bson.M{"type": "human", "data": bson.M{}},
		},
	}
	chat := ExtractChat(doc)
	// Entry thiếu content vẫn phải giữ để số chat khớp messageLength
	if len(chat) != 3 {
		t.Fatalf("entry content rỗng phải được giữ, got %d entry", len(chat))
	}
	if chat[1].Content != "" || chat[2].Content != "" {
		t.Errorf("content thiếu phải thành chuỗi rỗng: %+v", chat)
	}
}

func TestExtractChat_MissingType(t *testing.T) {
	doc := leadmodels.LeadDocument{
		"messages": primitive.A{
			bson.M{"data": bson.M{"content": "no type"}},
		},
	}
	chat := ExtractChat(doc)
	if len(chat) != 1 || chat[0].Type != "unknown" {
		t.Errorf("entry thiếu type phải thành 'unknown', got %+v", chat)
	}
}

func TestExtractChat_NonMapEntry(t *testing.T) {
	doc := leadmodels.LeadDocument{
		"messages": primitive.A{"just a string"},
	}
	chat := ExtractChat(doc)
	if len(chat) != 1 {
		t.Fatalf("entry không phải map vẫn phải được giữ, got %d", len(chat))
	}
	if chat[0].Type != "unknown" || chat[0].Content != "just a string" {
		t.Errorf("entry không phải map sai: %+v", chat[0])
	}
}

func TestExtractChat_MissingMessages(t *testing.T) {
	chat := ExtractChat(leadmodels.LeadDocument{"sessionId": "1"})
	if chat == nil || len(chat) != 0 {
		t.Errorf("messages vắng mặt phải trả slice rỗng, got %v", chat)
	}

	chat = ExtractChat(leadmodels.LeadDocument{"messages": "not an array"})
	if chat == nil || len(chat) != 0 {
		t.Errorf("messages sai kiểu phải trả slice rỗng, got %v", chat)
	}
}
