// Package leadsvc - Test tính thống kê tổng hợp từ lead summaries.
package leadsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	leadsdto "leadq/internal/api/leads/dto"
	leadmodels "leadq/internal/api/leads/models"
)

// makeSummaries project một loạt document thô, tiện dựng fixture cho stats
func makeSummaries(docs ...leadmodels.LeadDocument) []leadsdto.LeadSummary {
	summaries := make([]leadsdto.LeadSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, ProjectLead(doc))
	}
	return summaries
}

func TestAccumulateStats_MixedDocuments(t *testing.T) {
	// 3 document: 2 đã phân tích (1 qualified), 1 chưa phân tích
	summaries := makeSummaries(
		leadmodels.LeadDocument{
			"sessionId":     "1",
			"messageLength": int32(5),
			"output": bson.M{
				"qualified":  true,
				"intent":     leadmodels.IntentInterested,
				"confidence": 0.8,
			},
		},
		leadmodels.LeadDocument{
			"sessionId":     "2",
			"messageLength": int32(10),
			"output": bson.M{
				"qualified":  false,
				"intent":     leadmodels.IntentJunk,
				"confidence": 0.2,
			},
		},
		leadmodels.LeadDocument{
			"sessionId":     "3",
			"messageLength": int32(3),
		},
	)

	stats := accumulateStats(summaries)

	if stats.Total != 2 {
		t.Errorf("total chỉ đếm document đã phân tích: got %d, want 2", stats.Total)
	}
	if stats.Qualified != 1 || stats.NotQualified != 1 {
		t.Errorf("qualified/notQualified sai: %d/%d", stats.Qualified, stats.NotQualified)
	}
	if stats.QualificationRate != 0.5 {
		t.Errorf("qualificationRate sai: got %v, want 0.5", stats.QualificationRate)
	}
	if stats.AvgConfidence != 0.5 {
		t.Errorf("avgConfidence sai: got %v, want 0.5", stats.AvgConfidence)
	}
	// avgMessages tính trên TẤT CẢ document: (5+10+3)/3 = 6
	if stats.AvgMessages != 6 {
		t.Errorf("avgMessages phải tính trên mọi document: got %v, want 6", stats.AvgMessages)
	}
	if stats.IntentBreakdown[leadmodels.IntentInterested] != 1 {
		t.Errorf("breakdown INTERESTED sai: %d", stats.IntentBreakdown[leadmodels.IntentInterested])
	}
	if stats.IntentBreakdown[leadmodels.IntentJunk] != 1 {
		t.Errorf("breakdown JUNK sai: %d", stats.IntentBreakdown[leadmodels.IntentJunk])
	}
}

func TestAccumulateStats_BreakdownZeroFilled(t *testing.T) {
	stats := accumulateStats(nil)

	// Cả 5 intent đã biết phải có mặt với giá trị 0 kể cả khi không có document
	for _, intent := range leadmodels.KnownIntents {
		count, ok := stats.IntentBreakdown[intent]
		if !ok {
			t.Errorf("intentBreakdown thiếu key %s", intent)
		}
		if count != 0 {
			t.Errorf("intent %s phải là 0, got %d", intent, count)
		}
	}
	if len(stats.IntentBreakdown) != len(leadmodels.KnownIntents) {
		t.Errorf("breakdown rỗng phải có đúng %d key, got %d", len(leadmodels.KnownIntents), len(stats.IntentBreakdown))
	}
}

func TestAccumulateStats_EmptySafe(t *testing.T) {
	stats := accumulateStats([]leadsdto.LeadSummary{})

	// Không document nào: mọi tỷ lệ phải là 0, không chia cho 0
	if stats.Total != 0 || stats.Qualified != 0 {
		t.Errorf("counters phải là 0: %+v", stats)
	}
	if stats.QualificationRate != 0 || stats.AvgConfidence != 0 || stats.AvgMessages != 0 {
		t.Errorf("tỷ lệ trên tập rỗng phải là 0: %+v", stats)
	}
}

func TestAccumulateStats_UnknownIntentCounted(t *testing.T) {
	summaries := makeSummaries(leadmodels.LeadDocument{
		"sessionId":     "1",
		"messageLength": int32(1),
		"output": bson.M{
			"qualified": false,
			"intent":    "SOMETHING_NEW",
		},
	})
	stats := accumulateStats(summaries)
	if stats.IntentBreakdown["SOMETHING_NEW"] != 1 {
		t.Errorf("intent lạ từ upstream vẫn phải được đếm, got %v", stats.IntentBreakdown)
	}
	// 5 intent chuẩn vẫn phải zero-fill bên cạnh intent lạ
	if len(stats.IntentBreakdown) != len(leadmodels.KnownIntents)+1 {
		t.Errorf("breakdown phải có %d key, got %d", len(leadmodels.KnownIntents)+1, len(stats.IntentBreakdown))
	}
}

func TestAccumulateStats_ConfidenceOnlyOverNumeric(t *testing.T) {
	// 2 document đã phân tích nhưng chỉ 1 có confidence
	summaries := makeSummaries(
		leadmodels.LeadDocument{
			"sessionId":     "1",
			"messageLength": int32(2),
			"output":        bson.M{"qualified": true, "confidence": 0.9},
		},
		leadmodels.LeadDocument{
			"sessionId":     "2",
			"messageLength": int32(2),
			"output":        bson.M{"qualified": false},
		},
	)
	stats := accumulateStats(summaries)
	if stats.AvgConfidence != 0.9 {
		t.Errorf("avgConfidence chỉ tính trên document có confidence: got %v, want 0.9", stats.AvgConfidence)
	}
}

func TestAccumulateStats_IntConfidence(t *testing.T) {
	// Upstream đôi khi ghi confidence là int
	summaries := makeSummaries(leadmodels.LeadDocument{
		"sessionId":     "1",
		"messageLength": int32(1),
		"output":        bson.M{"qualified": true, "confidence": int32(1)},
	})
	stats := accumulateStats(summaries)
	if stats.AvgConfidence != 1 {
		t.Errorf("confidence dạng int phải được đọc: got %v", stats.AvgConfidence)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		input float64
		want  float64
	}{
		{0.666666, 0.67},
		{0.5, 0.5},
		{1.0 / 3.0, 0.33},
		{0, 0},
	}
	for _, c := range cases {
		if got := round2(c.input); got != c.want {
			t.Errorf("round2(%v) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestAccumulateStats_MessagesFromPrimitiveA(t *testing.T) {
	// messageLength đọc từ nhiều kiểu số BSON khác nhau
	summaries := makeSummaries(
		leadmodels.LeadDocument{"sessionId": "1", "messageLength": int64(4)},
		leadmodels.LeadDocument{"sessionId": "2", "messageLength": float64(8)},
	)
	stats := accumulateStats(summaries)
	if stats.AvgMessages != 6 {
		t.Errorf("avgMessages với các kiểu số BSON: got %v, want 6", stats.AvgMessages)
	}
}
