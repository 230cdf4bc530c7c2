package leadsvc

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	leadsdto "leadq/internal/api/leads/dto"
	leadmodels "leadq/internal/api/leads/models"
	"leadq/internal/common"
	"leadq/internal/global"
)

// GetStats tính thống kê tổng hợp trên collection lead.
// Số document đưa vào tính toán bị chặn bởi statsScanLimit (0 = không giới hạn).
func (s *LeadService) GetStats(ctx context.Context) (*leadsdto.StatsResult, error) {
	opts := options.Find()
	if s.statsScanLimit > 0 {
		opts.SetLimit(s.statsScanLimit)
	}

	docs, err := s.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	summaries := make([]leadsdto.LeadSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, ProjectLead(doc))
	}

	stats := accumulateStats(summaries)
	return &stats, nil
}

// accumulateStats tính thống kê từ các lead summary đã project.
// Hàm thuần túy để test không cần store:
//   - total/qualified/notQualified/qualificationRate/avgConfidence tính trên
//     document đã có output;
//   - avgMessages tính trên TẤT CẢ document (số tin nhắn độc lập với phân tích);
//   - intentBreakdown luôn chứa đủ 5 intent đã biết (zero-fill), intent lạ
//     từ upstream vẫn được đếm thêm key riêng.
//
// Các tỷ lệ làm tròn 2 chữ số thập phân, an toàn với chia cho 0.
func accumulateStats(summaries []leadsdto.LeadSummary) leadsdto.StatsResult {
	intentBreakdown := make(map[string]int64, len(leadmodels.KnownIntents))
	for _, intent := range leadmodels.KnownIntents {
		intentBreakdown[intent] = 0
	}

	var total, qualified int64
	var confidenceSum float64
	var confidenceCount int64
	var messageSum int64

	for _, lead := range summaries {
		messageSum += int64(lead.MessageLength)

		if !lead.HasOutput {
			continue
		}
		total++
		if lead.Qualified {
			qualified++
		}
		if lead.Confidence != nil {
			confidenceSum += *lead.Confidence
			confidenceCount++
		}
		if lead.Intent != nil {
			intentBreakdown[*lead.Intent]++
		}
	}

	stats := leadsdto.StatsResult{
		Total:           total,
		Qualified:       qualified,
		NotQualified:    total - qualified,
		IntentBreakdown: intentBreakdown,
	}

	if total > 0 {
		stats.QualificationRate = round2(float64(qualified) / float64(total))
	}
	if confidenceCount > 0 {
		stats.AvgConfidence = round2(confidenceSum / float64(confidenceCount))
	}
	if len(summaries) > 0 {
		stats.AvgMessages = round2(float64(messageSum) / float64(len(summaries)))
	}

	return stats
}

// round2 làm tròn 2 chữ số thập phân cho hiển thị ổn định
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// Health kiểm tra kết nối store và đếm số document.
// Store không phản hồi trả về lỗi kết nối (503).
func (s *LeadService) Health(ctx context.Context) (*leadsdto.HealthResult, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if global.MongoDB_Session == nil {
		return nil, common.ErrMongoConnection
	}
	if err := global.MongoDB_Session.Ping(pingCtx, nil); err != nil {
		return nil, common.ErrMongoConnection
	}

	total, err := s.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	withAnalysis, err := s.CountDocuments(ctx, bson.M{"output": bson.M{"$exists": true, "$ne": nil}})
	if err != nil {
		return nil, err
	}

	result := &leadsdto.HealthResult{
		Reachable:         true,
		TotalDocuments:    total,
		WithAnalysisCount: withAnalysis,
	}
	if global.ServerConfig != nil {
		result.Database = global.ServerConfig.MongoDB_DBName
		result.Collection = global.ServerConfig.MongoDB_Collection
	}

	return result, nil
}
