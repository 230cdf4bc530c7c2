package leadsvc

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	leadsdto "leadq/internal/api/leads/dto"
	"leadq/internal/utility"
)

const (
	// Giới hạn phân trang cho danh sách lead.
	// DefaultListLimit được export để handler dùng khi client không truyền limit;
	// limit=0 truyền tường minh là giá trị dưới min và bị clamp lên 1, không phải default.
	DefaultListLimit = 50
	maxListLimit     = 200
	minListLimit     = 1
)

// BuildLeadFilter dựng filter MongoDB từ tham số query, các điều kiện AND với nhau:
//   - search: lấy phần chữ số, khớp sessionId chứa chuỗi digits đó
//     (không có chữ số thì bỏ qua search để tránh match tất cả);
//   - qualified/intent: khớp đúng trên output.qualified / output.intent,
//     áp một trong hai nghĩa là chỉ lấy document đã có output.
//
// Hàm thuần túy, không chạm store.
func BuildLeadFilter(query leadsdto.ListLeadsQuery) bson.M {
	filter := bson.M{}

	if query.Search != "" {
		digits := utility.ExtractDigits(query.Search)
		if digits != "" {
			filter["sessionId"] = primitive.Regex{
				Pattern: regexp.QuoteMeta(digits),
				Options: "i",
			}
		}
	}

	if query.Qualified != nil || query.Intent != "" {
		filter["output"] = bson.M{"$exists": true, "$ne": nil}
	}
	if query.Qualified != nil {
		filter["output.qualified"] = *query.Qualified
	}
	if query.Intent != "" {
		filter["output.intent"] = query.Intent
	}

	return filter
}

// clampLimit đưa limit về khoảng [1, 200]: trên max về 200, dưới min (kể cả 0) về 1
func clampLimit(limit int) int {
	if limit > maxListLimit {
		return maxListLimit
	}
	if limit < minListLimit {
		return minListLimit
	}
	return limit
}

// normalizeListQuery áp clamp và default cho tham số phân trang/sort.
// Limit đã được handler gán (default khi vắng mặt), ở đây chỉ clamp;
// hàm thuần túy để test không cần store.
func normalizeListQuery(query leadsdto.ListLeadsQuery) leadsdto.ListLeadsQuery {
	query.Limit = clampLimit(query.Limit)
	if query.Skip < 0 {
		query.Skip = 0
	}
	if query.Sort == "" {
		query.Sort = "desc"
	}
	return query
}

// ListLeads trả về một trang lead summaries theo filter, kèm tổng số
// của toàn bộ tập đã lọc và cờ hasMore.
func (s *LeadService) ListLeads(ctx context.Context, query leadsdto.ListLeadsQuery) (*leadsdto.ListLeadsResult, error) {
	query = normalizeListQuery(query)

	filter := BuildLeadFilter(query)

	// Tổng số của toàn bộ tập đã lọc, không chỉ trang hiện tại
	total, err := s.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortDir := -1
	if query.Sort == "asc" {
		sortDir = 1
	}

	// Sort qua aggregation với khóa phụ "analysedAt có mặt hay không":
	// document chưa có analysedAt luôn xếp cuối bất kể chiều sort,
	// để lead chưa phân tích không đè lên kết quả thật.
	pipeline := []bson.M{
		{"$match": filter},
		{"$addFields": bson.M{
			"_analysedAtPresent": bson.M{
				"$cond": bson.A{
					bson.M{"$in": bson.A{
						bson.M{"$type": "$analysedAt"},
						bson.A{"missing", "null"},
					}},
					0,
					1,
				},
			},
		}},
		{"$sort": bson.D{
			{Key: "_analysedAtPresent", Value: -1},
			{Key: "analysedAt", Value: sortDir},
			{Key: "_id", Value: -1},
		}},
		{"$skip": query.Skip},
		{"$limit": query.Limit},
	}

	docs, err := s.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	leads := make([]leadsdto.LeadSummary, 0, len(docs))
	for _, doc := range docs {
		leads = append(leads, ProjectLead(doc))
	}

	return &leadsdto.ListLeadsResult{
		Leads:   leads,
		Total:   total,
		Skip:    query.Skip,
		Limit:   query.Limit,
		HasMore: int64(query.Skip+len(leads)) < total,
	}, nil
}
