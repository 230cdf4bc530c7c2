package leadsvc

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	leadsdto "leadq/internal/api/leads/dto"
	leadmodels "leadq/internal/api/leads/models"
	"leadq/internal/common"
	"leadq/internal/logger"
	"leadq/internal/utility"
)

// sessionFinder là bề mặt store tối thiểu mà các strategy tra cứu cần đến.
// LeadService thỏa interface này qua BaseServiceMongoImpl; test thay bằng
// store giả lập để kiểm tra thứ tự fallback mà không cần MongoDB.
type sessionFinder interface {
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (leadmodels.LeadDocument, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]leadmodels.LeadDocument, error)
}

// resolveStrategy là một bước tra cứu sessionId độc lập.
// Các strategy được thử lần lượt; strategy trả về ErrNotFound thì
// chuyển sang strategy tiếp theo, lỗi store thì dừng ngay.
type resolveStrategy struct {
	name string
	run  func(ctx context.Context, store sessionFinder, sid string, digits string) (leadmodels.LeadDocument, error)
}

// ResolveSession tìm lead document theo identifier do người dùng cung cấp.
// Upstream lưu sessionId không đồng nhất (string hoặc int, format drift)
// nên phải thử lần lượt 4 strategy; hết cả 4 mà không thấy thì trả ErrNotFound.
func (s *LeadService) ResolveSession(ctx context.Context, sessionID string) (leadmodels.LeadDocument, error) {
	return resolveSession(ctx, s, sessionID, s.resolveScanLimit)
}

func resolveSession(ctx context.Context, store sessionFinder, sessionID string, scanLimit int64) (leadmodels.LeadDocument, error) {
	sid := strings.TrimSpace(sessionID)
	digits := utility.ExtractDigits(sid)

	strategies := []resolveStrategy{
		{name: "exact_string", run: resolveByExactString},
		{name: "int_cast", run: resolveByIntCast},
		{name: "regex", run: resolveByRegex},
		{name: "recent_scan", run: func(ctx context.Context, store sessionFinder, sid string, digits string) (leadmodels.LeadDocument, error) {
			return resolveByRecentScan(ctx, store, sid, digits, scanLimit)
		}},
	}

	for _, strategy := range strategies {
		doc, err := strategy.run(ctx, store, sid, digits)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				continue
			}
			return nil, err
		}
		logger.WithModule("leads").WithFields(map[string]interface{}{
			"strategy":  strategy.name,
			"sessionId": sid,
		}).Debug("Session resolved")
		return doc, nil
	}

	logger.WithModule("leads").WithFields(map[string]interface{}{
		"sessionId": sid,
	}).Warn("Session not found after all strategies")
	return nil, common.ErrNotFound
}

// GetLeadDetail tra cứu lead theo sessionId và trả về summary kèm chat
func (s *LeadService) GetLeadDetail(ctx context.Context, sessionID string) (*leadsdto.LeadDetail, error) {
	doc, err := s.ResolveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return &leadsdto.LeadDetail{
		LeadSummary: ProjectLead(doc),
		Chat:        ExtractChat(doc),
	}, nil
}

// resolveByExactString tìm document có sessionId đúng bằng chuỗi identifier
func resolveByExactString(ctx context.Context, store sessionFinder, sid string, _ string) (leadmodels.LeadDocument, error) {
	return store.FindOne(ctx, bson.M{"sessionId": sid}, nil)
}

// resolveByIntCast tìm document có sessionId được lưu dạng số nguyên.
// Một số document lưu phone number là int thay vì string.
func resolveByIntCast(ctx context.Context, store sessionFinder, _ string, digits string) (leadmodels.LeadDocument, error) {
	if digits == "" {
		return nil, common.ErrNotFound
	}
	numeric, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil, common.ErrNotFound
	}
	return store.FindOne(ctx, bson.M{"sessionId": numeric}, nil)
}

// resolveByRegex tìm document có sessionId chứa chuỗi digits (không phân biệt
// hoa thường). Digits được escape trước khi nhúng vào pattern để identifier
// thô không inject được regex.
func resolveByRegex(ctx context.Context, store sessionFinder, _ string, digits string) (leadmodels.LeadDocument, error) {
	if digits == "" {
		return nil, common.ErrNotFound
	}
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(digits), Options: "i"}
	return store.FindOne(ctx, bson.M{"sessionId": pattern}, nil)
}

// resolveByRecentScan quét N document gần nhất và so khớp tuyến tính.
// Bước fallback cuối cho các trường hợp format drift mà query không bắt được.
func resolveByRecentScan(ctx context.Context, store sessionFinder, sid string, digits string, scanLimit int64) (leadmodels.LeadDocument, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(scanLimit)

	docs, err := store.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if matchesSession(stringifySessionID(doc["sessionId"]), sid, digits) {
			return doc, nil
		}
	}

	return nil, common.ErrNotFound
}

// matchesSession kiểm tra sessionId của document có khớp identifier không:
// đúng bằng chuỗi, hoặc chứa chuỗi digits của identifier.
func matchesSession(docSessionID string, sid string, digits string) bool {
	if docSessionID == "" {
		return false
	}
	if docSessionID == sid {
		return true
	}
	return digits != "" && strings.Contains(docSessionID, digits)
}
