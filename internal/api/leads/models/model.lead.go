// Package leadmodels định nghĩa model cho lead documents.
// Documents do pipeline chat-capture + AI-analysis bên ngoài ghi vào,
// schema không đồng nhất nên model là bson.M thay vì struct cố định.
package leadmodels

import (
	"go.mongodb.org/mongo-driver/bson"
)

// LeadDocument là một lead document thô từ MongoDB.
// Các trường quan trọng: sessionId (string hoặc int), messages (array),
// leadAnalysed (bool), analysedAt (timestamp, có thể vắng), messageLength (int),
// output (object, chỉ có sau khi phân tích xong).
type LeadDocument = bson.M

// Các giá trị intent do pipeline phân tích sinh ra.
// Giá trị ngoài danh sách này vẫn được pass through (forward-compatibility).
const (
	IntentInterested    = "INTERESTED"
	IntentQuery         = "QUERY"
	IntentNotInterested = "NOT_INTERESTED"
	IntentJunk          = "JUNK"
	IntentFailed        = "FAILED"
)

// KnownIntents là danh sách intent cố định, dùng để zero-fill intentBreakdown
// trong thống kê.
var KnownIntents = []string{
	IntentInterested,
	IntentQuery,
	IntentNotInterested,
	IntentJunk,
	IntentFailed,
}
