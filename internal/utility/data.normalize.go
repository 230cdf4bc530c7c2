package utility

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ****************************************************  Normalize *******************************************
// Chuyển đổi giá trị gốc từ MongoDB sang dạng JSON-safe trước khi trả về client.

// Normalize chuyển đổi đệ quy một giá trị bất kỳ từ MongoDB sang dạng JSON-safe:
// ObjectID/Decimal128 -> chuỗi, DateTime/time.Time -> chuỗi ISO-8601 (UTC),
// bson.M/bson.D/primitive.A -> map/slice đã normalize.
// Giá trị primitive (string, bool, số, nil) được giữ nguyên.
// Leaf type không nhận diện được sẽ degrade thành chuỗi qua fmt.Sprintf.
// Hàm thuần túy và idempotent: normalize hai lần cho cùng kết quả.
func Normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	case primitive.ObjectID:
		return v.Hex()
	case primitive.Decimal128:
		return v.String()
	case primitive.DateTime:
		return v.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case bson.M:
		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			result[key] = Normalize(val)
		}
		return result
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			result[key] = Normalize(val)
		}
		return result
	case bson.D:
		result := make(map[string]interface{}, len(v))
		for _, elem := range v {
			result[elem.Key] = Normalize(elem.Value)
		}
		return result
	case primitive.A:
		result := make([]interface{}, 0, len(v))
		for _, item := range v {
			result = append(result, Normalize(item))
		}
		return result
	case []interface{}:
		result := make([]interface{}, 0, len(v))
		for _, item := range v {
			result = append(result, Normalize(item))
		}
		return result
	default:
		// Leaf type không nhận diện được (Binary, Timestamp, Regex, ...)
		return fmt.Sprintf("%v", v)
	}
}

// NormalizeDocument normalize toàn bộ một document bson.M
func NormalizeDocument(doc bson.M) map[string]interface{} {
	if doc == nil {
		return map[string]interface{}{}
	}
	result, _ := Normalize(doc).(map[string]interface{})
	return result
}

// ExtractDigits lấy toàn bộ chữ số từ chuỗi, bỏ qua mọi ký tự khác.
// Ví dụ: "91 22-00" -> "912200". Chuỗi không có chữ số trả về "".
func ExtractDigits(s string) string {
	var builder strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// ****************************************************  Normalize End  *******************************************
