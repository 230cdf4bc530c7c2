package leadsvc

import (
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	leadsdto "leadq/internal/api/leads/dto"
	leadmodels "leadq/internal/api/leads/models"
	"leadq/internal/utility"
)

// ProjectLead chuyển một lead document thô thành LeadSummary phẳng.
// Document thiếu hoặc sai kiểu trường nào thì trường đó degrade về default,
// không bao giờ fail trên document malformed.
func ProjectLead(doc leadmodels.LeadDocument) leadsdto.LeadSummary {
	summary := leadsdto.LeadSummary{
		SessionID:     stringifySessionID(doc["sessionId"]),
		MessageLength: asInt(doc["messageLength"]),
		AnalysedAt:    normalizeTimestamp(doc["analysedAt"]),
		LeadAnalysed:  asBool(doc["leadAnalysed"]),
		Signals:       []interface{}{},
		Summary:       []interface{}{},
	}

	output := asDocument(doc["output"])
	if len(output) == 0 {
		// Chưa phân tích: qualified=false, intent/confidence=null, mảng rỗng
		return summary
	}

	summary.HasOutput = true
	summary.Qualified = asBool(output["qualified"])

	if intent, ok := output["intent"].(string); ok && intent != "" {
		summary.Intent = &intent
	}
	if confidence, ok := asFloat(output["confidence"]); ok {
		summary.Confidence = &confidence
	}
	summary.Signals = asNormalizedSlice(output["signals"])
	summary.Summary = asNormalizedSlice(output["summary"])

	return summary
}

// ExtractChat lấy chuỗi tin nhắn có thứ tự từ một lead document.
// Hỗ trợ 3 dạng entry lịch sử: {type, data:{content}}, {type, data:"..."}
// và {type, content}. Entry thiếu content vẫn được giữ với content rỗng
// để số lượng chat khớp với messageLength. Trường messages vắng mặt hoặc
// không phải array trả về slice rỗng.
func ExtractChat(doc leadmodels.LeadDocument) []leadsdto.ChatEntry {
	rawMessages := asSlice(doc["messages"])
	if rawMessages == nil {
		return []leadsdto.ChatEntry{}
	}

	chat := make([]leadsdto.ChatEntry, 0, len(rawMessages))
	for _, raw := range rawMessages {
		message := asDocument(raw)
		if message == nil {
			// Entry không phải map vẫn được giữ để bảo toàn số lượng
			chat = append(chat, leadsdto.ChatEntry{
				Type:    "unknown",
				Content: stringifyContent(raw),
			})
			continue
		}

		entry := leadsdto.ChatEntry{Type: "unknown"}
		if msgType, ok := message["type"].(string); ok && msgType != "" {
			entry.Type = msgType
		}

		// Ưu tiên data lồng nhau, sau đó data dạng chuỗi, cuối cùng content phẳng
		switch data := message["data"].(type) {
		case bson.M:
			entry.Content = stringifyContent(data["content"])
		case map[string]interface{}:
			entry.Content = stringifyContent(data["content"])
		case bson.D:
			entry.Content = stringifyContent(data.Map()["content"])
		case string:
			entry.Content = data
		default:
			entry.Content = stringifyContent(message["content"])
		}

		chat = append(chat, entry)
	}

	return chat
}

// stringifySessionID chuyển sessionId về dạng chuỗi bất kể kiểu lưu trữ.
// Phone number có thể được lưu là string, int hoặc double tùy document.
func stringifySessionID(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		// Double không có phần thập phân (phone number) in dạng nguyên
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", utility.Normalize(v))
	}
}

// stringifyContent chuyển content bất kỳ về chuỗi, nil thành chuỗi rỗng
func stringifyContent(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", utility.Normalize(v))
	}
}

// normalizeTimestamp normalize giá trị timestamp, vắng mặt trả về nil
func normalizeTimestamp(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	return utility.Normalize(value)
}

// asDocument đọc giá trị dạng map, trả về nil nếu không phải map
func asDocument(value interface{}) bson.M {
	switch v := value.(type) {
	case bson.M:
		return v
	case map[string]interface{}:
		return bson.M(v)
	case bson.D:
		return v.Map()
	default:
		return nil
	}
}

// asSlice đọc giá trị dạng array, trả về nil nếu không phải array
func asSlice(value interface{}) []interface{} {
	switch v := value.(type) {
	case primitive.A:
		return []interface{}(v)
	case []interface{}:
		return v
	default:
		return nil
	}
}

// asNormalizedSlice đọc array và normalize từng phần tử, sai kiểu trả về rỗng
func asNormalizedSlice(value interface{}) []interface{} {
	raw := asSlice(value)
	if raw == nil {
		return []interface{}{}
	}
	result := make([]interface{}, 0, len(raw))
	for _, item := range raw {
		result = append(result, utility.Normalize(item))
	}
	return result
}

// asBool đọc giá trị bool, sai kiểu trả về false
func asBool(value interface{}) bool {
	b, _ := value.(bool)
	return b
}

// asInt đọc giá trị số nguyên từ các kiểu số BSON, sai kiểu trả về 0
func asInt(value interface{}) int {
	switch v := value.(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// asFloat đọc giá trị số thực từ các kiểu số BSON
func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
