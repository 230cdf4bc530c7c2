// Package leadsdto - Test ngữ nghĩa null/rỗng khi serialize lead summary.
package leadsdto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadSummary_UnanalysedSerializesNulls(t *testing.T) {
	summary := LeadSummary{
		SessionID: "84909123456",
		Signals:   []interface{}{},
		Summary:   []interface{}{},
	}

	data, err := json.Marshal(summary)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &decoded))

	// intent/confidence/analysedAt phải là null JSON, không phải vắng mặt hay zero value
	v, ok := decoded["intent"]
	assert.True(t, ok, "intent phải có mặt trong JSON")
	assert.Nil(t, v, "intent chưa phân tích phải là null")

	v, ok = decoded["confidence"]
	assert.True(t, ok, "confidence phải có mặt trong JSON")
	assert.Nil(t, v, "confidence chưa phân tích phải là null")

	assert.Nil(t, decoded["analysedAt"], "analysedAt vắng mặt phải là null")

	// signals/summary phải là mảng rỗng, không phải null
	assert.Equal(t, []interface{}{}, decoded["signals"])
	assert.Equal(t, []interface{}{}, decoded["summary"])
}

func TestLeadSummary_AnalysedSerializesValues(t *testing.T) {
	intent := "INTERESTED"
	confidence := 0.87
	summary := LeadSummary{
		SessionID:  "123",
		HasOutput:  true,
		Qualified:  true,
		Intent:     &intent,
		Confidence: &confidence,
		AnalysedAt: "2026-08-20T09:00:00Z",
		Signals:    []interface{}{"asked price"},
		Summary:    []interface{}{},
	}

	data, err := json.Marshal(summary)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "INTERESTED", decoded["intent"])
	assert.Equal(t, 0.87, decoded["confidence"])
	assert.Equal(t, "2026-08-20T09:00:00Z", decoded["analysedAt"])
	assert.Equal(t, true, decoded["qualified"])
}
