// Package leadsvc - Test BuildLeadFilter và clamp phân trang.
package leadsvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	leadsdto "leadq/internal/api/leads/dto"
	leadmodels "leadq/internal/api/leads/models"
)

func TestBuildLeadFilter_Empty(t *testing.T) {
	filter := BuildLeadFilter(leadsdto.ListLeadsQuery{})
	if len(filter) != 0 {
		t.Errorf("query rỗng phải ra filter rỗng, got %v", filter)
	}
}

func TestBuildLeadFilter_SearchExtractsDigits(t *testing.T) {
	filter := BuildLeadFilter(leadsdto.ListLeadsQuery{Search: "+84 (909) 123"})
	rx, ok := filter["sessionId"].(primitive.Regex)
	if !ok {
		t.Fatalf("search phải thành regex trên sessionId, got %v", filter["sessionId"])
	}
	if rx.Pattern != "84909123" {
		t.Errorf("pattern phải là chuỗi digits đã extract, got %q", rx.Pattern)
	}
	if rx.Options != "i" {
		t.Errorf("regex phải case-insensitive, got options %q", rx.Options)
	}
}

func TestBuildLeadFilter_SearchWithoutDigits(t *testing.T) {
	// Không có chữ số thì bỏ search, tránh regex rỗng match tất cả
	filter := BuildLeadFilter(leadsdto.ListLeadsQuery{Search: "hello world"})
	if _, ok := filter["sessionId"]; ok {
		t.Errorf("search không có chữ số không được tạo điều kiện sessionId, got %v", filter)
	}
}

func TestBuildLeadFilter_QualifiedImpliesOutputExists(t *testing.T) {
	qualified := true
	filter := BuildLeadFilter(leadsdto.ListLeadsQuery{Qualified: &qualified})

	output, ok := filter["output"].(bson.M)
	if !ok {
		t.Fatalf("filter qualified phải kèm điều kiện output tồn tại, got %v", filter)
	}
	if output["$exists"] != true {
		t.Errorf("output phải có $exists: true, got %v", output)
	}
	if filter["output.qualified"] != true {
		t.Errorf("output.qualified phải là true, got %v", filter["output.qualified"])
	}
}

func TestBuildLeadFilter_QualifiedFalse(t *testing.T) {
	// qualified=false vẫn là filter, khác với không truyền qualified
	qualified := false
	filter := BuildLeadFilter(leadsdto.ListLeadsQuery{Qualified: &qualified})
	if filter["output.qualified"] != false {
		t.Errorf("output.qualified phải là false, got %v", filter["output.qualified"])
	}
	if _, ok := filter["output"]; !ok {
		t.Error("qualified=false vẫn phải kèm điều kiện output tồn tại")
	}
}

func TestBuildLeadFilter_Intent(t *testing.T) {
	filter := BuildLeadFilter(leadsdto.ListLeadsQuery{Intent: leadmodels.IntentQuery})
	if filter["output.intent"] != leadmodels.IntentQuery {
		t.Errorf("output.intent sai: %v", filter["output.intent"])
	}
	if _, ok := filter["output"]; !ok {
		t.Error("filter intent phải kèm điều kiện output tồn tại")
	}
}

func TestBuildLeadFilter_Combined(t *testing.T) {
	qualified := true
	filter := BuildLeadFilter(leadsdto.ListLeadsQuery{
		Search:    "9122",
		Qualified: &qualified,
		Intent:    leadmodels.IntentInterested,
	})
	// Các điều kiện phải AND với nhau trong cùng một filter
	if _, ok := filter["sessionId"]; !ok {
		t.Error("thiếu điều kiện sessionId")
	}
	if filter["output.qualified"] != true {
		t.Error("thiếu điều kiện output.qualified")
	}
	if filter["output.intent"] != leadmodels.IntentInterested {
		t.Error("thiếu điều kiện output.intent")
	}
}

func TestNormalizeListQuery_ExplicitZeroLimit(t *testing.T) {
	// limit=0 truyền tường minh là giá trị dưới min: clamp lên 1,
	// không được rơi về default 50
	query := normalizeListQuery(leadsdto.ListLeadsQuery{Limit: 0})
	if query.Limit != 1 {
		t.Errorf("limit=0 phải clamp lên 1, got %d", query.Limit)
	}
}

func TestNormalizeListQuery_DefaultLimitPassesThrough(t *testing.T) {
	// Handler gán DefaultListLimit khi client không truyền limit
	query := normalizeListQuery(leadsdto.ListLeadsQuery{Limit: DefaultListLimit})
	if query.Limit != 50 {
		t.Errorf("default limit phải giữ nguyên 50, got %d", query.Limit)
	}
}

func TestNormalizeListQuery_ClampAndDefaults(t *testing.T) {
	query := normalizeListQuery(leadsdto.ListLeadsQuery{Limit: 500, Skip: -3})
	if query.Limit != 200 {
		t.Errorf("limit quá max phải clamp về 200, got %d", query.Limit)
	}
	if query.Skip != 0 {
		t.Errorf("skip âm phải về 0, got %d", query.Skip)
	}
	if query.Sort != "desc" {
		t.Errorf("sort rỗng phải về desc, got %q", query.Sort)
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		input int
		want  int
	}{
		{500, 200},
		{200, 200},
		{50, 50},
		{1, 1},
		{0, 1},
		{-5, 1},
	}
	for _, c := range cases {
		if got := clampLimit(c.input); got != c.want {
			t.Errorf("clampLimit(%d) = %d, want %d", c.input, got, c.want)
		}
	}
}
