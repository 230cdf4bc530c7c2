// Package global - Test rule no_xss được đăng ký và áp dụng qua struct tag.
package global

import "testing"

type searchInput struct {
	Search string `validate:"omitempty,no_xss"`
}

func TestInitValidator_NoXSSRejectsScript(t *testing.T) {
	InitValidator()

	if err := Validate.Struct(searchInput{Search: "<script>alert(1)</script>"}); err == nil {
		t.Error("chuỗi chứa <script phải bị rule no_xss từ chối")
	}
}

func TestInitValidator_NoXSSAcceptsPlainSearch(t *testing.T) {
	InitValidator()

	if err := Validate.Struct(searchInput{Search: "+84 909 123 456"}); err != nil {
		t.Errorf("chuỗi search bình thường không được bị từ chối: %v", err)
	}
	if err := Validate.Struct(searchInput{Search: ""}); err != nil {
		t.Errorf("chuỗi rỗng phải qua được omitempty: %v", err)
	}
}
