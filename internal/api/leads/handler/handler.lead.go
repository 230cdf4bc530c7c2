// Package leadshdl chứa các handler HTTP cho lead endpoints.
package leadshdl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	basehdl "leadq/internal/api/base/handler"
	leadsdto "leadq/internal/api/leads/dto"
	leadsvc "leadq/internal/api/leads/service"
	"leadq/internal/common"
	"leadq/internal/global"
	"leadq/internal/logger"
)

// LeadHandler xử lý các route liên quan đến lead
type LeadHandler struct {
	basehdl.BaseHandler
	leadService *leadsvc.LeadService
}

// NewLeadHandler tạo một instance mới của LeadHandler
func NewLeadHandler() (*LeadHandler, error) {
	leadService, err := leadsvc.NewLeadService()
	if err != nil {
		return nil, fmt.Errorf("failed to create lead service: %w", err)
	}
	return &LeadHandler{
		leadService: leadService,
	}, nil
}

// parseListQuery đọc và validate tham số query cho danh sách lead.
// Tham số sai kiểu trả về lỗi VAL_001 kèm tên tham số, trước khi chạm store.
func (h *LeadHandler) parseListQuery(c fiber.Ctx) (leadsdto.ListLeadsQuery, error) {
	var query leadsdto.ListLeadsQuery

	query.Search = strings.TrimSpace(c.Query("search"))
	query.Intent = strings.ToUpper(strings.TrimSpace(c.Query("intent")))

	if raw := c.Query("qualified"); raw != "" {
		qualified, err := strconv.ParseBool(raw)
		if err != nil {
			return query, common.NewError(
				common.ErrCodeValidationInput,
				"Tham số 'qualified' phải là true hoặc false",
				common.StatusBadRequest,
				fiber.Map{"parameter": "qualified", "value": raw},
			)
		}
		query.Qualified = &qualified
	}

	query.Sort = c.Query("sort", "desc")
	if query.Sort != "asc" && query.Sort != "desc" {
		return query, common.NewError(
			common.ErrCodeValidationInput,
			"Tham số 'sort' phải là 'asc' hoặc 'desc'",
			common.StatusBadRequest,
			fiber.Map{"parameter": "sort", "value": query.Sort},
		)
	}

	skip, err := basehdl.ParseIntQuery(c, "skip", 0)
	if err != nil {
		return query, err
	}
	if skip < 0 {
		return query, common.NewError(
			common.ErrCodeValidationInput,
			"Tham số 'skip' phải lớn hơn hoặc bằng 0",
			common.StatusBadRequest,
			fiber.Map{"parameter": "skip", "value": skip},
		)
	}
	query.Skip = skip

	// Vắng mặt limit thì dùng default; limit=0 truyền tường minh đi tiếp
	// xuống service và bị clamp lên 1, không rơi về default.
	limit, err := basehdl.ParseIntQuery(c, "limit", leadsvc.DefaultListLimit)
	if err != nil {
		return query, err
	}
	query.Limit = limit

	// Validator chung (no_xss cho search/intent, gte cho skip)
	if err := global.Validate.Struct(query); err != nil {
		return query, common.NewError(
			common.ErrCodeValidationInput,
			common.MsgValidationError,
			common.StatusBadRequest,
			err.Error(),
		)
	}

	return query, nil
}

// HandleListLeads trả về danh sách lead theo search/filter/sort/phân trang
// @Router /leads [get]
func (h *LeadHandler) HandleListLeads(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		query, err := h.parseListQuery(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		result, err := h.leadService.ListLeads(c.Context(), query)
		if err != nil {
			logger.WithRequestInfo(c, "leads", global.MongoDB_ColNames.Leads).
				WithError(err).Error("Failed to list leads")
		}
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetLead trả về một lead kèm toàn bộ chat, tra cứu theo sessionId
// @Router /leads/:sessionId [get]
func (h *LeadHandler) HandleGetLead(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		sessionID := c.Params("sessionId")
		if strings.TrimSpace(sessionID) == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Tham số 'sessionId' không được rỗng",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		detail, err := h.leadService.GetLeadDetail(c.Context(), sessionID)
		h.HandleResponse(c, detail, err)
		return nil
	})
}

// HandleGetStats trả về thống kê tổng hợp trên các lead đã phân tích
// @Router /leads/stats [get]
func (h *LeadHandler) HandleGetStats(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		stats, err := h.leadService.GetStats(c.Context())
		if err != nil {
			logger.WithRequestInfo(c, "leads", global.MongoDB_ColNames.Leads).
				WithError(err).Error("Failed to compute lead stats")
		}
		h.HandleResponse(c, stats, err)
		return nil
	})
}

// HandleHealth kiểm tra kết nối store và số lượng document
// @Router /system/health [get]
func (h *LeadHandler) HandleHealth(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		health, err := h.leadService.Health(c.Context())
		h.HandleResponse(c, health, err)
		return nil
	})
}
