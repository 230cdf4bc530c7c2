// Package leadsvc chứa nghiệp vụ đọc, tra cứu và thống kê lead documents.
package leadsvc

import (
	"fmt"

	basesvc "leadq/internal/api/base/service"
	leadmodels "leadq/internal/api/leads/models"
	"leadq/internal/common"
	"leadq/internal/global"
)

// LeadService là cấu trúc chứa các phương thức liên quan đến lead
type LeadService struct {
	*basesvc.BaseServiceMongoImpl[leadmodels.LeadDocument]
	resolveScanLimit int64 // Số document gần nhất được quét ở bước fallback khi tra cứu sessionId
	statsScanLimit   int64 // Số document tối đa đưa vào tính thống kê (0 = không giới hạn)
}

// NewLeadService tạo mới LeadService từ collection trong registry
// và các knob trong cấu hình server.
func NewLeadService() (*LeadService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Leads)
	if !exist {
		return nil, fmt.Errorf("failed to get leads collection: %v", common.ErrNotFound)
	}

	resolveScanLimit := int64(200)
	statsScanLimit := int64(1000)
	if global.ServerConfig != nil {
		if global.ServerConfig.ResolveScanLimit > 0 {
			resolveScanLimit = int64(global.ServerConfig.ResolveScanLimit)
		}
		if global.ServerConfig.StatsScanLimit >= 0 {
			statsScanLimit = int64(global.ServerConfig.StatsScanLimit)
		}
	}

	return &LeadService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[leadmodels.LeadDocument](coll),
		resolveScanLimit:     resolveScanLimit,
		statsScanLimit:       statsScanLimit,
	}, nil
}
