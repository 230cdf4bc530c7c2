// Package router đăng ký các route thuộc domain leads.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	leadshdl "leadq/internal/api/leads/handler"
	apirouter "leadq/internal/api/router"
)

// Register đăng ký tất cả route lead lên v1.
func Register(v1 fiber.Router, _ *apirouter.Router) error {
	leadHandler, err := leadshdl.NewLeadHandler()
	if err != nil {
		return fmt.Errorf("create lead handler: %w", err)
	}

	// /stats phải đăng ký trước /:sessionId để không bị route param nuốt mất
	leads := v1.Group("/leads")
	leads.Get("/", leadHandler.HandleListLeads)
	leads.Get("/stats", leadHandler.HandleGetStats)
	leads.Get("/:sessionId", leadHandler.HandleGetLead)

	system := v1.Group("/system")
	system.Get("/health", leadHandler.HandleHealth)

	return nil
}
