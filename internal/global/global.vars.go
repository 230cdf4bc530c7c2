package global

import (
	"leadq/config"
	"leadq/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_Leads_CollectionName chứa tên các collection trong MongoDB
type MongoDB_Leads_CollectionName struct {
	Leads string // Tên collection chứa lead documents do pipeline phân tích ghi vào
}

// Các biến toàn cục
var Validate *validator.Validate                                                       // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                                      // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                                 // Cấu hình của server
var MongoDB_ColNames MongoDB_Leads_CollectionName = *new(MongoDB_Leads_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
