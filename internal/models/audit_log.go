package models

import "time"

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionDeliver AuditAction = "deliver"
	AuditActionOven    AuditAction = "oven"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Which day ledger? ("DD-MM-YYYY")
	LedgerKey string `gorm:"size:32;index" json:"ledger_key"`

	// Position in the ledger after the mutation, -1 for ledger-level changes (oven stock)
	OrderIndex int    `json:"order_index"`
	OrderID    string `gorm:"size:36;index" json:"order_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// Before and after state as JSON
	BeforeData string `gorm:"type:text" json:"before_data"`
	AfterData  string `gorm:"type:text" json:"after_data"`
}
