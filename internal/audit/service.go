package audit

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"pollos-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LogOptions struct {
	LedgerKey   string
	OrderIndex  int
	OrderID     string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Service records order mutations. Without a database the trail is kept in
// memory for the life of the process.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger

	mu     sync.Mutex
	mem    []models.AuditLog
	nextID uint
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

func encode(v any) string {
	// "null" keeps the column valid JSON when there is no state
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func (s *Service) WriteLog(opts LogOptions) error {
	entry := models.AuditLog{
		LedgerKey:   opts.LedgerKey,
		OrderIndex:  opts.OrderIndex,
		OrderID:     opts.OrderID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  encode(opts.Before),
		AfterData:   encode(opts.After),
	}

	s.logger.Debug("audit",
		zap.String("ledger", entry.LedgerKey),
		zap.String("action", string(entry.Action)),
		zap.String("description", entry.Description),
	)

	if s.db == nil {
		s.mu.Lock()
		s.nextID++
		entry.ID = s.nextID
		entry.CreatedAt = time.Now()
		s.mem = append(s.mem, entry)
		s.mu.Unlock()
		return nil
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log could not be saved: %w", err)
	}
	return nil
}

// List returns the newest entries first. An empty ledgerKey lists every day.
func (s *Service) List(ledgerKey string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]models.AuditLog, 0, limit)
		for _, e := range slices.Backward(s.mem) {
			if ledgerKey != "" && e.LedgerKey != ledgerKey {
				continue
			}
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
		return out, nil
	}

	q := s.db.Model(&models.AuditLog{})
	if ledgerKey != "" {
		q = q.Where("ledger_key = ?", ledgerKey)
	}
	var logs []models.AuditLog
	if err := q.Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("audit logs could not be listed: %w", err)
	}
	return logs, nil
}
