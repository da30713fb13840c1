package mysql

import (
	"context"
	"time"

	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence"
	"github.com/Gift5848/gethub222-sub001/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// DefaultActivityLogLimit is how many notification activity rows are kept
// when no limit is configured.
const DefaultActivityLogLimit = 500

// ActivityEntry is one row of the notification activity log.
type ActivityEntry struct {
	Type      string
	OrderID   string
	UserID    string
	Message   string
	CreatedAt time.Time
}

// ActivityLogRepository persists the bounded notification activity log.
// Every append trims the table to the newest `limit` rows so the log serves
// dashboards without unbounded growth.
type ActivityLogRepository struct {
	db    *gorm.DB
	limit int
}

func NewActivityLogRepository(db *gorm.DB, limit int) *ActivityLogRepository {
	if limit <= 0 {
		limit = DefaultActivityLogLimit
	}
	return &ActivityLogRepository{db: db, limit: limit}
}

func (r *ActivityLogRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Append records an activity row and trims the log to the configured bound.
func (r *ActivityLogRepository) Append(ctx context.Context, entry ActivityEntry) error {
	db := r.getDB(ctx)

	row := po.ActivityLogPO{
		Type:      entry.Type,
		OrderID:   entry.OrderID,
		UserID:    entry.UserID,
		Message:   entry.Message,
		CreatedAt: time.Now(),
	}
	if !entry.CreatedAt.IsZero() {
		row.CreatedAt = entry.CreatedAt
	}
	if err := db.Create(&row).Error; err != nil {
		return err
	}

	return r.trim(db)
}

// trim deletes everything older than the newest `limit` rows. MySQL cannot
// reference the target table in a delete subquery directly, so the cutoff
// id is read first.
func (r *ActivityLogRepository) trim(db *gorm.DB) error {
	var cutoff po.ActivityLogPO
	err := db.Model(&po.ActivityLogPO{}).
		Order("id DESC").
		Offset(r.limit - 1).
		Limit(1).
		Take(&cutoff).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil // fewer rows than the bound
		}
		return err
	}

	return db.Where("id < ?", cutoff.ID).Delete(&po.ActivityLogPO{}).Error
}

// Record is the notification fan-out's convenience entry point.
func (r *ActivityLogRepository) Record(ctx context.Context, entryType, orderID, userID, message string) error {
	return r.Append(ctx, ActivityEntry{
		Type:    entryType,
		OrderID: orderID,
		UserID:  userID,
		Message: message,
	})
}

// Recent returns the newest activity rows, newest first.
func (r *ActivityLogRepository) Recent(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 || limit > r.limit {
		limit = r.limit
	}

	var rows []po.ActivityLogPO
	if err := r.getDB(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, len(rows))
	for i, row := range rows {
		entries[i] = ActivityEntry{
			Type:      row.Type,
			OrderID:   row.OrderID,
			UserID:    row.UserID,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		}
	}
	return entries, nil
}
