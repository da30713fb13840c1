package po

import "time"

// ActivityLogPO Notification activity row. The log is bounded: after every
// append the repository trims the table to the newest N rows, so it serves
// dashboards without growing without limit.
type ActivityLogPO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Type      string    `gorm:"size:50;index;not null"`
	OrderID   string    `gorm:"size:64;index"`
	UserID    string    `gorm:"size:64;index"`
	Message   string    `gorm:"size:500;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ActivityLogPO) TableName() string {
	return "activity_logs"
}
