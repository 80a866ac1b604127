package model

import "time"

// Типы уведомлений.
const (
	NotificationMatch = "match"
	NotificationClaim = "claim"
)

// Notification — уведомление пользователю. Доставка fire-and-forget:
// ошибки записи логируются и не влияют на основную операцию.
type Notification struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"`

	Type    string `gorm:"not null"` // match | claim
	Title   string `gorm:"not null"`
	Message string `gorm:"not null"`

	RelatedItemID string `gorm:"type:uuid"`

	Read bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
