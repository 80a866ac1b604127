package model

import "time"

// ClaimAttempt — одна попытка конкретного пользователя ответить на
// контрольный вопрос по конкретному found-объявлению.
// Ведётся в БД, а не в памяти процесса: лимит попыток должен
// выполняться и при нескольких экземплярах сервиса.
type ClaimAttempt struct {
	ID     int64  `gorm:"primaryKey"`
	ItemID string `gorm:"not null;uniqueIndex:idx_attempts_item_user_seq;type:uuid"`
	UserID int64  `gorm:"not null;uniqueIndex:idx_attempts_item_user_seq"`

	// Seq — порядковый номер попытки в паре (item, claimant), начиная с 1.
	// Уникальный индекс по (item, claimant, seq) превращает запись попытки
	// в атомарную условную вставку и не даёт превысить лимит при гонке.
	Seq int `gorm:"not null;uniqueIndex:idx_attempts_item_user_seq"`

	Success bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
