package model

import "time"

// Match — зафиксированное совпадение между lost- и found-объявлениями.
// Запись историческая: после создания меняется только флаг Notified.
// При удалении объявлений записи Match не удаляются.
type Match struct {
	ID string `gorm:"primaryKey;type:uuid"`

	LostItemID  string `gorm:"not null;index;type:uuid"`
	FoundItemID string `gorm:"not null;index;type:uuid"`

	Score float64 `gorm:"not null"`

	// Разбивка итогового счёта по сигналам
	CategoryMatch  bool    `gorm:"not null"`
	ColorMatch     bool    `gorm:"not null"`
	LocationMatch  bool    `gorm:"not null"`
	DateProximity  float64 `gorm:"not null"`
	TextSimilarity float64 `gorm:"not null"`

	Notified bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
