package model

import "time"

// Вид объявления: потерял или нашёл.
const (
	KindLost  = "lost"
	KindFound = "found"
)

// Статусы объявления.
const (
	StatusActive  = "active"
	StatusClaimed = "claimed"
	StatusClosed  = "closed"
)

// Categories — закрытый перечень категорий предметов.
var Categories = []string{
	"Electronics",
	"Books",
	"Accessories",
	"Clothing",
	"ID Cards",
	"Keys",
	"Other",
}

// ValidCategory проверяет, что категория входит в перечень.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Item — объявление о потерянном или найденном предмете.
// Владелец не меняется за всё время жизни записи.
type Item struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"` // ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Kind        string `gorm:"not null;index"` // lost | found
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`
	Category    string `gorm:"not null;index"`
	Color       string
	Location    string    `gorm:"not null"`
	OccurredAt  time.Time `gorm:"not null"` // когда предмет был потерян/найден

	Status string `gorm:"not null;default:active;index"`

	// Контрольный вопрос задаёт нашедший; хеш ответа хранится только
	// для found-объявлений. Либо оба поля заполнены, либо оба пусты.
	ChallengeQuestion string
	AnswerHash        string `json:"-"`

	ClaimAttempts []ClaimAttempt `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasChallenge — у объявления установлен контрольный вопрос с ответом.
func (i *Item) HasChallenge() bool {
	return i.ChallengeQuestion != "" && i.AnswerHash != ""
}
