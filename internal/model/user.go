package model

import "time"

// User — зарегистрированный пользователь сервиса.
// Контактные данные (Email, Phone) раскрываются другой стороне
// только после успешного прохождения контрольного вопроса.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Login    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt-хеш

	Name  string `gorm:"not null"`
	Email string `gorm:"not null"`
	Phone string

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Contact — контактный payload, который стороны получают друг о друге
// при успешном claim.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// ContactOf собирает контактный payload пользователя.
func ContactOf(u *User) Contact {
	return Contact{Name: u.Name, Email: u.Email, Phone: u.Phone}
}
