package service

import (
	"errors"

	"gorm.io/gorm"
)

// Сервисная таксономия ошибок. Хендлеры мапят их на HTTP-коды,
// всё остальное считается инфраструктурной ошибкой (500).
var (
	// ErrValidation — некорректные входные данные (400).
	ErrValidation = errors.New("validation failed")
	// ErrNotFound — объект не существует (404).
	ErrNotFound = errors.New("not found")
	// ErrForbidden — операция разрешена только владельцу (403).
	ErrForbidden = errors.New("forbidden")
	// ErrLoginTaken — логин уже занят (409).
	ErrLoginTaken = errors.New("login already taken")
	// ErrInvalidCredentials — неверный логин или пароль (401).
	ErrInvalidCredentials = errors.New("invalid login or password")
)

// isNotFound — запись отсутствует в хранилище.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
