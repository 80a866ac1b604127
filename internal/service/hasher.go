package service

import "golang.org/x/crypto/bcrypt"

// Hasher — одностороннее хеширование секретов (пароли, ответы на
// контрольный вопрос). Сравнение обязано быть устойчивым к таймингу;
// секрет в открытом виде нигде не хранится.
type Hasher interface {
	Hash(secret string) (string, error)
	Compare(hash, secret string) bool
}

// BcryptHasher — реализация на bcrypt, как и для паролей пользователей.
type BcryptHasher struct{}

func (BcryptHasher) Hash(secret string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare — bcrypt сравнивает за константное время относительно секрета.
func (BcryptHasher) Compare(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
