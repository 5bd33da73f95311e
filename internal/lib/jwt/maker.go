// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Токены подписываются секретным ключом процесса и нигде не хранятся на сервере:
// валидность определяется только подписью и сроком действия. Смена секрета
// инвалидирует все выданные токены (принудительный разлогин).
package jwt

import "time"

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken создаёт токен с email и именем пользователя и заданным сроком жизни.
	GenerateToken(email, name string, ttl time.Duration) (string, error)
	// ParseToken возвращает *CustomClaims, если токен корректен и не истёк.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа HS256.
type MakerImpl struct {
	secretKey string // Секретный ключ для подписи токенов.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа.
func NewJWTMaker(secretKey string) *MakerImpl {
	return &MakerImpl{secretKey: secretKey}
}
