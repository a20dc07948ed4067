package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims Клеймы access-токена. Выпуском токенов занимается внешняя
// система аутентификации, здесь токен только проверяется.
// ID клейма — идентификатор пользователя
type UserClaims struct {
	jwt.RegisteredClaims
}
