// Package adapters bridges infrastructure services to the ports use cases declare.
package adapters

import (
	userUsecases "cardly/internal/application/user/usecases"
	"cardly/internal/infrastructure/auth"
	"cardly/internal/shared/authorization"
)

// JWTTokenIssuer issues login tokens with the JWT service.
type JWTTokenIssuer struct {
	jwt *auth.JWTService
}

func NewJWTTokenIssuer(jwt *auth.JWTService) *JWTTokenIssuer {
	return &JWTTokenIssuer{jwt: jwt}
}

func (a *JWTTokenIssuer) Issue(userID uint, role authorization.UserRole) (*userUsecases.AccessToken, error) {
	token, err := a.jwt.Generate(userID, role)
	if err != nil {
		return nil, err
	}
	return &userUsecases.AccessToken{Token: token.Token, ExpiresIn: token.ExpiresIn}, nil
}
