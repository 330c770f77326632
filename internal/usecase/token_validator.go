package usecase

import (
	"school-reservations/internal/domain/user"
	"school-reservations/internal/pkg/jwt"
	"school-reservations/internal/usecase/shared"
)

// TokenValidator turns a bearer token into the actor it was issued to.
type TokenValidator interface {
	ValidateToken(tokenString string) (shared.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (shared.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return shared.Actor{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return shared.Actor{}, err
	}
	if role.RequiresTeacher() && claims.TeacherID == nil {
		return shared.Actor{}, user.ErrTeacherLinkRequired
	}

	return shared.Actor{
		UserID:    claims.UserID,
		Role:      role,
		TeacherID: claims.TeacherID,
	}, nil
}
