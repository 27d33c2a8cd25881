package service

import "github.com/rookgm/cargolabel/internal/models"

type TokenService interface {
	CreateToken(op *models.Operator) (string, error)
	VerifyToken(tokenString string) (*models.TokenPayload, error)
}
