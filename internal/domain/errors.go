package domain

import "errors"

var (
	ErrNotFound           = errors.New("registro não encontrado")
	ErrInvalidRequest     = errors.New("requisição inválida")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrDuplicateEmail     = errors.New("e-mail já cadastrado")
	ErrLetterAdopted      = errors.New("cartinha já adotada")
)
