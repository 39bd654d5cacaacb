package service

import "errors"

// Validation errors surfaced to callers as 422.
var (
	ErrInvalidRoundingStrategy = errors.New("estrategia de arredondamento invalida, use NORMAL, X90 ou X99")
	ErrInvalidScope            = errors.New("escopo deve ser product ou category")
	ErrEmptyScopeKey           = errors.New("chave do escopo obrigatoria")
	ErrSalePriceRequired       = errors.New("preco de venda obrigatorio no modo price")
	ErrVersionRequired         = errors.New("versao obrigatoria para atualizar uma cotacao")
	ErrInvalidDate             = errors.New("data invalida, use AAAA-MM-DD")
	ErrInvalidCredentials      = errors.New("credenciais invalidas")
	ErrPasswordTooShort        = errors.New("a senha deve ter pelo menos 6 caracteres")
	ErrUsernameTaken           = errors.New("nome de usuario ja existe")
)

// Email delivery errors surfaced as 503.
var (
	ErrEmailDisabled    = errors.New("envio de e-mail nao configurado")
	ErrEmailUnavailable = errors.New("fila de e-mail indisponivel")
)
