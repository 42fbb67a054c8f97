package entity

import "errors"

// ErrLeadNotFound distingue "não existe" de falha de infraestrutura.
// Quem chama decide: para lookup é caminho normal, para update/delete é 404.
var ErrLeadNotFound = errors.New("lead não encontrado")
