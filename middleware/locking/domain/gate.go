package domain

import (
	"errors"
	"time"
)

// Gate representa um recurso com número fixo de vagas (ex: seções críticas
// concorrentes).
//
// A semântica é: TryAcquire espera até conseguir uma vaga ou até o timeout
// estourar. Timeout <= 0 faz uma única checagem sem bloquear. Estourar o
// timeout é um resultado normal (false), nunca um erro — e não deixa rastro
// na contagem de vagas.
//
// Release devolve exatamente uma vaga adquirida antes. Devolver mais vagas
// do que foram adquiridas é erro de programação do chamador; o protocolo
// Lock/Scope da camada application garante que isso não aconteça.
type Gate interface {
	TryAcquire(timeout time.Duration) bool
	Release()
}

// ErrAcquireTimeout é retornado pela variante Acquire (que exige sucesso)
// quando nenhuma vaga ficou disponível dentro do timeout resolvido.
//
// A variante TryAcquire nunca retorna erro: o resultado vai em Scope.Acquired.
var ErrAcquireTimeout = errors.New("locking: acquire timed out")
