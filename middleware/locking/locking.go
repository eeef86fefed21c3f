package locking

import (
	"time"

	"locking-gateway/middleware/locking/application"
	"locking-gateway/middleware/locking/domain"
	"locking-gateway/middleware/locking/infra"
)

// ErrAcquireTimeout é o erro das variantes Acquire/AcquireFor.
// Comparável com errors.Is.
var ErrAcquireTimeout = domain.ErrAcquireTimeout

// New cria um Lock dono de um gate novo com capacity vagas (capacity >= 1)
// e o timeout padrão informado. Fechar o Lock torna o gate inutilizável.
func New(defaultTimeout time.Duration, capacity int) *application.Lock {
	return application.NewOwnedLock(infra.NewChanGate(capacity), defaultTimeout)
}

// NewMutex cria um Lock de vaga única: exclusão mútua com timeout.
func NewMutex(defaultTimeout time.Duration) *application.Lock {
	return New(defaultTimeout, 1)
}

// NewShared cria um Lock sobre um gate de terceiros. Fechar este Lock não
// mexe no gate, que continua utilizável por qualquer outro Lock.
func NewShared(g domain.Gate, defaultTimeout time.Duration) *application.Lock {
	return application.NewSharedLock(g, defaultTimeout)
}
