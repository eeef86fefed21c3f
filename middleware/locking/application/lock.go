package application

import (
	"io"
	"sync/atomic"
	"time"

	"locking-gateway/middleware/locking/domain"
)

// gateHandle distingue as duas formas de um Lock segurar um Gate:
// dono exclusivo (encerra o Gate junto com o Lock) ou compartilhado
// (nunca encerra; o ciclo de vida é de quem criou o Gate).
//
// Duas variantes explícitas em vez de um flag "ownsGate" deixam a lógica
// de teardown exaustiva.
type gateHandle interface {
	gate() domain.Gate
	close()
}

type ownedGate struct{ g domain.Gate }

func (h ownedGate) gate() domain.Gate { return h.g }

func (h ownedGate) close() {
	if c, ok := h.g.(io.Closer); ok {
		_ = c.Close()
	}
}

type sharedGate struct{ g domain.Gate }

func (h sharedGate) gate() domain.Gate { return h.g }
func (h sharedGate) close()            {}

// Lock é a fábrica de aquisições sobre um Gate, com timeout padrão por
// chamada.
//
// Vários Locks podem compartilhar o mesmo Gate; nesse caso eles impõem um
// teto de concorrência combinado. Cada Lock mantém seu próprio timeout
// padrão; compartilhar o Gate não compartilha configuração.
type Lock struct {
	handle         gateHandle
	defaultTimeout time.Duration
	closed         atomic.Bool
}

// NewOwnedLock cria um Lock dono exclusivo de g: Close encerra também o
// Gate (se ele implementar io.Closer), tornando-o inutilizável.
func NewOwnedLock(g domain.Gate, defaultTimeout time.Duration) *Lock {
	return &Lock{handle: ownedGate{g: g}, defaultTimeout: defaultTimeout}
}

// NewSharedLock cria um Lock sobre um Gate de terceiros: Close nunca mexe
// no Gate, que continua utilizável por qualquer outro Lock que o referencie.
func NewSharedLock(g domain.Gate, defaultTimeout time.Duration) *Lock {
	return &Lock{handle: sharedGate{g: g}, defaultTimeout: defaultTimeout}
}

// DefaultTimeout retorna o timeout usado quando a chamada não passa um
// timeout explícito.
func (l *Lock) DefaultTimeout() time.Duration { return l.defaultTimeout }

// TryAcquire tenta adquirir uma vaga usando o timeout padrão do Lock.
// Nunca retorna erro: o chamador decide pelo Scope.Acquired.
func (l *Lock) TryAcquire() *Scope {
	return l.TryAcquireFor(l.defaultTimeout)
}

// TryAcquireFor tenta adquirir uma vaga esperando no máximo timeout.
//
// Não existe modo de espera infinita: timeout <= 0 é uma checagem única
// sem bloqueio, e quem quiser esperar "para sempre" passa um timeout
// explicitamente grande.
func (l *Lock) TryAcquireFor(timeout time.Duration) *Scope {
	if l.closed.Load() {
		return &Scope{}
	}
	g := l.handle.gate()
	if g.TryAcquire(timeout) {
		return &Scope{gate: g, acquired: true}
	}
	return &Scope{}
}

// Acquire é a variante "sucesso ou erro" de TryAcquire: usa o timeout
// padrão e retorna domain.ErrAcquireTimeout se a vaga não sair.
func (l *Lock) Acquire() (*Scope, error) {
	return l.AcquireFor(l.defaultTimeout)
}

// AcquireFor é a variante "sucesso ou erro" de TryAcquireFor.
func (l *Lock) AcquireFor(timeout time.Duration) (*Scope, error) {
	sc := l.TryAcquireFor(timeout)
	if !sc.Acquired() {
		// nada foi concedido; fechar aqui é só disciplina de ciclo de vida
		sc.Close()
		return nil, domain.ErrAcquireTimeout
	}
	return sc, nil
}

// Close encerra o Lock. Para o Lock dono, encerra também o Gate; para o
// compartilhado, não faz nada com o Gate. Idempotente e nunca falha,
// inclusive quando o Gate já se foi.
func (l *Lock) Close() {
	if l.closed.Swap(true) {
		return
	}
	l.handle.close()
}
