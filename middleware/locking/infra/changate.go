package infra

import (
	"fmt"
	"sync/atomic"
	"time"

	"locking-gateway/middleware/locking/domain"
)

// ChanGate é um gate de vagas com capacidade fixa, baseado em channel
// bufferizado: mandar no channel adquire, receber devolve. O buffer garante
// o invariante 0 <= ocupadas <= capacidade por construção.
//
// A ordem de atendimento entre goroutines esperando não é FIFO garantido:
// vale a seleção do runtime sobre o channel ("barging"). A única garantia
// é que, ao devolver uma vaga com esperas pendentes, exatamente uma delas
// acorda com a vaga.
type ChanGate struct {
	slots  chan struct{}
	done   chan struct{}
	closed atomic.Bool
}

var _ domain.Gate = (*ChanGate)(nil)

// NewChanGate cria um gate com capacity vagas. capacity precisa ser >= 1.
func NewChanGate(capacity int) *ChanGate {
	if capacity < 1 {
		panic("locking: ChanGate capacity must be >= 1")
	}
	return &ChanGate{
		slots: make(chan struct{}, capacity),
		done:  make(chan struct{}),
	}
}

// TryAcquire implementa domain.Gate.
//
// timeout <= 0 faz uma única checagem sem bloquear. Caso contrário a
// goroutine espera até conseguir vaga, até o timeout estourar ou até o
// gate ser encerrado — nos dois últimos casos retorna false e a contagem
// fica exatamente como se a espera nunca tivesse acontecido.
func (g *ChanGate) TryAcquire(timeout time.Duration) bool {
	if g.closed.Load() {
		return false
	}

	if timeout <= 0 {
		select {
		case g.slots <- struct{}{}:
			return true
		default:
			return false
		}
	}

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case g.slots <- struct{}{}:
		return true
	case <-t.C:
		return false
	case <-g.done:
		return false
	}
}

// Release implementa domain.Gate, devolvendo uma vaga.
//
// Devolver mais vagas do que foram adquiridas é erro de programação e causa
// panic; o protocolo Lock/Scope nunca chega aqui nessa condição. Depois de
// Close, Release vira no-op, para um Scope atrasado poder fechar sem quebrar.
func (g *ChanGate) Release() {
	if g.closed.Load() {
		return
	}
	select {
	case <-g.slots:
	default:
		panic("locking: ChanGate.Release without a matching TryAcquire")
	}
}

// Close torna o gate inutilizável: aquisições passam a falhar na hora e
// goroutines esperando acordam com resultado negativo. Idempotente e nunca
// retorna erro.
func (g *ChanGate) Close() error {
	if !g.closed.Swap(true) {
		close(g.done)
	}
	return nil
}

// Capacity retorna o número total de vagas.
func (g *ChanGate) Capacity() int { return cap(g.slots) }

// Available retorna o número de vagas livres neste instante.
func (g *ChanGate) Available() int { return cap(g.slots) - len(g.slots) }

// String facilita log/debug: "ChanGate(ocupadas/capacidade)".
func (g *ChanGate) String() string {
	return fmt.Sprintf("ChanGate(%d/%d)", len(g.slots), cap(g.slots))
}
