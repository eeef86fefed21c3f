package application

import (
	"sync/atomic"

	"locking-gateway/middleware/locking/domain"
)

// Scope é o token devolvido por uma tentativa de aquisição.
//
// Se Acquired() é true, o Scope carrega exatamente uma vaga do Gate e a
// devolve no primeiro Close. O uso esperado é o de recurso escopado, com a
// liberação garantida em qualquer caminho de saída:
//
//	sc, err := lock.Acquire()
//	if err != nil {
//		return err
//	}
//	defer sc.Close()
//	// seção crítica
type Scope struct {
	gate     domain.Gate
	acquired bool
	closed   atomic.Bool
}

// Acquired informa se a vaga foi realmente concedida.
func (s *Scope) Acquired() bool {
	return s != nil && s.acquired
}

// Close devolve a vaga ao Gate, no máximo uma vez na vida do Scope e
// apenas se a vaga foi concedida. Fechar de novo — ou fechar um Scope
// negado, nil, ou cujo Gate já foi encerrado — é um no-op. Close nunca
// falha.
func (s *Scope) Close() {
	if s == nil || s.closed.Swap(true) {
		return
	}
	if s.acquired && s.gate != nil {
		s.gate.Release()
	}
}
