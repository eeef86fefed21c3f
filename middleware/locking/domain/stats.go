package domain

import (
	"context"
	"time"
)

// AcquireEvent representa o resultado de uma tentativa de aquisição.
//
// Lock é o nome lógico do lock (ex: "proxy", "uploads"), não uma chave por
// cliente. Cuidado com cardinalidade: o nome deve ser estável e de baixo
// volume para não explodir o número de séries/chaves em uma base como
// Redis/Prometheus.
type AcquireEvent struct {
	Lock    string
	Granted bool

	// Waited é quanto tempo a tentativa esperou até ser atendida ou negada.
	Waited time.Duration

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas de aquisição.
//
// Implementações podem armazenar em memória, Redis, Prometheus, etc.
// Quem registra deve tratar erro como best-effort (não derrubar o caminho
// crítico por falha de estatística).
type StatsStore interface {
	Record(ctx context.Context, ev AcquireEvent) error
}
