// Package locking fornece um primitivo de exclusão mútua / limite de
// concorrência com timeout, e o adapter HTTP (net/http) correspondente.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: o protocolo Lock/Scope (timeout padrão, try vs must,
//     liberação escopada e idempotente) sem net/http
//   - infra: implementações concretas (gate por channel, stores de
//     estatística em memória/Redis/Prometheus)
//   - locking (este pacote): construtores de conveniência + middleware
//     HTTP + tradução para status/headers
//
// Uso como biblioteca:
//
//	lock := locking.New(100*time.Millisecond, 8) // 8 vagas
//	defer lock.Close()
//
//	sc := lock.TryAcquire()
//	if !sc.Acquired() {
//		// não entrou na seção crítica; seguir outro caminho
//	}
//	defer sc.Close()
//
// Vários Locks podem compartilhar o mesmo Gate (locking.NewShared) e então
// impõem um teto combinado; nesse caso quem criou o Gate é responsável por
// encerrá-lo.
package locking
