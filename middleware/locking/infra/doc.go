// Package infra contém implementações concretas (infraestrutura) para os
// contratos definidos no pacote domain.
//
// Exemplos:
//   - ChanGate: gate de vagas baseado em channel bufferizado
//   - MemoryStatsStore / RedisStatsStore / PromStatsStore: persistência de
//     estatísticas de aquisição
package infra
