// Package application contém o protocolo de aquisição e liberação de vagas
// (Lock e Scope) sobre o contrato domain.Gate.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Lock.TryAcquire() retorna um Scope (vaga concedida ou negada);
// Lock.Acquire() retorna erro quando o timeout estoura.
package application
