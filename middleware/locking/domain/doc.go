// Package domain define contratos e tipos de domínio para o gate de
// concorrência (vagas limitadas, aquisição com timeout).
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar o protocolo
// de aquisição/liberação de detalhes de infraestrutura.
package domain
