package main

import (
	"fmt"
	"net/http"
	"time"
)

func main() {
	http.HandleFunc("/showTela", func(w http.ResponseWriter, r *http.Request) {
		// upstream lento de propósito: segura a vaga do gateway por 2s
		time.Sleep(2 * time.Second)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<h1>Tela do Sistema</h1><p>Requisição atendida depois de 2s!</p>")
		fmt.Println("Log: Alguém acessou o endpoint /showTela")
	})
	fmt.Println("Servidor lento rodando em http://localhost:8081")
	err := http.ListenAndServe(":8081", nil)
	if err != nil {
		fmt.Printf("Erro ao subir o servidor: %s\n", err)
	}
}
