// gestorctl herramienta de soporte del gestor de notas: migraciones, tokens de prueba,
// informes en PDF desde la línea de comandos e importación de notas desde CSV.
//
// Uso: go run ./cmd/gestorctl <comando> [flags]
package main

func main() {
	Execute()
}
