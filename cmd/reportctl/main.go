package main

import "github.com/kevin-luna/cursito-api/internal/cli"

func main() {
	cli.Execute()
}
