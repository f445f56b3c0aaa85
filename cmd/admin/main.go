package main

import (
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/levaetras/cmd/admin/internal/command"
)

func main() {
	_ = godotenv.Load()

	command.Execute()
}
