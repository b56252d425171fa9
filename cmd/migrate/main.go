package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/Denjimex/mi-proyecto-inventario/config"
	"github.com/Denjimex/mi-proyecto-inventario/internal/pkg/database"
)

func main() {
	// Cargar el archivo .env
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Aviso: archivo .env no encontrado. Cargando configuración solo del entorno del sistema: %v", err)
	}

	cfg := config.LoadConfig()

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", "./sql", "directorio con los archivos de migración")
	flag.Parse()

	// Conectar a la base de datos
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("goose: falla al conectar a la BD: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: falla al cerrar la BD: %v\n", err)
		}
	}()

	goose.SetLogger(goose.NopLogger())

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"} // 'up' por defecto si no se indica comando
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s éxito\n", command)
}
