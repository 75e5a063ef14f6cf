package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"prepgogo/backend/internal/config"
	"prepgogo/backend/internal/models"
	"prepgogo/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewService(db, nil) // No redis needed for the seed CLI

	if err := db.AutoMigrate(&models.Question{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: seed <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "import":
		if len(os.Args) != 3 {
			fmt.Println("Usage: seed import <questions.json>")
			os.Exit(1)
		}
		count, err := importQuestions(storageSvc, os.Args[2])
		if err != nil {
			log.Fatalf("Error importing questions: %v", err)
		}
		fmt.Printf("Imported %d questions.\n", count)
	case "add":
		if len(os.Args) < 5 {
			fmt.Println("Usage: seed add <topic> <difficulty> <title> [description]")
			os.Exit(1)
		}
		q := &models.Question{
			Topic:      os.Args[2],
			Difficulty: os.Args[3],
			Title:      os.Args[4],
		}
		if len(os.Args) > 5 {
			q.Description = os.Args[5]
		}
		if err := storageSvc.SaveQuestion(q); err != nil {
			log.Fatalf("Error adding question: %v", err)
		}
		fmt.Printf("Question %q added with id %s.\n", q.Title, q.ID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func importQuestions(s storage.Storage, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return 0, err
	}

	for i := range questions {
		if err := s.SaveQuestion(&questions[i]); err != nil {
			return i, err
		}
	}
	return len(questions), nil
}
