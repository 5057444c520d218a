// Command seed_demo creates a demo database with a small question bank.
// Usage: go run cmd/seed_demo/main.go [-db path/to/demo.db]
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mrlokans/qotd/internal/database"
	"github.com/mrlokans/qotd/internal/dataclient"
	"github.com/mrlokans/qotd/internal/dataclient/local"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	client := local.NewWithDatabase(db)
	result, err := client.CreateQuestionsBulk(context.Background(), demoQuestions())
	if err != nil {
		log.Fatalf("Failed to save questions: %v", err)
	}
	for _, e := range result.Errors {
		log.Printf("Failed to save %q: %s", e.Text, e.Error)
	}

	stats, err := client.GetStats(context.Background())
	if err != nil {
		log.Fatalf("Failed to read stats: %v", err)
	}
	log.Printf("Saved %d questions in %d categories", stats.Total, len(stats.ByCategory))
	log.Println("Demo database generated successfully!")
}

func q(level int, text string, categories ...string) dataclient.CreateQuestionInput {
	return dataclient.CreateQuestionInput{Text: text, SeriousnessLevel: level, CategoryNames: categories}
}

func demoQuestions() []dataclient.CreateQuestionInput {
	return []dataclient.CreateQuestionInput{
		// Icebreakers
		q(1, "What was the best snack you had as a kid?", "icebreaker", "food"),
		q(1, "If you could have any animal as a pet, what would it be?", "icebreaker", "fun"),
		q(1, "Which song have you had on repeat lately?", "icebreaker", "music"),
		q(1, "What is your go-to order at a coffee shop?", "icebreaker", "food"),
		q(1, "Cats, dogs, or neither?", "icebreaker", "fun"),

		// Light
		q(2, "What is the most useful thing you own?", "fun"),
		q(2, "Which city would you like to live in for a year?", "travel"),
		q(2, "What hobby would you pick up if time were no issue?", "hobbies"),
		q(2, "What is a small thing that made your week better?", "daily"),
		q(2, "Which fictional world would you visit for a day?", "books", "fun"),

		// Reflective
		q(3, "What skill are you proudest of learning?", "growth"),
		q(3, "What is a piece of advice you ignored and later regretted?", "growth"),
		q(3, "Which trip changed the way you see things?", "travel"),
		q(3, "What does a perfect Sunday look like for you?", "daily"),
		q(3, "What would you change about how your team works?", "work"),

		// Serious
		q(4, "Which book changed how you think?", "books", "growth"),
		q(4, "What do you want to be remembered for at work?", "work"),
		q(4, "When did you last change your mind about something important?", "growth"),
		q(4, "Who has had the biggest influence on your career?", "work"),
		q(4, "What does friendship mean to you now compared to ten years ago?", "relationships"),

		// Deep
		q(5, "What are you most afraid of losing?", "deep"),
		q(5, "What would you do differently if you were starting over?", "deep", "growth"),
		q(5, "What belief do you hold that most people around you do not?", "deep"),
		q(5, "What does a meaningful life look like to you?", "deep"),
		q(5, "What is something you have never told anyone at work?", "deep", "work"),
	}
}
