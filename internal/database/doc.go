// Package database provides the data access layer for the question bank.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── questions/       # Question CRUD, filters, duplicate lookup, stats
//	├── categories/      # Category get-or-create, counts, orphan cleanup
//	├── apikeys/         # Hashed API keys for the HTTP API
//	└── picks/           # Question-of-the-day history
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase("./qotd.db")
//
//	questionsRepo := questions.NewRepository(db.DB)
//	categoriesRepo := categories.NewRepository(db.DB)
//
//	q, err := questionsRepo.GetByID(ctx, 42)
//	cats, err := categoriesRepo.ListWithCount(ctx)
//
// Repositories return gorm errors unchanged (gorm.ErrRecordNotFound in
// particular); translating them into the data client error taxonomy is the
// job of internal/dataclient/local.
package database
