// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - DataClient: the question bank as seen by the CLI (internal/dataclient/client.go),
//     implemented by local.Client (SQLite) and remote.Client (HTTP API)
//   - RemoteResolver / RemoteConfigurator: where the remote comes from and how the
//     operator is asked for one (internal/dataclient/selector.go)
//
// ## Server Interfaces
//
//   - HealthChecker: database reachability (internal/http/stores.go)
//   - DailyPicker: question of the day (internal/http/stores.go)
//   - DayPicker: what the daily scheduler calls (internal/scheduler/daily_pick.go)
//
// ## Background Task Interfaces
//
//   - OrphanCategoriesCleaner (internal/tasks/cleanup_categories.go)
//   - NormsBackfiller (internal/tasks/backfill_norms.go)
//
// # Adding a New Backend
//
// To serve the question bank from another store:
//
//  1. Implement DataClient in internal/dataclient/<name>/
//
//     type Client struct { ... }
//
//     func (c *Client) CreateQuestion(ctx context.Context, input dataclient.CreateQuestionInput) (*entities.Question, error)
//     // ...
//
//     var _ dataclient.DataClient = (*Client)(nil)
//
//  2. Add a constructor to dataclient.Backends in internal/cli/app.go
//
// # Adding a New Background Task
//
//  1. Define the task type and a narrow store interface in internal/tasks/
//
//  2. Register its queue in tasks.Client and enqueue it where needed
//
//  3. Add a compile-time check here:
//
//     var _ tasks.SomeStore = (*someRepo.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
