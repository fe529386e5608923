// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ChunkStore: Chunk persistence (append-only)
//   - EmbeddingService: Generates vector embeddings
//   - CompletionService: Text completion for classification and responses
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the corresponding handlers degrade to advisory
// messages:
//
//   - CalendarService: Event listing for the calendar handler
//   - MailService: Draft/send for the email handler
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
