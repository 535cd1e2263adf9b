// Package domain contains the core business entities and errors for the
// document question-answering engine: collections, documents, chunks,
// conversation turns, prompts and answers.
//
// The domain layer has no dependencies on infrastructure. Adapters and
// services depend on it, never the other way around.
package domain
