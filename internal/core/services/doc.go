// Package services implements the core use cases of the question-answering
// engine: document ingestion, tenant-scoped retrieval, prompt assembly,
// answer generation with fallback, and the engine facade that ties them to
// the response cache.
package services
