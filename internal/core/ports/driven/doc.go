// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding services, LLM providers, the tenant
// vector index, the collection registry and the answer cache.
package driven
