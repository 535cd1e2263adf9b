// Package driving provides interfaces for external actors (primary/inbound
// ports). The CLI and tests drive the engine through these.
package driving
