// Package core provides the business logic for XML job feed imports.
//
// This package contains all domain logic independent of any transport. It is
// used by the HTTP handlers, the jobimport CLI, and tests without modification.
//
// # Architecture
//
// The package is organized around a validate-then-assemble pipeline and the
// service that drives it:
//
//   - Validation: a [DocumentValidator] checks raw bytes against a compiled XSD
//     schema and, on success, yields a navigable [Document].
//   - Assembly: an [Assembler] maps each job element of the Document onto a
//     [JobRecord], rebuilding per-language [Translation] bundles.
//   - Service: the entry point for imports, enforcing size and concurrency
//     limits and recording outcomes in an in-memory [History].
//
// # Format Registry
//
// Formats are registered on a [Registry] at startup. Each [FormatDefinition]
// binds an identifier to its validator and assembler:
//
//	registry := core.NewRegistry()
//	registry.Register(core.FormatDefinition{
//	    Info:      core.FormatInfo{Key: "xml-hotelleriejobs", Label: "Hotellerie jobs"},
//	    Validator: validator,
//	    Assembler: &core.Assembler{Layout: layout},
//	})
//
// # Failures
//
// Every failed parse returns an [*ImportError] whose [FailureKind] tells
// malformed bytes, schema violations, incomplete jobs, and unknown formats
// apart. Only schema violations carry [Diagnostic] entries; use
// [DiagnosticsOf] to read them. [MapError] turns any error into a
// [UserMessage] with a support code.
//
// # Thread Safety
//
// Validators, assemblers, and the registry are safe for concurrent use.
// The number of imports running at once is bounded by an [ImportLimiter].
package core
