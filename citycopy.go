// Package citycopy serves localized marketing copy for a dog-training
// business. For each locality it either returns content previously
// generated and cached, or gathers local context from a web search
// provider, asks a generative model for a structured content bundle,
// and caches the result.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, gin/).
package citycopy
