// Package agentready audits a single fetched web page and produces a
// structured, numerically-scored assessment of how well the page's content
// can be discovered, parsed, and correctly understood by automated
// content-consumption agents (crawlers, retrieval pipelines, LLM readers).
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package agentready
