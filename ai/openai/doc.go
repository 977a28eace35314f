// Package openai implements the ai service interfaces against
// OpenAI-compatible HTTP APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// All services share one ai.Config; embeddings and generation may point at
// different hosts. Clients are built on langchaingo and require no
// explicit cleanup.
package openai
