// Package mcptools registers the MCP tools and prompts the server exposes.
//
// Every tool follows the same shape: a jsonschema-tagged input struct, a
// call into one service method, and a JSON-formatted result with "next
// steps" hints pointing the assistant at likely follow-up tools. Failures
// come back as IsError results carrying the redacted, classified error
// payload, never a raw transport error.
package mcptools
