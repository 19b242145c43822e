// Package mcp provides an MCP (Model Context Protocol) server adapter
// for noteprep. It lets AI assistants pull meeting-relevant notes while
// drafting briefs, without going through the CLI.
package mcp

import "errors"

// ErrMissingContextService is returned when the context service is not provided.
var ErrMissingContextService = errors.New("mcp: context service is required")
