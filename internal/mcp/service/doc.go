// Package service assembles the PartsBox MCP server: it wires the API
// client, pagination cache and query engine into tool registrations and
// serves the result over stdio or streamable HTTP.
package service
