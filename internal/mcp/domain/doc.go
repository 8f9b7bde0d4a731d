// Package domain defines the PartsBox MCP tool schemas and handlers.
//
// Every list tool shares one pipeline: validate limit/offset, resolve the
// full record set through the pagination cache (fetching from the PartsBox
// API and applying the optional JMESPath query only on a cache miss), slice
// the requested page, and return the uniform Page shape. Single-record and
// write tools call the API directly and report domain failures inside their
// result payloads rather than as protocol errors.
package domain
