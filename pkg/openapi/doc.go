// Package openapi describes the page routes as an OpenAPI 3 document built
// with kin-openapi. Request body schemas are derived from the validation
// schemas, so the document and the server agree on field names and limits.
// Documents can be loaded back and used to check JSON payloads.
package openapi
