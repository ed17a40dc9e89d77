// Package openapi describes a localized form as an OpenAPI 3 submission
// contract and reads such contracts back into form fields.
//
// Build projects a document in one language and emits a single POST
// operation whose JSON request body carries one property per field. Field
// metadata that OpenAPI has no slot for travels in x-formi18n-* extensions
// so Parse can restore the field list, including its order.
package openapi
