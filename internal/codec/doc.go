// Package codec converts a Document to and from its export form.
//
// Export produces canonical JSON: object keys sorted by UTF-16 code units,
// no HTML escaping, two-space indentation and a trailing newline. String
// contents are written exactly as stored. Exporting the same document twice yields identical bytes.
//
// Import validates a payload against an embedded CUE schema before decoding
// it, then rejects duplicate ids and tasks whose project is absent. Every
// failure is a *model.ImportFormatError.
package codec
