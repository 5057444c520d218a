// Package importers reads question files into create inputs for the question bank.
//
// Three formats are accepted, chosen by file extension:
//
//   - .json: an array of records, or an object with a "questions" array
//   - .yaml / .yml: the same shapes as JSON
//   - anything else: plain text, one question per line; blank lines and
//     lines starting with '#' are skipped
//
// A record looks like
//
//	{"text": "What would you do with a free day?", "seriousnessLevel": 2, "categories": ["fun"]}
//
// Options fill in the level and categories for records that do not set them.
// The output of exporters.JSON and exporters.YAML can be imported unchanged.
package importers
