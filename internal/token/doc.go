// Package token defines lexical token kinds for BSL modules.
// Invariants:
//   - Token.Text is exactly the source text covered by Token.Span.
//   - Whitespace (including line breaks) and line comments are ordinary
//     tokens of the stream, so stream indices are contiguous and tokens are
//     ordered by (line, column).
//   - Keywords are bilingual (Russian and English) and case-insensitive.
//   - Annotations (&НаСервере) and preprocessor lines (#Область ...) are single tokens.
package token
