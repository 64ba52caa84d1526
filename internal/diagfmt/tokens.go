package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"bslint/internal/source"
	"bslint/internal/token"
)

// TokenOutput is one token of `bslint tokenize --format json`.
type TokenOutput struct {
	Index int          `json:"index"`
	Kind  string       `json:"kind"`
	Text  string       `json:"text,omitempty"`
	Range source.Range `json:"range"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате, позиции с 1.
// Пробельные токены пропускаются, если trivia == false.
func FormatTokensPretty(w io.Writer, tokens []token.Token, trivia bool) error {
	for _, tok := range tokens {
		if !trivia && tok.Kind == token.WhiteSpace {
			continue
		}
		if _, err := fmt.Fprintf(w, "%4d: %-14s %q at %d:%d-%d:%d\n",
			tok.Index, tok.Kind.String(), tok.Text,
			tok.Pos.Line+1, tok.Pos.Character+1,
			tok.End.Line+1, tok.End.Character+1); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, trivia bool) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		if !trivia && tok.Kind == token.WhiteSpace {
			continue
		}
		output = append(output, TokenOutput{
			Index: tok.Index,
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Range: source.Range{Start: tok.Pos, End: tok.End},
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
