package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var singleCharTokens = map[rune]Code{
	'+': Plus,
	'-': Minus,
	'*': Times,
	'/': Divide,
	'(': LParen,
	')': RParen,
}

// Lex splits s into tokens. Whitespace, including newlines, separates tokens
// and is otherwise ignored. The returned tokens do not include an End token.
func Lex(s string) ([]Token, error) {
	var tokens []Token

	lines := strings.Split(s, "\n")
	for lineIdx, line := range lines {
		runes := []rune(line)

		for i := 0; i < len(runes); {
			ch := runes[i]

			if unicode.IsSpace(ch) {
				i++
				continue
			}

			tok := Token{line: lineIdx + 1, pos: i + 1, fullLine: line}

			if code, ok := singleCharTokens[ch]; ok {
				tok.Code = code
				tok.Lexeme = string(ch)
				tokens = append(tokens, tok)
				i++
				continue
			}

			if ch >= '0' && ch <= '9' {
				start := i
				for i < len(runes) && runes[i] >= '0' && runes[i] <= '9' {
					i++
				}

				tok.Code = Num
				tok.Lexeme = string(runes[start:i])

				v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
				if err != nil {
					msg := fmt.Sprintf("bad number %q", tok.Lexeme)
					if errors.Is(err, strconv.ErrRange) {
						msg = fmt.Sprintf("number %s is too large", tok.Lexeme)
					}
					return nil, &LexError{position: positionOf(tok), message: msg}
				}
				tok.Value = v

				tokens = append(tokens, tok)
				continue
			}

			return nil, &LexError{position: positionOf(tok), message: fmt.Sprintf("unexpected character %q", ch)}
		}
	}

	return tokens, nil
}
