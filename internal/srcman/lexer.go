package srcman

// TokenKind enumerates the raw lexical kinds the range resolver cares
// about. It is intentionally small: the core only needs enough
// lexical knowledge to extend name spans across operators and
// destructor tildes, never a full C++ token grammar.
type TokenKind int

const (
	TokKindUnknown TokenKind = iota
	TokIdentifier
	TokKwOperator
	TokKwCompl // alternate spelling for '~'
	TokTilde
	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokPunctuation // any other single operator-symbol token (+, -, ==, …)
)

// alternateTokens maps C++'s alternate-spelling keywords to the
// canonical punctuation they stand in for, mirroring the identifier
// table remapping IndexerASTHooks.cc relies on for ConsumeToken.
var alternateTokens = map[string]TokenKind{
	"compl":  TokKwCompl,
	"and":    TokPunctuation,
	"or":     TokPunctuation,
	"not":    TokPunctuation,
	"bitand": TokPunctuation,
	"bitor":  TokPunctuation,
	"xor":    TokPunctuation,
	"not_eq": TokPunctuation,
	"and_eq": TokPunctuation,
	"or_eq":  TokPunctuation,
	"xor_eq": TokPunctuation,
}

// CanonicalKind maps a raw identifier-like spelling to its canonical
// token kind via the alternate-token table, falling back to
// TokIdentifier for anything not in the table.
func CanonicalKind(spelling string) TokenKind {
	if k, ok := alternateTokens[spelling]; ok {
		return k
	}
	return TokIdentifier
}

// Token is a raw lexical token: its kind, spelling, and source span.
// Tokens returned by Lexer are never macro-expanded — RawTokenAt always
// answers with the literal spelling at a file location.
type Token struct {
	Kind     TokenKind
	Spelling string
	Span     Range
}

// Lexer is the raw-token collaborator named in spec §6: "raw tokens (no
// macro expansion) at a given location; end-of-token location for a
// given start; spelling for a token; mapping from raw-identifier
// spellings to canonical token kinds."
type Lexer interface {
	// RawTokenAt returns the token starting at loc without macro
	// expansion, and whether a token could be lexed there at all.
	RawTokenAt(loc Location) (Token, bool)

	// EndOfToken returns the location immediately past the token
	// starting at loc.
	EndOfToken(loc Location) Location
}

// IsWhitespace reports whether b is a whitespace byte, used by the
// range resolver's character-wise skip-whitespace loop.
func IsWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}

// SkipWhitespace advances loc forward character-wise while the byte at
// loc is whitespace, consulting sm for file contents.
func SkipWhitespace(sm *Manager, loc Location) Location {
	for IsWhitespace(sm.CharAt(loc)) {
		loc = sm.Advance(loc, 1)
	}
	return loc
}
