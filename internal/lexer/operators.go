package lexer

import "sort"

// operatorEntry is one row of the maximal-munch table: a literal
// punctuation spelling and the token it produces.
type operatorEntry struct {
	text string
	typ  TokenType
}

// operatorTable lists every compound and single-character operator
// spelling the tokenizer recognizes (spec.md 4.2). It is sorted longest
// first once, in init, so splitOperatorRun always tries the longest
// match at each position.
var operatorTable = []operatorEntry{
	{"=", ASSIGN}, {"==", EQ}, {"!=", NE}, {"<", LT}, {"<=", LE}, {">", GT}, {">=", GE},
	{"<<", SHL}, {">>", SHR}, {">>>", USHR},
	{"&&", ANDAND}, {"||", OROR}, {"??", COALESCE}, {"?.", QDOT}, {"...", SPREAD},
	{"++", INC}, {"--", DEC},
	{"+=", PLUSASSIGN}, {"-=", MINUSASSIGN}, {"*=", STARASSIGN}, {"/=", SLASHASSIGN},
	{"%=", PERCENTASSIGN}, {"&=", ANDASSIGN}, {"|=", ORASSIGN}, {"^=", XORASSIGN},
	{"<<=", SHLASSIGN}, {">>=", SHRASSIGN}, {">>>=", USHRASSIGN},
	{"??=", COALESCEASSIGN}, {"&&=", ANDANDASSIGN}, {"||=", ORORASSIGN},
	{"+", PLUS}, {"-", MINUS}, {"*", STAR}, {"/", SLASH}, {"%", PERCENT},
	{"!", BANG}, {"~", TILDE}, {"&", AMP}, {"|", PIPE}, {"^", CARET},
	{"?", QUESTION}, {":", COLON}, {".", DOT}, {",", COMMA}, {";", SEMICOLON},
	{"(", LPAREN}, {")", RPAREN}, {"[", LBRACKET}, {"]", RBRACKET}, {"{", LBRACE}, {"}", RBRACE},
}

func init() {
	sort.SliceStable(operatorTable, func(i, j int) bool {
		return len(operatorTable[i].text) > len(operatorTable[j].text)
	})
}

// splitOperatorRun consumes the longest operator spelling that is a
// prefix of run, returning its token type, the number of bytes
// consumed, and whether a match was found at all (a match always
// exists for any non-empty run made of punctuation characters this
// lexer recognizes).
func splitOperatorRun(run string) (typ TokenType, width int, ok bool) {
	for _, entry := range operatorTable {
		if len(entry.text) <= len(run) && run[:len(entry.text)] == entry.text {
			return entry.typ, len(entry.text), true
		}
	}
	return 0, 0, false
}
