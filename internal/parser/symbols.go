package parser

type kind int

const (
	binaryKind kind = iota
	functionKind
	openParenKind
	closeParenKind
)

type symbol struct {
	name       string
	kind       kind
	priority   int
	rightAssoc bool
}

var (
	openParen  = symbol{name: "(", kind: openParenKind}
	closeParen = symbol{name: ")", kind: closeParenKind}
)

var symbols = map[rune]symbol{
	'(': openParen,
	')': closeParen,
	'+': {name: "+", kind: binaryKind, priority: 1},
	'-': {name: "-", kind: binaryKind, priority: 1},
	'*': {name: "*", kind: binaryKind, priority: 2},
	'/': {name: "/", kind: binaryKind, priority: 2},
	'^': {name: "^", kind: binaryKind, priority: 3, rightAssoc: true},
}

const functionPriority = 4

func function(name string) symbol {
	return symbol{name: name, kind: functionKind, priority: functionPriority}
}

func (s symbol) arity() int {
	switch s.kind {
	case binaryKind:
		return 2
	case functionKind:
		return 1
	default:
		return 0
	}
}

// outranks reports whether s, lying on the operator stack, must be applied
// before next is pushed.
func (s symbol) outranks(next symbol) bool {
	if s.kind != binaryKind && s.kind != functionKind {
		return false
	}
	if s.priority == next.priority {
		return !next.rightAssoc
	}
	return s.priority > next.priority
}
