// Package parser turns infix expressions into the prefix token list the
// calculator evaluates.
package parser

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/XJIeI5/calculator/internal/datastructs"
	op "github.com/XJIeI5/calculator/internal/operation"
	"github.com/XJIeI5/calculator/internal/provider"
	"github.com/informitas/stack"
)

var (
	ErrSyntax = errors.New("syntax error")

	errorNotAllNumbersUsed = fmt.Errorf("%w: not all numbers are involved in mathematical operations", ErrSyntax)
	errorNotClosedParen    = fmt.Errorf("%w: paren doesn't closed", ErrSyntax)
	errorNoOpenParen       = fmt.Errorf("%w: closed paren located before open paren", ErrSyntax)
)

// GetStringNumber returns the numeric literal at the start of expr: an
// optional sign, digits with one optional point, an optional exponent and
// an optional imaginary unit.
func GetStringNumber(expr string) string {
	var (
		i      int
		digits int
		point  bool
	)
	if i < len(expr) && (expr[i] == '+' || expr[i] == '-') {
		i++
	}
	for i < len(expr) && (isDigit(expr[i]) || expr[i] == '.' && !point) {
		if expr[i] == '.' {
			point = true
		} else {
			digits++
		}
		i++
	}
	if digits == 0 {
		return ""
	}
	if i < len(expr) && (expr[i] == 'e' || expr[i] == 'E') {
		j := i + 1
		if j < len(expr) && (expr[j] == '+' || expr[j] == '-') {
			j++
		}
		if j < len(expr) && isDigit(expr[j]) {
			for j < len(expr) && isDigit(expr[j]) {
				j++
			}
			i = j
		}
	}
	if i < len(expr) && expr[i] == 'i' && (i+1 == len(expr) || !isIdent(rune(expr[i+1]))) {
		i++
	}
	return expr[:i]
}

// GetName returns the identifier at the start of expr. A dash joins the next
// identifier only when known accepts the joined name, so with "to-deg" known
// "to-deg(1)" is one name while "PI-E" stops before the minus.
func GetName(expr string, known func(string) bool) string {
	end := identEnd(expr, 0)
	for end+1 < len(expr) && expr[end] == '-' {
		if r, _ := utf8.DecodeRuneInString(expr[end+1:]); !unicode.IsLetter(r) {
			break
		}
		next := identEnd(expr, end+1)
		if known == nil || !known(expr[:next]) {
			break
		}
		end = next
	}
	return expr[:end]
}

func identEnd(expr string, from int) int {
	for i, r := range expr[from:] {
		if !isIdent(r) {
			return from + i
		}
	}
	return len(expr)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdent(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

// ParseToPrefix converts an infix expression to prefix tokens. Names known
// to p as unary operations are functions ("sin(PI / 2)"), nullary names and
// unknown names are operands. An empty expression gives no tokens.
func ParseToPrefix[T any](infixExpr string, p provider.Provider[T]) ([]string, error) {
	var (
		skip          int
		expectOperand = true
	)
	operators := stack.NewStack[symbol]()
	operands := datastructs.NewStack[[]string]()

	reduce := func(s symbol) error {
		n := s.arity()
		if operands.Size() < n {
			return errorNotAllNumbersUsed
		}
		args, _ := operands.PopStack(n)
		expr := []string{s.name}
		for _, arg := range args.Slice() {
			expr = append(expr, arg...)
		}
		operands.Push(expr)
		return nil
	}
	pushOperand := func(token string) error {
		if !expectOperand {
			return fmt.Errorf("%w: missing operator before %q", ErrSyntax, token)
		}
		operands.Push([]string{token})
		expectOperand = false
		return nil
	}

	for i, r := range infixExpr {
		if skip > 0 {
			skip--
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		rest := infixExpr[i:]
		if expectOperand || r >= '0' && r <= '9' || r == '.' {
			if num := GetStringNumber(rest); num != "" {
				skip = len(num) - 1
				if err := pushOperand(num); err != nil {
					return nil, err
				}
				continue
			}
		}

		if unicode.IsLetter(r) {
			name := GetName(rest, func(name string) bool {
				_, ok := p.Lookup(name)
				return ok
			})
			skip = utf8.RuneCountInString(name) - 1
			operation, ok := p.Lookup(name)
			switch {
			case !ok || operation.Arity() == op.Nullary:
				if err := pushOperand(name); err != nil {
					return nil, err
				}
			case operation.Arity() == op.Unary:
				if !expectOperand {
					return nil, fmt.Errorf("%w: missing operator before %q", ErrSyntax, name)
				}
				operators.Push(function(name))
			default:
				return nil, fmt.Errorf("%w: binary operation %q can't be written infix", ErrSyntax, name)
			}
			continue
		}

		sym, ok := symbols[r]
		if !ok {
			return nil, fmt.Errorf("%w: unknown operand %c", ErrSyntax, r)
		}
		switch sym.kind {
		case openParenKind:
			if !expectOperand {
				return nil, fmt.Errorf("%w: missing operator before paren", ErrSyntax)
			}
			operators.Push(sym)
		case closeParenKind:
			if expectOperand {
				return nil, errorNotAllNumbersUsed
			}
			closed := false
			for !operators.IsEmpty() {
				top, _ := operators.Pop()
				if top.kind == openParenKind {
					closed = true
					break
				}
				if err := reduce(top); err != nil {
					return nil, err
				}
			}
			if !closed {
				return nil, errorNoOpenParen
			}
		case binaryKind:
			if expectOperand {
				return nil, fmt.Errorf("%w: operator %q has no left operand", ErrSyntax, sym.name)
			}
			for !operators.IsEmpty() {
				top, _ := operators.Top()
				if !top.outranks(sym) {
					break
				}
				operators.Pop()
				if err := reduce(top); err != nil {
					return nil, err
				}
			}
			operators.Push(sym)
			expectOperand = true
		}
	}

	if operators.IsEmpty() && operands.IsEmpty() {
		return []string{}, nil
	}
	if expectOperand {
		return nil, errorNotAllNumbersUsed
	}
	for !operators.IsEmpty() {
		top, _ := operators.Pop()
		if top.kind == openParenKind {
			return nil, errorNotClosedParen
		}
		if err := reduce(top); err != nil {
			return nil, err
		}
	}
	if operands.Size() != 1 {
		return nil, errorNotAllNumbersUsed
	}

	res, _ := operands.Pop()
	return res, nil
}
