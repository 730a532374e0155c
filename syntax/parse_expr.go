package syntax

// Precedence levels for the Pratt/precedence-climbing expression parser,
// tightest binding first:
//
//	1. Postfix: () [] . ->        (parsePostfix, tightest)
//	2. Unary prefix: + - ! & *    (parseUnary, right-associative)
//	3. * / %
//	4. + -
//	5. < > <= >=
//	6. == !=
//	7. &&
//	8. ||                         (precLowest + 1, loosest binary tier)
const (
	precLowest = iota
	precOr
	precAnd
	precEq
	precRel
	precAdd
	precMul
)

// binPrec returns the precedence of a binary operator token and whether
// the token is a binary operator at all. All tiers are left-associative.
func binPrec(k TokenKind) (int, bool) {
	switch k {
	case TOK_LOR:
		return precOr, true
	case TOK_LAND:
		return precAnd, true
	case TOK_EQ, TOK_NEQ:
		return precEq, true
	case TOK_LT, TOK_GT, TOK_LE, TOK_GE:
		return precRel, true
	case TOK_PLUS, TOK_MINUS:
		return precAdd, true
	case TOK_STAR, TOK_SLASH, TOK_PERCENT:
		return precMul, true
	default:
		return 0, false
	}
}

// parseExpr parses a binary expression via precedence climbing: it parses
// one unary/postfix operand, then repeatedly consumes binary operators
// whose precedence is at least minPrec, recursing with minPrec+1 so each
// tier is left-associative.
func (p *Parser) parseExpr(minPrec int) {
	p.parseUnary()

	for {
		prec, ok := binPrec(p.cur.Kind)
		if !ok || prec < minPrec {
			return
		}

		p.builder.WrapLastFinished(NodeBinaryExpr)
		p.bump() // operator
		p.parseExpr(prec + 1)
		p.builder.FinishNode()
	}
}

// parseUnary parses: ('+' | '-' | '!' | '&' | '*') UnaryExpr | Postfix
// Unary operators are right-associative and bind tighter than any binary
// operator but looser than postfix.
func (p *Parser) parseUnary() {
	switch p.cur.Kind {
	case TOK_PLUS, TOK_MINUS, TOK_NOT, TOK_AMP, TOK_STAR:
		p.builder.StartNode(NodeUnaryExpr)
		p.bump()
		p.parseUnary()
		p.builder.FinishNode()
	default:
		p.parsePostfix()
	}
}

// parsePostfix parses a primary expression followed by any number of
// postfix suffixes: call, index, field access, or arrow field access.
func (p *Parser) parsePostfix() {
	p.parsePrimary()

	for {
		switch p.cur.Kind {
		case TOK_LPAREN:
			p.builder.WrapLastFinished(NodeCallExpr)
			p.parseArgList()
			p.builder.FinishNode()
		case TOK_LBRACKET:
			p.builder.WrapLastFinished(NodeIndexExpr)
			p.bump()
			p.parseExpr(precLowest)
			p.expect(TOK_RBRACKET, "']' closing an index expression")
			p.builder.FinishNode()
		case TOK_DOT:
			p.builder.WrapLastFinished(NodeFieldExpr)
			p.bump()
			p.expect(TOK_IDENT, "a field name")
			p.builder.FinishNode()
		case TOK_ARROW:
			p.builder.WrapLastFinished(NodeArrowExpr)
			p.bump()
			p.expect(TOK_IDENT, "a field name")
			p.builder.FinishNode()
		default:
			return
		}
	}
}

// parseArgList parses: '(' [Expr {',' Expr}] ')'
func (p *Parser) parseArgList() {
	p.builder.StartNode(NodeArgList)
	p.bump() // '('
	for !p.at(TOK_RPAREN) && !p.at(TOK_EOF) {
		p.parseExpr(precLowest)
		if _, ok := p.eat(TOK_COMMA); !ok {
			break
		}
	}
	p.expect(TOK_RPAREN, "')' closing the argument list")
	p.builder.FinishNode()
}

// parsePrimary parses an identifier, literal, or parenthesized expression.
// On failure it synthesizes a NodeError placeholder and, where safe,
// consumes one token so the caller always makes forward progress.
func (p *Parser) parsePrimary() {
	switch p.cur.Kind {
	case TOK_IDENT:
		p.builder.StartNode(NodeIdentExpr)
		p.bump()
		p.builder.FinishNode()
	case TOK_INTLIT:
		p.builder.StartNode(NodeIntLit)
		p.bump()
		p.builder.FinishNode()
	case TOK_CHARLIT:
		p.builder.StartNode(NodeCharLit)
		p.bump()
		p.builder.FinishNode()
	case TOK_STRINGLIT:
		p.builder.StartNode(NodeStringLit)
		p.bump()
		p.builder.FinishNode()
	case TOK_TRUE, TOK_FALSE:
		p.builder.StartNode(NodeBoolLit)
		p.bump()
		p.builder.FinishNode()
	case TOK_NULL:
		p.builder.StartNode(NodeNullLit)
		p.bump()
		p.builder.FinishNode()
	case TOK_LPAREN:
		p.builder.StartNode(NodeParenExpr)
		p.bump()
		p.parseExpr(precLowest)
		p.expect(TOK_RPAREN, "')' closing a parenthesized expression")
		p.builder.FinishNode()
	default:
		p.errorHere("expected an expression")
		p.builder.StartNode(NodeError)
		if !p.at(TOK_EOF) && !isBlockBoundary(p.cur.Kind) && !p.at(TOK_SEMI) {
			p.bump()
		}
		p.builder.FinishNode()
	}
}
