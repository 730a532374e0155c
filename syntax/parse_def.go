package syntax

// parseType parses:
//
//	Type := ['const'] PrimType | PtrQual Type | '[' Type ';' ConstExpr ']'
//	PtrQual := '*' ('mut' | 'const')
func (p *Parser) parseType() {
	switch p.cur.Kind {
	case TOK_STAR:
		p.builder.StartNode(NodePtrType)
		p.bump() // '*'
		if !p.at(TOK_MUT) && !p.at(TOK_CONST) {
			p.errorHere("expected 'mut' or 'const' after '*' in pointer type")
		} else {
			p.bump()
		}
		p.parseType()
		p.builder.FinishNode()
	case TOK_LBRACKET:
		p.builder.StartNode(NodeArrayType)
		p.bump() // '['
		p.parseType()
		p.expect(TOK_SEMI, "';' separating array element type from its size")
		p.parseExpr(precLowest)
		p.expect(TOK_RBRACKET, "']' closing array type")
		p.builder.FinishNode()
	default:
		p.builder.StartNode(NodeNamedType)
		if _, ok := p.eat(TOK_CONST); ok {
			// leading 'const' qualifies the base/pointee type.
		}
		switch p.cur.Kind {
		case TOK_VOID, TOK_BOOL, TOK_I8, TOK_I32, TOK_I64, TOK_U8, TOK_U32, TOK_U64, TOK_IDENT, TOK_STRUCT:
			if p.at(TOK_STRUCT) {
				p.bump() // 'struct' keyword preceding a named struct reference
			}
			p.bump()
		default:
			p.errorHere("expected a type")
		}
		p.builder.FinishNode()
	}
}

// parseVarDef parses: VarDef := 'let' Ident ':' Type ['=' InitVal] ';'
// Used for both global and local variable declarations; the caller wraps
// it in NodeVarDef (global) or NodeVarDeclStmt (local).
func (p *Parser) parseVarDefBody() {
	p.bump() // 'let'
	p.expect(TOK_IDENT, "a variable name")
	p.expect(TOK_COLON, "':' before the variable's type")
	p.parseType()
	if _, ok := p.eat(TOK_ASSIGN); ok {
		p.parseInitVal()
	}
	p.eat(TOK_SEMI)
}

func (p *Parser) parseVarDef() {
	p.builder.StartNode(NodeVarDef)
	p.parseVarDefBody()
	p.builder.FinishNode()
}

// parseInitVal parses: InitVal := Expr | '{' [InitVal {',' InitVal}] '}'
func (p *Parser) parseInitVal() {
	if p.at(TOK_LBRACE) {
		p.builder.StartNode(NodeInitList)
		p.bump()
		for !p.at(TOK_RBRACE) && !p.at(TOK_EOF) {
			p.parseInitVal()
			if _, ok := p.eat(TOK_COMMA); !ok {
				break
			}
		}
		p.expect(TOK_RBRACE, "'}' closing initializer list")
		p.builder.FinishNode()
		return
	}
	p.parseExpr(precLowest)
}

// parseParamList parses: '(' [Param {',' Param} ['...']] ')'
func (p *Parser) parseParamList() {
	p.builder.StartNode(NodeParamList)
	p.expect(TOK_LPAREN, "'(' beginning the parameter list")
	for !p.at(TOK_RPAREN) && !p.at(TOK_EOF) {
		if p.at(TOK_ELLIPSIS) {
			p.bump()
			break
		}
		p.builder.StartNode(NodeParam)
		p.expect(TOK_IDENT, "a parameter name")
		p.expect(TOK_COLON, "':' before the parameter's type")
		p.parseType()
		p.builder.FinishNode()
		if _, ok := p.eat(TOK_COMMA); !ok {
			break
		}
	}
	p.expect(TOK_RPAREN, "')' closing the parameter list")
	p.builder.FinishNode()
}

// parseFuncDecl parses: FuncSign := 'fn' Ident '(' ... ')' ['->' Type]
// followed by either ';' (external declaration) or a Block (function
// definition).
func (p *Parser) parseFuncDecl() {
	p.builder.StartNode(NodeFuncSign)
	p.bump() // 'fn'
	p.expect(TOK_IDENT, "a function name")
	p.parseParamList()
	if _, ok := p.eat(TOK_ARROW); ok {
		p.parseType()
	}

	if p.at(TOK_LBRACE) {
		// Wrap the signature and its body together as a NodeFuncDef so the
		// AST view layer can tell an external declaration (NodeFuncSign
		// alone) apart from a definition.
		p.builder.FinishNode()
		p.builder.WrapLastFinished(NodeFuncDef)
		p.parseBlock()
		p.builder.FinishNode()
		return
	}

	p.eat(TOK_SEMI)
	p.builder.FinishNode()
}

// parseStructDef parses: StructDef := 'struct' Ident '{' [Field {',' Field} [',']] '}'
func (p *Parser) parseStructDef() {
	p.builder.StartNode(NodeStructDef)
	p.bump() // 'struct'
	p.expect(TOK_IDENT, "a struct name")
	p.expect(TOK_LBRACE, "'{' beginning the struct body")
	for !p.at(TOK_RBRACE) && !p.at(TOK_EOF) {
		p.builder.StartNode(NodeField)
		p.expect(TOK_IDENT, "a field name")
		p.expect(TOK_COLON, "':' before the field's type")
		p.parseType()
		p.builder.FinishNode()
		if _, ok := p.eat(TOK_COMMA); !ok {
			break
		}
	}
	p.expect(TOK_RBRACE, "'}' closing the struct body")
	p.builder.FinishNode()
}

// parseAttachDef parses: AttachDef := 'attach' Ident Block
func (p *Parser) parseAttachDef() {
	p.builder.StartNode(NodeAttachDef)
	p.bump() // 'attach'
	p.expect(TOK_IDENT, "the name of a previously declared function")
	p.parseBlock()
	p.builder.FinishNode()
}
