package syntax

// parseCompUnit parses: CompUnit := {Import} {GlobalDecl}
func (p *Parser) parseCompUnit() {
	for p.at(TOK_IMPORT) {
		p.parseImport()
	}

	for !p.at(TOK_EOF) {
		switch p.cur.Kind {
		case TOK_LET:
			p.parseVarDef()
		case TOK_FN:
			p.parseFuncDecl()
		case TOK_STRUCT:
			p.parseStructDef()
		case TOK_ATTACH:
			p.parseAttachDef()
		default:
			p.errorHere("expected a declaration")
			p.recover()
		}
	}
}

// parseImport parses: Import := 'import' StringLit ['::' Ident] [';']
func (p *Parser) parseImport() {
	p.builder.StartNode(NodeImport)
	p.bump() // 'import'
	p.expect(TOK_STRINGLIT, "a string literal naming the import path")
	if _, ok := p.eat(TOK_COLONCOLON); ok {
		p.expect(TOK_IDENT, "a symbol name")
	}
	p.eat(TOK_SEMI)
	p.builder.FinishNode()
}
