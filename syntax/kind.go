package syntax

// SyntaxKind identifies the grammatical category of a composite node in
// the concrete syntax tree.
type SyntaxKind int

const (
	NodeError SyntaxKind = iota // placeholder synthesized during error recovery

	NodeRoot // CompUnit

	NodeImport
	NodeVarDef
	NodeFuncSign
	NodeParamList
	NodeParam
	NodeFuncDef
	NodeStructDef
	NodeField
	NodeAttachDef

	NodeNamedType
	NodePtrType
	NodeArrayType

	NodeInitList

	NodeBlock
	NodeVarDeclStmt
	NodeAssignStmt
	NodeExprStmt
	NodeIfStmt
	NodeWhileStmt
	NodeBreakStmt
	NodeContinueStmt
	NodeReturnStmt

	NodeParenExpr
	NodeBinaryExpr
	NodeUnaryExpr
	NodeCallExpr
	NodeArgList
	NodeIndexExpr
	NodeFieldExpr
	NodeArrowExpr
	NodeIdentExpr
	NodeIntLit
	NodeCharLit
	NodeStringLit
	NodeBoolLit
	NodeNullLit
)

//go:generate stringer -type=SyntaxKind
func (k SyntaxKind) String() string {
	switch k {
	case NodeError:
		return "Error"
	case NodeRoot:
		return "Root"
	case NodeImport:
		return "Import"
	case NodeVarDef:
		return "VarDef"
	case NodeFuncSign:
		return "FuncSign"
	case NodeParamList:
		return "ParamList"
	case NodeParam:
		return "Param"
	case NodeFuncDef:
		return "FuncDef"
	case NodeStructDef:
		return "StructDef"
	case NodeField:
		return "Field"
	case NodeAttachDef:
		return "AttachDef"
	case NodeNamedType:
		return "NamedType"
	case NodePtrType:
		return "PtrType"
	case NodeArrayType:
		return "ArrayType"
	case NodeInitList:
		return "InitList"
	case NodeBlock:
		return "Block"
	case NodeVarDeclStmt:
		return "VarDeclStmt"
	case NodeAssignStmt:
		return "AssignStmt"
	case NodeExprStmt:
		return "ExprStmt"
	case NodeIfStmt:
		return "IfStmt"
	case NodeWhileStmt:
		return "WhileStmt"
	case NodeBreakStmt:
		return "BreakStmt"
	case NodeContinueStmt:
		return "ContinueStmt"
	case NodeReturnStmt:
		return "ReturnStmt"
	case NodeParenExpr:
		return "ParenExpr"
	case NodeBinaryExpr:
		return "BinaryExpr"
	case NodeUnaryExpr:
		return "UnaryExpr"
	case NodeCallExpr:
		return "CallExpr"
	case NodeArgList:
		return "ArgList"
	case NodeIndexExpr:
		return "IndexExpr"
	case NodeFieldExpr:
		return "FieldExpr"
	case NodeArrowExpr:
		return "ArrowExpr"
	case NodeIdentExpr:
		return "IdentExpr"
	case NodeIntLit:
		return "IntLit"
	case NodeCharLit:
		return "CharLit"
	case NodeStringLit:
		return "StringLit"
	case NodeBoolLit:
		return "BoolLit"
	case NodeNullLit:
		return "NullLit"
	default:
		return "Unknown"
	}
}
