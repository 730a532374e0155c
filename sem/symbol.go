// Package sem holds the analyzer's symbol and scope data structures and
// the per-node side table it writes resolved facts into, keyed by
// syntax-node identity.
//
// A Symbol is a single tagged-variant type covering variables,
// functions, structs, and imported aliases, rather than several
// parallel symbol kinds.
package sem

import (
	"github.com/widsnoy/airyc/report"
	"github.com/widsnoy/airyc/syntax"
	"github.com/widsnoy/airyc/types"
)

// SymbolKind tags the variant a Symbol represents.
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
	SymStruct
	SymImportedAlias
)

// StorageClass distinguishes where a variable's storage lives.
type StorageClass int

const (
	StorageLocal StorageClass = iota
	StorageGlobal
	StorageParam
)

// Symbol is the tagged variant over {variable, function, struct, imported
// alias}. A stable Id is assigned at definition time and never reused
// (an imported alias copies the Id of the symbol it stands for). The side
// table and the IR generator refer to a symbol by its *Symbol pointer,
// not by Id.
type Symbol struct {
	Id   uint32
	Name string
	Kind SymbolKind

	DefSpan *report.TextSpan
	Type    types.Type

	// Variable-only fields: const-ness, storage class, and the
	// initializer expression, if any.
	IsConst  bool
	Storage  StorageClass
	InitExpr *syntax.Node

	// Function-only fields.
	Params      []*Symbol
	ReturnType  types.Type
	IsVariadic  bool
	HasBody     bool
	DeclNode    *syntax.Node // the NodeFuncSign or NodeFuncDef
	ExternalABI bool         // declared with no body and never attached

	// Struct-only field.
	StructDef *types.StructDef

	// ImportedAlias-only field: the symbol this name stands for in the
	// importing module's scope.
	AliasOf *Symbol
}

// nextID hands out stable symbol ids across the whole compile; it is only
// ever touched by NewSymbol, and the compiler core is single-threaded, so
// no synchronization is needed.
var nextID uint32

// NewSymbol allocates a symbol with a fresh, stable id.
func NewSymbol(name string, kind SymbolKind, span *report.TextSpan) *Symbol {
	nextID++
	return &Symbol{Id: nextID, Name: name, Kind: kind, DefSpan: span}
}
