package ast

// Program is the root node. spec.md §4.5: owns the program-level scope
// and the outermost try/catch/finally scaffold.
type Program struct {
	Base
	Body []Stmt
}

func (*Program) Kind() Kind { return "Program" }
func (*Program) stmtNode()  {}

// BlockStatement is `{ ... }`; owns a lexical-only frame over its
// immediate children (spec.md §4.5).
type BlockStatement struct {
	Base
	Body []Stmt
}

func (*BlockStatement) Kind() Kind { return "BlockStatement" }
func (*BlockStatement) stmtNode()  {}

// VariableKind is var/let/const.
type VariableKind string

const (
	KindVar   VariableKind = "var"
	KindLet   VariableKind = "let"
	KindConst VariableKind = "const"
)

// VariableDeclaration is `kind declarators`.
type VariableDeclaration struct {
	Base
	VKind        VariableKind
	Declarations []*VariableDeclarator
}

func (*VariableDeclaration) Kind() Kind { return "VariableDeclaration" }
func (*VariableDeclaration) stmtNode()  {}

// VariableDeclarator is one `pattern` or `pattern = init` of a
// VariableDeclaration.
type VariableDeclarator struct {
	Base
	Id   Pattern
	Init Expr // nil if no initializer
}

func (*VariableDeclarator) Kind() Kind { return "VariableDeclarator" }

// ExpressionStatement is a bare expression used as a statement.
type ExpressionStatement struct {
	Base
	Expression Expr
}

func (*ExpressionStatement) Kind() Kind { return "ExpressionStatement" }
func (*ExpressionStatement) stmtNode()  {}

// FunctionDeclaration is `function name(params) { body }` in statement
// position; the name is always present (spec.md §4.3 kind Func).
type FunctionDeclaration struct {
	Base
	Id        *Identifier
	Params    []Pattern
	Body      *BlockStatement
	Generator bool
	Async     bool
}

func (*FunctionDeclaration) Kind() Kind { return "FunctionDeclaration" }
func (*FunctionDeclaration) stmtNode()  {}

// ReturnStatement is `return arg?;`.
type ReturnStatement struct {
	Base
	Argument Expr // nil if bare `return;`
}

func (*ReturnStatement) Kind() Kind { return "ReturnStatement" }
func (*ReturnStatement) stmtNode()  {}

// ThrowStatement is `throw arg;`.
type ThrowStatement struct {
	Base
	Argument Expr
}

func (*ThrowStatement) Kind() Kind { return "ThrowStatement" }
func (*ThrowStatement) stmtNode()  {}

// IfStatement is `if (test) consequent else? alternate`.
type IfStatement struct {
	Base
	Test       Expr
	Consequent Stmt
	Alternate  Stmt // nil if no else
}

func (*IfStatement) Kind() Kind { return "IfStatement" }
func (*IfStatement) stmtNode()  {}

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	Base
	Test Expr
	Body Stmt
}

func (*WhileStatement) Kind() Kind { return "WhileStatement" }
func (*WhileStatement) stmtNode()  {}

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	Base
	Body Stmt
	Test Expr
}

func (*DoWhileStatement) Kind() Kind { return "DoWhileStatement" }
func (*DoWhileStatement) stmtNode()  {}

// ForStatement is `for (init; test; update) body`. Init may be a
// *VariableDeclaration (possibly lexical) or an Expr, or nil.
type ForStatement struct {
	Base
	Init   Node // *VariableDeclaration, Expr, or nil
	Test   Expr // nil means "always true"
	Update Expr // nil if absent
	Body   Stmt
}

func (*ForStatement) Kind() Kind { return "ForStatement" }
func (*ForStatement) stmtNode()  {}

// ForInStatement is `for (left in right) body`. Left is either a
// *VariableDeclaration (with exactly one declarator) or a Pattern
// (assignment target).
type ForInStatement struct {
	Base
	Left  Node
	Right Expr
	Body  Stmt
}

func (*ForInStatement) Kind() Kind { return "ForInStatement" }
func (*ForInStatement) stmtNode()  {}

// ForOfStatement is `for (left of right) body`.
type ForOfStatement struct {
	Base
	Left  Node
	Right Expr
	Body  Stmt
}

func (*ForOfStatement) Kind() Kind { return "ForOfStatement" }
func (*ForOfStatement) stmtNode()  {}

// SwitchStatement is `switch (discriminant) { cases... }`.
type SwitchStatement struct {
	Base
	Discriminant Expr
	Cases        []*SwitchCase
}

func (*SwitchStatement) Kind() Kind { return "SwitchStatement" }
func (*SwitchStatement) stmtNode()  {}

// SwitchCase is one `case test:` (Test non-nil) or `default:` (Test nil)
// arm of a SwitchStatement.
type SwitchCase struct {
	Base
	Test       Expr
	Consequent []Stmt
}

func (*SwitchCase) Kind() Kind { return "SwitchCase" }

// TryStatement is `try { block } catch (param) { handler }? finally?
// { finalizer }?`.
type TryStatement struct {
	Base
	Block     *BlockStatement
	Handler   *CatchClause    // nil if no catch
	Finalizer *BlockStatement // nil if no finally
}

func (*TryStatement) Kind() Kind { return "TryStatement" }
func (*TryStatement) stmtNode()  {}

// CatchClause is `catch (param) { body }`.
type CatchClause struct {
	Base
	Param Pattern // nil if parameterless catch
	Body  *BlockStatement
}

func (*CatchClause) Kind() Kind { return "CatchClause" }

// BreakStatement is unlabeled `break;`. Labeled break/continue are out
// of scope at this revision (no LabeledStatement node exists).
type BreakStatement struct {
	Base
}

func (*BreakStatement) Kind() Kind { return "BreakStatement" }
func (*BreakStatement) stmtNode()  {}

// ContinueStatement is unlabeled `continue;`.
type ContinueStatement struct {
	Base
}

func (*ContinueStatement) Kind() Kind { return "ContinueStatement" }
func (*ContinueStatement) stmtNode()  {}
