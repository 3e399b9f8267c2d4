// Package textir is a codegen.Backend that renders an air.Module to a
// human-readable textual IR — useful for golden-file tests and for
// inspecting what the middle-end produced without a real object-file
// emitter. Not a target this spec requires; exists to give the codegen
// seam in SPEC_FULL.md a concrete, exercised implementation.
//
// Grounded on the teacher's cmd/ailang diagnostic-printing conventions
// (plain, line-oriented output, one construct per line).
package textir

import (
	"fmt"
	"strings"

	"github.com/nilva-lang/nilva/internal/air"
)

// Backend renders air.Module values as indented text.
type Backend struct{}

// New constructs a textir Backend.
func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "textir" }

func (b *Backend) Generate(mod *air.Module) ([]byte, error) {
	var out strings.Builder

	for _, s := range mod.Structs {
		fmt.Fprintf(&out, "struct %s {\n", s.Name)
		for _, f := range s.Fields {
			fmt.Fprintf(&out, "  %s: ty%d\n", f.Name, f.Ty)
		}
		out.WriteString("}\n")
	}

	for _, f := range mod.Functions {
		kind := "fun"
		if f.Extern {
			kind = "extern fun"
		}
		fmt.Fprintf(&out, "%s %s(", kind, f.Name)
		for i, ty := range f.ParamTys {
			if i > 0 {
				out.WriteString(", ")
			}
			fmt.Fprintf(&out, "ty%d", ty)
		}
		fmt.Fprintf(&out, ") -> ty%d {\n", f.ReturnTy)
		for _, stmt := range f.Body {
			renderStmt(&out, stmt, 1)
		}
		out.WriteString("}\n")
	}

	return []byte(out.String()), nil
}

func indent(out *strings.Builder, depth int) {
	out.WriteString(strings.Repeat("  ", depth))
}

func renderStmt(out *strings.Builder, s air.Stmt, depth int) {
	indent(out, depth)
	switch st := s.(type) {
	case *air.VarDecl:
		fmt.Fprintf(out, "let v%d: ty%d = %s\n", st.VarId, st.Ty, renderExpr(st.Init))
	case *air.Assignment:
		fmt.Fprintf(out, "v%d = %s\n", st.VarId, renderExpr(st.Value))
	case *air.FieldAssignment:
		fmt.Fprintf(out, "%s.#%d = %s\n", renderExpr(st.Object), st.FieldIndex, renderExpr(st.Value))
	case *air.Return:
		if st.Value == nil {
			out.WriteString("return\n")
		} else {
			fmt.Fprintf(out, "return %s\n", renderExpr(st.Value))
		}
	case *air.If:
		fmt.Fprintf(out, "if %s {\n", renderExpr(st.Cond))
		for _, inner := range st.Then {
			renderStmt(out, inner, depth+1)
		}
		if st.Else != nil {
			indent(out, depth)
			out.WriteString("} else {\n")
			for _, inner := range st.Else {
				renderStmt(out, inner, depth+1)
			}
		}
		indent(out, depth)
		out.WriteString("}\n")
	case *air.ExprStmt:
		fmt.Fprintf(out, "%s\n", renderExpr(st.X))
	case *air.WhileLoop, *air.ForLoop:
		out.WriteString("<unsupported loop>\n")
	default:
		fmt.Fprintf(out, "<unknown statement %T>\n", s)
	}
}

func renderExpr(e air.Expr) string {
	if e == nil {
		return "<none>"
	}
	switch ex := e.(type) {
	case *air.IntegerLiteral:
		return fmt.Sprintf("%d", ex.Value)
	case *air.FloatLiteral:
		return fmt.Sprintf("%g", ex.Value)
	case *air.BoolLiteral:
		return fmt.Sprintf("%t", ex.Value)
	case *air.StringLiteral:
		return fmt.Sprintf("%q", ex.Value)
	case *air.VarRef:
		return fmt.Sprintf("%s/v%d", ex.Name, ex.VarId)
	case *air.UnaryOp:
		op := "-"
		if ex.Kind == air.OpNot {
			op = "!"
		}
		return op + renderExpr(ex.Operand)
	case *air.BinaryOp:
		return fmt.Sprintf("(%s %s %s)", renderExpr(ex.Left), binOpSymbol(ex.Kind), renderExpr(ex.Right))
	case *air.Call:
		parts := make([]string, len(ex.Args))
		for i, a := range ex.Args {
			parts[i] = renderExpr(a)
		}
		return fmt.Sprintf("%s(%s)", ex.Name, strings.Join(parts, ", "))
	case *air.StructInstantiation:
		parts := make([]string, len(ex.Values))
		for i, v := range ex.Values {
			parts[i] = renderExpr(v)
		}
		return fmt.Sprintf("%s{%s}", ex.Name, strings.Join(parts, ", "))
	case *air.FieldAccess:
		return fmt.Sprintf("%s.%s/#%d", renderExpr(ex.Object), ex.Field, ex.FieldIndex)
	case *air.ArrayExpr:
		parts := make([]string, len(ex.Elements))
		for i, v := range ex.Elements {
			parts[i] = renderExpr(v)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case *air.ArrayAccess:
		return fmt.Sprintf("%s[%s]", renderExpr(ex.Array), renderExpr(ex.Index))
	default:
		return fmt.Sprintf("<unknown expr %T>", e)
	}
}

func binOpSymbol(k air.BinaryOpKind) string {
	switch k {
	case air.OpAdd:
		return "+"
	case air.OpSub:
		return "-"
	case air.OpMul:
		return "*"
	case air.OpDiv:
		return "/"
	case air.OpMod:
		return "%"
	case air.OpEq:
		return "=="
	case air.OpNe:
		return "!="
	case air.OpLt:
		return "<"
	case air.OpLe:
		return "<="
	case air.OpGt:
		return ">"
	case air.OpGe:
		return ">="
	case air.OpAnd:
		return "&&"
	case air.OpOr:
		return "||"
	default:
		return "?"
	}
}
