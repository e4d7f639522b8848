package driver

import (
	"fmt"

	"xlate/internal/ast"
	"xlate/internal/diag"
)

// checkDeclarations warns about declaration nodes the front end left
// without a binding. Such nodes get no symbol.
func checkDeclarations(unit *ast.Unit, r diag.Reporter) {
	unit.Walk(unit.Root(), func(id ast.NodeID) bool {
		n := unit.Node(id)
		if n.Kind.IsDeclaration() && !n.Binding.IsValid() {
			msg := fmt.Sprintf("%s declaration %q has no binding", n.Kind, n.Label)
			diag.ReportWarning(r, diag.SymMissingDeclaration, n.Span, msg).Emit()
		}
		return true
	})
}
