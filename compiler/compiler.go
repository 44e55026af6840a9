// Package compiler lowers expression trees to LLVM IR.
package compiler

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"go.creack.net/gocalc/ast"
	"go.creack.net/gocalc/executor"
	"go.creack.net/gocalc/lexer"
)

// FuncName is the name of the generated function, `double @calc()`.
const FuncName = "calc"

type llvmIRBuilder struct {
	mod   *ir.Module
	block *ir.Block
}

func newLLVMIRBuilder() *llvmIRBuilder {
	return &llvmIRBuilder{
		mod: ir.NewModule(),
	}
}

// Compile returns a module holding one function that computes expr.
// Trees that fail to evaluate, i.e. divide by zero, are rejected with
// the evaluator's error so the module never encodes a fault.
func Compile(expr ast.Expr) (*ir.Module, error) {
	if _, err := executor.Evaluate(expr); err != nil {
		return nil, err
	}
	b := newLLVMIRBuilder()
	b.function(FuncName, expr)
	return b.mod, nil
}

func (b *llvmIRBuilder) function(name string, expr ast.Expr) {
	f := b.mod.NewFunc(name, types.Double)
	b.block = f.NewBlock("entry")
	b.block.NewRet(b.load(expr))
}

func (b *llvmIRBuilder) load(expr ast.Expr) value.Value {
	switch e := expr.(type) {
	case *ast.NumberExpr:
		return constant.NewFloat(types.Double, e.Value)
	case *ast.PrefixExpr:
		return b.block.NewFNeg(b.load(e.Right))
	case *ast.BinaryExpr:
		return b.binaryExpression(e)
	default:
		panic(fmt.Errorf("unsupported expression type %T", e))
	}
}

func (b *llvmIRBuilder) binaryExpression(expr *ast.BinaryExpr) value.Value {
	v1 := b.load(expr.Left)
	v2 := b.load(expr.Right)

	switch expr.Operator.Type {
	case lexer.TokPlus:
		return b.block.NewFAdd(v1, v2)
	case lexer.TokDash:
		return b.block.NewFSub(v1, v2)
	case lexer.TokMultiply:
		return b.block.NewFMul(v1, v2)
	case lexer.TokSlash:
		return b.block.NewFDiv(v1, v2)
	default:
		panic(fmt.Errorf("unexpected binary operator %s", expr.Operator.Type))
	}
}
