package executor_test

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.creack.net/gocalc/ast"
	"go.creack.net/gocalc/executor"
	"go.creack.net/gocalc/lexer"
	"go.creack.net/gocalc/parser"
)

type testCase struct {
	name    string
	input   string
	want    float64
	wantErr bool
}

func TestEvaluate(t *testing.T) {
	tests := []testCase{
		{name: "number", input: "7", want: 7},
		{name: "precedence", input: "2+3*4-1", want: 13},
		{name: "mixed", input: "20/4+3*2", want: 11},
		{name: "div before sub", input: "100-50/2+10", want: 85},
		{name: "unary and mult", input: "-10+5*-2", want: -20},
		{name: "three products", input: "3*4+2*5-6/2", want: 19},
		{name: "left assoc division", input: "48/6/2", want: 4},
		{name: "product chain", input: "2*3*4", want: 24},
		{name: "big division", input: "1000000/8", want: 125000},
		{name: "negatives", input: "-7*-3+1", want: 22},
		{name: "times zero", input: "5+3*0", want: 5},
		{name: "long chain", input: "50-25/5*2+8", want: 48},
		{name: "negative products", input: "-15*-4/6+7*2", want: 24},
		{name: "chain of divisions", input: "200/8/5+3*4-2", want: 15},
		{name: "fraction", input: "7/2", want: 3.5},
		{name: "decimal literals", input: "0.5+0.25", want: 0.75},
		{name: "double negation", input: "--4", want: 4},
		{name: "left assoc subtraction", input: "10-4-3", want: 3},

		{name: "division by zero", input: "5/0", wantErr: true},
		{name: "division by negative zero", input: "5/-0", wantErr: true},
		{name: "division by computed zero", input: "1/2*0", want: 0},
		{name: "divisor reduced to zero", input: "1/-0*5", wantErr: true},
		{name: "nested division by zero", input: "1+2*3/0-4", wantErr: true},
		{name: "zero over zero", input: "0/0.0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := parser.ParseString(tt.input)
			require.NoError(t, err, "parse %q", tt.input)

			got, err := executor.Evaluate(expr)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, executor.ErrDivisionByZero)
				var evalErr *executor.Error
				require.ErrorAs(t, err, &evalErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-4)
		})
	}
}

// The grammar has no grouping, so a divisor that is itself a subtraction
// can only come from a hand built tree.
func TestEvaluateComputedDivisor(t *testing.T) {
	expr := &ast.BinaryExpr{
		Left:     &ast.NumberExpr{Value: 1},
		Operator: lexer.Token{Type: lexer.TokSlash, Value: "/"},
		Right: &ast.BinaryExpr{
			Left:     &ast.NumberExpr{Value: 2},
			Operator: lexer.Token{Type: lexer.TokDash, Value: "-"},
			Right:    &ast.NumberExpr{Value: 2},
		},
	}
	_, err := executor.Evaluate(expr)
	require.ErrorIs(t, err, executor.ErrDivisionByZero)
	require.EqualError(t, err, "division by zero in (1 / (2 - 2))")
}

func TestEvaluateErrorMessage(t *testing.T) {
	expr, err := parser.ParseString("1+4/0")
	require.NoError(t, err)
	_, err = executor.Evaluate(expr)
	require.EqualError(t, err, "division by zero in (4 / 0)")
}

func TestEvaluateOverflowIsNotAnError(t *testing.T) {
	huge := "1" + strings.Repeat("0", 300)
	expr, err := parser.ParseString(huge + "*" + huge)
	require.NoError(t, err)
	got, err := executor.Evaluate(expr)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	expr, err = parser.ParseString(huge + "*" + huge + "-" + huge + "*" + huge)
	require.NoError(t, err)
	got, err = executor.Evaluate(expr)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		v         float64
		precision int
		want      string
	}{
		{v: 13, precision: -1, want: "13"},
		{v: -20, precision: -1, want: "-20"},
		{v: 125000, precision: -1, want: "125000"},
		{v: 11.5, precision: -1, want: "11.5"},
		{v: 1.0 / 3, precision: -1, want: "0.3333333333333333"},
		{v: 1.0 / 3, precision: 4, want: "0.3333"},
		{v: 2, precision: 2, want: "2.00"},
		{v: 1e21, precision: -1, want: "1000000000000000000000"},
		{v: math.Inf(1), precision: -1, want: "+Inf"},
		{v: math.Inf(-1), precision: -1, want: "-Inf"},
		{v: math.NaN(), precision: -1, want: "NaN"},
		{v: 3.5, precision: -7, want: "3.5"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := executor.FormatResult(tt.v, tt.precision)
			assert.Equal(t, tt.want, got)
			if !math.IsNaN(tt.v) && !math.IsInf(tt.v, 0) && tt.precision < 0 {
				back, err := strconv.ParseFloat(got, 64)
				require.NoError(t, err)
				assert.InDelta(t, tt.v, back, 1e-4)
			}
		})
	}
}
