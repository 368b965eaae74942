package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adambiltcliffe/scheme/config"
)

func TestNewWithConfigSmallHeapInitialCapacityStillEvaluates(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.New()
	cfg.SetInt("heap.initial_capacity", 4)
	d, err := NewWithConfig(&buf, cfg)
	require.NoError(t, err)

	d.RunLine("(+ 1 2)")
	assert.Contains(t, buf.String(), "out: 3\n")
}

func TestRunLineBasicArithmetic(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&buf)
	require.NoError(t, err)

	d.RunLine("(define x 3) (+ x x)")

	assert.Equal(t, ""+
		"in:  (DEFINE X 3)\n"+
		"out: X\n"+
		"in:  (+ X X)\n"+
		"out: 6\n", buf.String())
}

func TestRunLinePrintsErrorKindAndContinues(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&buf)
	require.NoError(t, err)

	d.RunLine("undefined-name (+ 1 2)")

	assert.Equal(t, ""+
		"in:  UNDEFINED-NAME\n"+
		"err: UnboundSymbol\n"+
		"in:  (+ 1 2)\n"+
		"out: 3\n", buf.String())
}

func TestRunLineParseErrorAbortsRestOfLine(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&buf)
	require.NoError(t, err)

	d.RunLine("(+ 1 2))")

	assert.Equal(t, ""+
		"in:  (+ 1 2)\n"+
		"out: 3\n"+
		"err: UnmatchedBracket\n", buf.String())
}

func TestRunLineCollectsBetweenLines(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&buf)
	require.NoError(t, err)

	d.RunLine("(define loop (lambda (n) (if (= n 0) 'done (loop (- n 1)))))")

	d.RunLine("(loop 200)")

	assert.Greater(t, d.Heap().FreeCount(), 0)
}

func TestRunPersistsDefinitionsAcrossLines(t *testing.T) {
	var buf bytes.Buffer
	d, err := New(&buf)
	require.NoError(t, err)

	d.RunLine("(define y 10)")
	buf.Reset()
	d.RunLine("(+ y 1)")

	assert.Equal(t, "in:  (+ Y 1)\nout: 11\n", buf.String())
}
