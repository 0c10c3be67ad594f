package merge_test

import (
	"runtime"
	"testing"

	"graph-copier/merge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell struct{ V string }

// pair exposes two value composites of the same type through getters and setters only.
type pair struct{ left, right cell }

func (p *pair) Left() cell { return p.left }
func (p *pair) SetLeft(c cell) { p.left = c }
func (p *pair) Right() cell { return p.right }
func (p *pair) SetRight(c cell) { p.right = c }

// grid collects garbage on every read, so merged copies written back are reclaimed mid-merge.
type grid struct{ a, b, c, d cell }

func (g *grid) A() cell { runtime.GC(); return g.a }
func (g *grid) B() cell { runtime.GC(); return g.b }
func (g *grid) C() cell { runtime.GC(); return g.c }
func (g *grid) D() cell { runtime.GC(); return g.d }

func (g *grid) SetA(c cell) { g.a = c }
func (g *grid) SetB(c cell) { g.b = c }
func (g *grid) SetC(c cell) { g.c = c }
func (g *grid) SetD(c cell) { g.d = c }

func TestMerge_ValueCompositesOfOneType(t *testing.T) {
	dst := &pair{}
	src := &pair{left: cell{V: "l"}, right: cell{V: "r"}}

	require.NoError(t, merge.Merge(dst, src))
	assert.Equal(t, cell{V: "l"}, dst.Left())
	assert.Equal(t, cell{V: "r"}, dst.Right())
}

func TestMerge_WrittenBackCompositesSurviveCollection(t *testing.T) {
	for i := range 20 {
		dst := &grid{}
		src := &grid{a: cell{V: "a"}, b: cell{V: "b"}, c: cell{V: "c"}, d: cell{V: "d"}}

		require.NoError(t, merge.Merge(dst, src))
		assert.Equal(t, *src, *dst, "run %d", i)
	}
}
