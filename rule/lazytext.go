package rule

import (
	"context"
	"strings"
	"sync/atomic"

	pool "github.com/jolestar/go-commons-pool"
)

// lazyText is an immutable binary concatenation tree over text
// fragments. Phoneme text is built through many small appends during
// rule application; flattening on every append would be quadratic, so
// concatenation builds a tree in O(1) and flattening is deferred until
// the text is first read.
//
// A node is either a leaf (left == nil) or an inner node with two
// children. Lengths are computed at construction; the flattened
// rendering is cached after the first read.
type lazyText struct {
	leaf        string
	left, right *lazyText // both nil for a leaf
	length      int
	flat        atomic.Pointer[string]
}

func leafText(s string) *lazyText {
	return &lazyText{leaf: s, length: len(s)}
}

func concatText(left, right *lazyText) *lazyText {
	return &lazyText{left: left, right: right, length: left.length + right.length}
}

func (t *lazyText) Len() int {
	return t.length
}

// String returns the flattened rendering, computing and caching it on
// first read. The cache write is a single idempotent publish of a value
// that is a pure function of the immutable tree; a race recomputes the
// same string and is merely wasteful, so no lock is taken.
func (t *lazyText) String() string {
	if t.left == nil {
		return t.leaf
	}
	if flat := t.flat.Load(); flat != nil {
		return *flat
	}
	sb := borrowBuilder()
	t.render(sb)
	s := sb.String()
	releaseBuilder(sb)
	t.flat.Store(&s)
	return s
}

func (t *lazyText) render(sb *strings.Builder) {
	if t.left == nil {
		sb.WriteString(t.leaf)
		return
	}
	if flat := t.flat.Load(); flat != nil {
		sb.WriteString(*flat)
		return
	}
	t.left.render(sb)
	t.right.render(sb)
}

// Flattening happens in bursts while rule tables are applied, each time
// needing a scratch builder for a moment. We pool the builders.
type builderPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalBuilderPool *builderPool

func init() {
	globalBuilderPool = &builderPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return &strings.Builder{}, nil
		})
	globalBuilderPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalBuilderPool.opool = pool.NewObjectPool(globalBuilderPool.ctx, factory, config)
}

func borrowBuilder() *strings.Builder {
	o, _ := globalBuilderPool.opool.BorrowObject(globalBuilderPool.ctx)
	return o.(*strings.Builder)
}

func releaseBuilder(sb *strings.Builder) {
	sb.Reset()
	_ = globalBuilderPool.opool.ReturnObject(globalBuilderPool.ctx, sb)
}
