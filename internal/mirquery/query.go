// Package mirquery is the cached query wrapper spec.md §6 names: same
// inputs as the plain library entry point, but keyed only by a
// definition id, fetching body and inference from a Database and
// deduplicating concurrent requests for the same definition.
package mirquery

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"bodymir/internal/consteval"
	"bodymir/internal/hir"
	"bodymir/internal/infer"
	"bodymir/internal/langitems"
	"bodymir/internal/layout"
	"bodymir/internal/mirlower"
	"bodymir/internal/resolve"
)

// Database supplies the per-definition inputs LowerBody needs, plus the
// (assumed thread-safe, per spec.md §5) upstream collaborators shared
// across every definition.
type Database interface {
	Body(def hir.DefID) (*hir.Func, bool)
	Infer(def hir.DefID) (infer.Result, bool)
	Resolver() resolve.Resolver
	Consteval() consteval.Evaluator
	LangItems() langitems.Table
}

// Engine is the cached query wrapper. It deduplicates concurrent
// requests for the same definition via singleflight and detects
// recursive query cycles (a definition whose own lowering transitively
// re-requests itself) via an explicit in-flight set, since singleflight
// alone only merges identical *concurrent* calls and does not notice a
// call re-entering itself through a different call stack.
type Engine struct {
	db     Database
	layout *layout.Engine
	log    *slog.Logger

	group singleflight.Group

	mu       sync.Mutex
	inflight map[hir.DefID]bool
	cache    map[hir.DefID]*mirlower.Body
}

// New builds an Engine. log defaults to slog.Default() if nil, the same
// fallback the teacher's own driver/observ layers use around otherwise
// silent inner packages.
func New(db Database, eng *layout.Engine, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		db:       db,
		layout:   eng,
		log:      log,
		inflight: make(map[hir.DefID]bool),
		cache:    make(map[hir.DefID]*mirlower.Body),
	}
}

// Lower returns the cached MIR for def, computing it on first request and
// coalescing concurrent requests for the same def. Returns a dedicated
// Loop error (spec.md §7) if def is already being lowered higher up the
// current call chain.
func (e *Engine) Lower(def hir.DefID) (*mirlower.Body, error) {
	e.mu.Lock()
	if cached, ok := e.cache[def]; ok {
		e.mu.Unlock()
		return cached, nil
	}
	if e.inflight[def] {
		e.mu.Unlock()
		e.log.Warn("mirquery: recursive query cycle detected", "def", def)
		return nil, mirlower.KindError(mirlower.ErrLoop)
	}
	e.inflight[def] = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		delete(e.inflight, def)
		e.mu.Unlock()
	}()

	key := fmt.Sprintf("%d", def)
	v, err, shared := e.group.Do(key, func() (any, error) {
		return e.lowerUncached(def)
	})
	if err != nil {
		return nil, err
	}
	body := v.(*mirlower.Body)
	e.mu.Lock()
	e.cache[def] = body
	e.mu.Unlock()
	if shared {
		e.log.Debug("mirquery: served coalesced request", "def", def)
	}
	return body, nil
}

func (e *Engine) lowerUncached(def hir.DefID) (*mirlower.Body, error) {
	fn, ok := e.db.Body(def)
	if !ok {
		e.log.Error("mirquery: no body for definition", "def", def)
		return nil, &mirlower.Error{Kind: mirlower.ErrImplementationError, Msg: "no body for definition"}
	}
	inf, ok := e.db.Infer(def)
	if !ok {
		e.log.Error("mirquery: no inference result for definition", "def", def)
		return nil, &mirlower.Error{Kind: mirlower.ErrImplementationError, Msg: "no inference result for definition"}
	}

	body, err := mirlower.LowerBody(fn, e.db.Resolver(), inf, e.db.Consteval(), e.db.LangItems(), e.layout)
	if err != nil {
		e.log.Error("mirquery: lowering failed", "def", def, "err", err)
		return nil, err
	}
	e.log.Debug("mirquery: lowered definition", "def", def)
	return body, nil
}
