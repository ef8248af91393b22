package syncer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/ymatsui/kijun/internal/docstore"
	"github.com/ymatsui/kijun/internal/userdata"
)

// Status reports the last observed health of the document store. It is
// advisory: the app keeps working against local state regardless.
type Status struct {
	Online  bool
	Message string
}

// Advisory notices surfaced in the UI when the store misbehaves.
const (
	msgOffline     = "接続が不安定です。オフラインで動作中です。"
	msgLoadFailed  = "データ取得エラー。一部機能が制限される可能性があります。"
	msgInitFailed  = "接続が不安定です。初期データの作成に失敗しました。"
	msgWriteAtRisk = "接続が不安定です。変更は保存されない可能性があります。"
	msgSaveFailed  = "データの保存に失敗しました。"
)

// Engine keeps one account's in-memory store and its remote document
// reconciled. Local state is ground truth for the UI: mutations apply
// locally first and are written back best-effort with no rollback; the
// remote document is an eventually consistent mirror.
type Engine struct {
	store  *userdata.Store
	client docstore.Client

	mu          sync.Mutex
	status      Status
	accountID   string
	unsubRemote func()
	unsubLocal  func()

	applyingRemote atomic.Bool

	writeMu sync.Mutex
	writing bool
	pending bool
	wg      sync.WaitGroup
}

// NewEngine creates an Engine bridging store and client. Nothing
// happens until SignIn.
func NewEngine(store *userdata.Store, client docstore.Client) *Engine {
	return &Engine{
		store:  store,
		client: client,
		status: Status{Online: true},
	}
}

// Status returns the last known store health.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// SignIn binds the engine to an account: loads (or creates) its remote
// document, replaces local state with the remote copy, and starts the
// push listener plus the local write-back subscription. Any previous
// account's listener is torn down first. Load failures degrade to
// local-only operation; they never fail the sign-in.
func (e *Engine) SignIn(ctx context.Context, accountID string) {
	e.teardown()

	e.mu.Lock()
	e.accountID = accountID
	e.mu.Unlock()

	d, err := e.client.Load(ctx, accountID)
	switch {
	case err == nil:
		e.applyRemote(d)
		e.setStatus(Status{Online: true})

	case errors.Is(err, docstore.ErrNotFound):
		// First sign-in: create the document with empty defaults.
		e.applyRemote(userdata.Empty())
		if werr := e.client.Write(ctx, accountID, userdata.Empty()); werr != nil {
			if docstore.Unavailable(werr) {
				e.setStatus(Status{Online: false, Message: msgInitFailed})
			} else {
				e.setStatus(Status{Online: false, Message: msgSaveFailed})
			}
		} else {
			e.setStatus(Status{Online: true})
		}

	case docstore.Unavailable(err):
		e.applyRemote(userdata.Empty())
		e.setStatus(Status{Online: false, Message: msgOffline})

	default:
		e.applyRemote(userdata.Empty())
		e.setStatus(Status{Online: false, Message: msgLoadFailed})
	}

	unsubRemote, err := e.client.Subscribe(accountID, e.onRemoteChange)
	if err == nil {
		e.mu.Lock()
		e.unsubRemote = unsubRemote
		e.mu.Unlock()
	}

	unsubLocal := e.store.Subscribe(e.onLocalChange)
	e.mu.Lock()
	e.unsubLocal = unsubLocal
	e.mu.Unlock()
}

// SignOut stops syncing and resets local state to empty defaults. The
// remote document is left untouched.
func (e *Engine) SignOut() {
	e.teardown()
	e.store.Clear()
	e.setStatus(Status{Online: true})
}

// Flush blocks until no write-back is in flight. Test hook; the UI
// never waits on writes.
func (e *Engine) Flush() {
	e.wg.Wait()
}

func (e *Engine) teardown() {
	e.mu.Lock()
	unsubRemote, unsubLocal := e.unsubRemote, e.unsubLocal
	e.unsubRemote, e.unsubLocal = nil, nil
	e.accountID = ""
	e.mu.Unlock()

	if unsubLocal != nil {
		unsubLocal()
	}
	if unsubRemote != nil {
		unsubRemote()
	}
}

// applyRemote replaces local state with a remote document without
// triggering a write-back echo.
func (e *Engine) applyRemote(d userdata.Data) {
	e.applyingRemote.Store(true)
	defer e.applyingRemote.Store(false)
	e.store.Replace(d)
}

// onRemoteChange handles a pushed document update. Pushes that arrive
// while our own write-back is in flight are echoes of (or older than)
// local state and are dropped, so a rapid local mutation is never
// clobbered by its own write.
func (e *Engine) onRemoteChange(d userdata.Data) {
	e.writeMu.Lock()
	writing := e.writing || e.pending
	e.writeMu.Unlock()
	if writing {
		return
	}
	e.applyRemote(d)
	e.setStatus(Status{Online: true})
}

// onLocalChange schedules a write-back for any local mutation.
func (e *Engine) onLocalChange(userdata.Data) {
	if e.applyingRemote.Load() {
		return
	}
	e.scheduleWrite()
}

// scheduleWrite starts the write-back loop, or marks another pass if
// one is already running. Consecutive mutations coalesce: at most one
// write in flight and one pending, and the loop always re-reads the
// store, so the final in-memory state is always the last thing written.
func (e *Engine) scheduleWrite() {
	e.writeMu.Lock()
	if e.writing {
		e.pending = true
		e.writeMu.Unlock()
		return
	}
	e.writing = true
	e.writeMu.Unlock()

	e.wg.Add(1)
	go e.writeLoop()
}

func (e *Engine) writeLoop() {
	defer e.wg.Done()
	for {
		e.mu.Lock()
		accountID := e.accountID
		e.mu.Unlock()
		if accountID == "" {
			e.writeMu.Lock()
			e.writing, e.pending = false, false
			e.writeMu.Unlock()
			return
		}

		err := e.client.Write(context.Background(), accountID, e.store.Get())
		switch {
		case err == nil:
			e.setStatus(Status{Online: true})
		case docstore.Unavailable(err):
			e.setStatus(Status{Online: false, Message: msgWriteAtRisk})
		default:
			e.setStatus(Status{Online: false, Message: msgSaveFailed})
		}

		e.writeMu.Lock()
		if e.pending {
			e.pending = false
			e.writeMu.Unlock()
			continue
		}
		e.writing = false
		e.writeMu.Unlock()
		return
	}
}

func (e *Engine) setStatus(s Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
}
