package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/ymatsui/kijun/internal/userdata"
)

var (
	// ErrNotFound indicates no document exists for the account.
	ErrNotFound = errors.New("account document not found")

	// ErrUnavailable indicates the store could not be reached. Callers
	// treat this as a connectivity problem, not a data problem.
	ErrUnavailable = errors.New("document store unavailable")
)

// Unavailable reports whether err is a connectivity failure as opposed
// to some other store error.
func Unavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Client is the per-account document store. One document per account,
// holding the full userdata.Data value. The store pushes document
// changes to subscribers in the order it applies them.
type Client interface {
	// Load reads the whole account document. Returns ErrNotFound when
	// the account has no document yet.
	Load(ctx context.Context, accountID string) (userdata.Data, error)

	// Write stores the document with field-level merge semantics:
	// fields carried by d are replaced, anything else the store holds
	// for the account is preserved.
	Write(ctx context.Context, accountID string, d userdata.Data) error

	// Subscribe registers onChange to receive every document update for
	// the account, including updates from this process's own writes.
	// The returned function cancels the subscription; it only stops
	// future callbacks and never aborts an in-flight write.
	Subscribe(accountID string, onChange func(userdata.Data)) (func(), error)
}

// LLMRequestEvent records one model API call for the request log.
type LLMRequestEvent struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
	Timestamp    time.Time
}

// EventLog is the append-only request log kept alongside the account
// documents.
type EventLog interface {
	AppendLLMRequest(ctx context.Context, ev LLMRequestEvent) error
}
