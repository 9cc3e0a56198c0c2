/*
Package server exposes a phrase matcher over msgpack IPC and HTTP.

# IPC

Clients write msgpack-encoded requests to stdin and read one msgpack
response per request from stdout. The first message the server writes is

	{"status": "ready"}

Every request names an action and carries an ID that is echoed back:

	{"id": "r1", "action": "add", "key": 101, "text": "summer"}
	{"id": "r2", "action": "add_batch", "entries": {"102": "summer fun", "106": "very good"}}
	{"id": "r3", "action": "match", "text": "Summer fun is very     good"}
	{"id": "r4", "action": "partial", "text": "summer "}
	{"id": "r5", "action": "remove", "key": 101}
	{"id": "r6", "action": "remove_batch", "keys": [102, 106]}
	{"id": "r7", "action": "list", "text": "sum"}
	{"id": "r8", "action": "stats"}
	{"id": "r9", "action": "health"}

A match answers with resolved spans, start and end being inclusive rune
offsets:

	{"id": "r3", "status": "ok", "matches": [{"s": 0, "e": 9, "k": [102]}, {"s": 14, "e": 26, "k": [106]}], "count": 2, "t": 38}

Failures carry a status code: 400 for a malformed or unknown request, 413
for an oversized text, 422 for a text with characters outside the
configured alphabet.

# HTTP

The same operations are served as JSON by NewHTTPHandler, with Prometheus
metrics on /metrics.
*/
package server

import (
	"github.com/bastiangx/phrasematch/pkg/textmatch"
)

// Actions understood by Handle.
const (
	ActionAdd         = "add"
	ActionAddBatch    = "add_batch"
	ActionRemove      = "remove"
	ActionRemoveBatch = "remove_batch"
	ActionMatch       = "match"
	ActionPartial     = "partial"
	ActionList        = "list"
	ActionStats       = "stats"
	ActionHealth      = "health"
)

// Status codes carried in failed responses.
const (
	CodeBadRequest    = 400
	CodeNotFound      = 404
	CodeTooLarge      = 413
	CodeUnsupported   = 422
	CodeInternalError = 500
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request is one client message.
type Request struct {
	ID      string         `msgpack:"id"`
	Action  string         `msgpack:"action"`
	Key     int            `msgpack:"key,omitempty"`
	Keys    []int          `msgpack:"keys,omitempty"`
	Text    string         `msgpack:"text,omitempty"`
	Entries map[int]string `msgpack:"entries,omitempty"`
}

// Response answers one Request. Count is the number of results for queries,
// the number of stored or removed keys for mutations and the store size
// for stats. Cache carries the result cache counters on stats when the
// cache is enabled. TimeTaken is in microseconds.
type Response struct {
	ID        string                   `msgpack:"id" json:"id,omitempty"`
	Status    string                   `msgpack:"status" json:"status"`
	Error     string                   `msgpack:"error,omitempty" json:"error,omitempty"`
	Code      int                      `msgpack:"code,omitempty" json:"code,omitempty"`
	Matches   []textmatch.ExactMatch   `msgpack:"matches,omitempty" json:"matches,omitempty"`
	Partials  []textmatch.PartialMatch `msgpack:"partials,omitempty" json:"partials,omitempty"`
	Entries   []textmatch.Entry        `msgpack:"entries,omitempty" json:"entries,omitempty"`
	Count     int                      `msgpack:"count" json:"count"`
	Digest    uint64                   `msgpack:"digest,omitempty" json:"digest,omitempty"`
	Cache     map[string]int           `msgpack:"cache,omitempty" json:"cache,omitempty"`
	TimeTaken int64                    `msgpack:"t" json:"time_us"`
}

// Failed reports whether r carries an error.
func (r Response) Failed() bool {
	return r.Status == StatusError
}
