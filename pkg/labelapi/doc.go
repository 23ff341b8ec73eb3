// Package labelapi is a client for the annotation backend.
//
// The backend owns RTTM parsing, audio and persistence. This package only
// speaks its HTTP contract: form or JSON requests in, JSON documents out, with
// failures reported as a JSON object carrying an "error" message.
package labelapi
