// Package labelapitest provides an in-memory annotation backend for tests.
package labelapitest
