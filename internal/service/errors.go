package service

import (
	"errors"
	"fmt"
)

// ProviderError is a market-data provider failure: non-success HTTP status
// or malformed body. Callers on the opportunistic enrichment path recover
// from it; the dedicated agents surface it as a gateway failure.
type ProviderError struct {
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider status %d: %s", e.Status, e.Body)
}

// ModelError is an LLM server failure. Always surfaced to the caller.
type ModelError struct {
	Status int
	Body   string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("llm status %d: %s", e.Status, e.Body)
}

// ErrNoHistory means no stored conversation exists for the session.
var ErrNoHistory = errors.New("no chat history for session")

func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

func IsModelError(err error) bool {
	var me *ModelError
	return errors.As(err, &me)
}
