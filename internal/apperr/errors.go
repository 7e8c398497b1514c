package apperr

import "errors"

var (
	// ErrSessionNotFound indicates the session key is absent or its TTL expired.
	ErrSessionNotFound = errors.New("session not found or expired")

	// ErrOwnershipViolation indicates the session exists but belongs to another user.
	// Kept distinct from ErrSessionNotFound so clients can react correctly.
	ErrOwnershipViolation = errors.New("session does not belong to user")

	// ErrStoreUnavailable indicates the session backing store is unreachable or timed out.
	ErrStoreUnavailable = errors.New("session store unavailable")

	// ErrRetrievalUnavailable indicates the vector store or embedding backend failed.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")

	// ErrLLMUnavailable indicates the answer generation backend failed.
	ErrLLMUnavailable = errors.New("llm unavailable")
)
