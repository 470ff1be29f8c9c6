package canvas

import "errors"

// ErrMalformedPayload indicates a finalized payload that is not valid JSON.
// No scene mutation happens; the caller relays the parse error back to the
// model for a retry.
var ErrMalformedPayload = errors.New("malformed element payload")

// ErrCheckpointNotFound indicates a restoreCheckpoint directive referencing
// an unknown id. The prior checkpoint, if any, is untouched; the caller is
// expected to tell the model to restart from scratch.
var ErrCheckpointNotFound = errors.New("unknown checkpoint")
