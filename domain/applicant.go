package domain

// ApplicantRecord is the raw per-request input: a loose mapping from field
// name to a scalar value (number, string, bool or nil). It carries no
// identity beyond the request and is never mutated by the engine.
type ApplicantRecord map[string]any
