package api

import "lendly/internal/pkg/errs"

// errMissingIdentity only fires when a route skips the identity middleware.
var errMissingIdentity = errs.New("caller identity missing from context")
