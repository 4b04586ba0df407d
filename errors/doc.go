/*
Package errors provides semantic error types for the docstore client.

The package defines common failure scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound           = errors.New("resource not found")
	    ErrConflict           = errors.New("resource already exists")
	    ErrPreconditionFailed = errors.New("precondition failed")
	    ErrInvalidInput       = errors.New("invalid input")
	    ErrInvalidKeyType     = errors.New("unsupported partition key type")
	    ErrBadCredential      = errors.New("bad credential")
	    ErrNotImplemented     = errors.New("not implemented")
	)

Usage:

	// Check error type
	item, err := container.ReadItem(ctx, "123", pk, nil)
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("item %s does not exist", "123")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewStatusError(409, "", "conflict on create")
	err := errors.NewValidationError("partitionKeyPaths", "must start with /")

Remote failures are carried by StatusError, whose Is method maps HTTP 404,
409 and 412 to ErrNotFound, ErrConflict and ErrPreconditionFailed. Classify
additionally recognizes those status codes embedded in the text of errors
raised beneath the executor; that inspection is best effort and documented
as a known weak point.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
