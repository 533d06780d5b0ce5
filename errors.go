package doceval

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidArgument indicates an unsupported option value, such as an
	// unknown output type or grouping. It is returned before any file is read.
	ErrInvalidArgument = errors.New("doceval: invalid argument")

	// ErrInvalidGroupingColumn indicates the table to group is empty, lacks the
	// grouping column, or has no values in it.
	ErrInvalidGroupingColumn = errors.New("doceval: invalid grouping column")

	// ErrEmptyTable indicates a table with no rows.
	ErrEmptyTable = errors.New("doceval: empty table")

	// ErrNoDocuments indicates no prediction could be paired with a gold standard.
	ErrNoDocuments = errors.New("doceval: no documents to evaluate")
)
