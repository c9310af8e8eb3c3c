package errs

import "errors"

var (
	CodeAndLanguageRequired = errors.New("Code and language are required")
	InvalidSubmissionID     = errors.New("Invalid submission ID")
	SubmissionNotFound      = errors.New("Submission not found")
	MalformedSubmission     = errors.New("Failed to read submission")
)
