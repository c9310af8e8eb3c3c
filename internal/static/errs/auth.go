package errs

import "errors"

var InvalidCredentials = errors.New("invalid credentials")

var (
	InternalError      = errors.New("internal error")
	GeneratingToken    = errors.New("error generating token")
	EmailRequired      = errors.New("email is required")
	EmailNotVerified   = errors.New("email is not verified")
	ShouldUseWorkEmail = errors.New("please use your company email")
	AccessCodeRequired = errors.New("Please enter an access code")
	InvalidAccessCode  = errors.New("Invalid access code")
	NoAccessCodes      = errors.New("no access codes configured")
)
