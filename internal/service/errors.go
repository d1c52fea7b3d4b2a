package service

import "fmt"

// InvalidInputError signals a caller-fault precondition failure, such as a
// blank api key name. Never retried.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

func NewInvalidInputError(message string) *InvalidInputError {
	return &InvalidInputError{Message: message}
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ConflictError signals that a caller-supplied api key value collides with an
// existing record. Generated values are retried instead of surfacing this.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// KeyAllocationError signals that generation could not produce a unique api
// key value within the allowed attempts.
type KeyAllocationError struct {
	Attempts int
}

func (e *KeyAllocationError) Error() string {
	return fmt.Sprintf("could not allocate a unique api key in %d attempts", e.Attempts)
}

func NewKeyAllocationError(attempts int) *KeyAllocationError {
	return &KeyAllocationError{Attempts: attempts}
}

// InvalidRepoURLError signals a github url that is not of the form
// https://github.com/owner/repo.
type InvalidRepoURLError struct {
	URL string
}

func (e *InvalidRepoURLError) Error() string {
	return fmt.Sprintf("invalid github repository url %q", e.URL)
}

func NewInvalidRepoURLError(url string) *InvalidRepoURLError {
	return &InvalidRepoURLError{URL: url}
}

// ReadmeNotFoundError signals that none of the known readme file names exist
// in the target repository.
type ReadmeNotFoundError struct {
	Owner string
	Repo  string
}

func (e *ReadmeNotFoundError) Error() string {
	return fmt.Sprintf("no readme found in %s/%s", e.Owner, e.Repo)
}

func NewReadmeNotFoundError(owner, repo string) *ReadmeNotFoundError {
	return &ReadmeNotFoundError{Owner: owner, Repo: repo}
}

// UpstreamError signals that the repository host was unreachable or rejected
// the request. Never reported as an authorization failure.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewUpstreamError(message string, err error) *UpstreamError {
	return &UpstreamError{Message: message, Err: err}
}
