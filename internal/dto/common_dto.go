package dto

import "fmt"

// NotFoundError reports a missing resource, mapped to 404 by the error
// handler middleware.
type NotFoundError struct {
	Resource string `json:"resource"`
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}
