package models

// ItemSubmission is a new item headed for the remote add-item endpoint.
type ItemSubmission struct {
	Name     string `validate:"required,max=100"`
	Category string `validate:"required,ne=All"`
	Image    []byte `validate:"required,gt=0"`
}

// SubmissionResult is the response body of the add-item endpoint.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
