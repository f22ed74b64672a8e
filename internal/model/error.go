package model

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrorResponse is the body every failed API call carries.
type ErrorResponse struct {
	Success bool            `json:"success"`
	Error   ValidationError `json:"error"`
}
