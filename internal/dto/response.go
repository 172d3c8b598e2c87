package dto

// Response is the envelope for successful single-resource responses
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse is the envelope for paginated lists
type ListResponse struct {
	Success    bool        `json:"success"`
	Count      int         `json:"count"`
	Page       int         `json:"page"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"totalPages"`
	Data       interface{} `json:"data"`
}

// OK wraps data in a success envelope
func OK(data interface{}) Response {
	return Response{Success: true, Data: data}
}

// OKMessage is a success envelope carrying only a message
func OKMessage(message string) Response {
	return Response{Success: true, Message: message}
}
