package models

type Response struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message,omitempty"`
	Error         string         `json:"error,omitempty"`
	Data          interface{}    `json:"data,omitempty"`
	Notifications []Notification `json:"notifications,omitempty"`
	Redirect      string         `json:"redirect,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// WithNotifications attaches the notifications raised while serving the
// request.
func (r Response) WithNotifications(n []Notification) Response {
	r.Notifications = n
	return r
}

func (r Response) WithRedirect(path string) Response {
	r.Redirect = path
	return r
}
