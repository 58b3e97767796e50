package middleware

import "net/http"

// ResponseRecorder wraps ResponseWriter and captures the status code and bytes written.
type ResponseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

// NewResponseRecorder wraps w with a default status of 200.
func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rw *ResponseRecorder) WriteHeader(statusCode int) {
	rw.status = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *ResponseRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Status returns the recorded status code.
func (rw *ResponseRecorder) Status() int { return rw.status }

// BytesWritten returns the response body size.
func (rw *ResponseRecorder) BytesWritten() int { return rw.bytes }

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *ResponseRecorder) Unwrap() http.ResponseWriter { return rw.ResponseWriter }
