package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// TransformResponse represents the result of a transform request
type TransformResponse struct {
	RequestID string       `json:"request_id"`
	Series    []TimeSeries `json:"series"`
	Count     int          `json:"count"`
}

// FunctionsResponse lists the supported step functions and aggregations
type FunctionsResponse struct {
	Functions    []string `json:"functions"`
	Aggregations []string `json:"aggregations"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
