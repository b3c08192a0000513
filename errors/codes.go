package errors

// ErrorCode is the machine-readable code carried by every AppError
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003
	ErrorCode_CONFIG_MISSING   ErrorCode = 1004

	// Projects
	ErrorCode_PROJECT_NOT_FOUND ErrorCode = 2000

	// Sync pipeline
	ErrorCode_SYNC_FAILED              ErrorCode = 3000
	ErrorCode_TRANSCRIPT_SOURCE_FAILED ErrorCode = 3001
	ErrorCode_PUBLISH_FAILED           ErrorCode = 3002

	// AI
	ErrorCode_AI_COMPLETION_FAILED   ErrorCode = 4000
	ErrorCode_AI_SERVICE_UNAVAILABLE ErrorCode = 4001

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 5000
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 5001
	ErrorCode_INTEGRATION_SEARCH_FAILED       ErrorCode = 5002
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 5003

	// Database
	ErrorCode_DB_CONNECTION_FAILED  ErrorCode = 6000
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 6001
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 6002
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "HTTP_OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_CONFIG_MISSING:                  "CONFIG_MISSING",
	ErrorCode_PROJECT_NOT_FOUND:               "PROJECT_NOT_FOUND",
	ErrorCode_SYNC_FAILED:                     "SYNC_FAILED",
	ErrorCode_TRANSCRIPT_SOURCE_FAILED:        "TRANSCRIPT_SOURCE_FAILED",
	ErrorCode_PUBLISH_FAILED:                  "PUBLISH_FAILED",
	ErrorCode_AI_COMPLETION_FAILED:            "AI_COMPLETION_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:          "AI_SERVICE_UNAVAILABLE",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_SEARCH_FAILED:       "INTEGRATION_SEARCH_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:            "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:           "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
