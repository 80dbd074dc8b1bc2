package utils

import "github.com/gin-gonic/gin"

func ErrorResponse(message string) gin.H {
	return gin.H{
		"success": false,
		"message": message,
	}
}

// SuccessResponse wraps a message and an optional payload. Handlers serving
// the storefront return their documented shapes directly and use this only
// for acknowledgements.
func SuccessResponse(message string, data any) gin.H {
	res := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		res["data"] = data
	}
	return res
}
