package httpx

import "github.com/gin-gonic/gin"

// All handlers answer with the same envelope the frontend expects:
// {success, message, data?} on the happy path, {success:false, message} on
// failures, plus an error detail string for 5xx.

func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondErr(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

func respondInternal(c *gin.Context, message string, err error) {
	c.JSON(500, gin.H{"success": false, "message": message, "error": err.Error()})
}
