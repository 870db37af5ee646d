package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// UserIdentity reads the acting user's id from the X-User-Id header. The
// gateway authenticates the user and sets the header; this service trusts it.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.GetHeader("X-User-Id"), 10, 64)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "missing or invalid user id", fmt.Errorf("invalid X-User-Id header"))
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
