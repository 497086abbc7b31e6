package middlewares

import (
	"log"
	"net/http"
	"shareit/src/config"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Identity reads the caller id from the X-Sharer-User-Id header. No token or
// session check happens here: the header value is trusted as-is.
func Identity(ctx *gin.Context) {
	raw := ctx.Request.Header.Get(config.IdentityHeader)
	if raw == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + config.IdentityHeader + " header"})
		return
	}
	uid, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || uid == 0 {
		log.Printf("error parsing identity header: %q\n", raw)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + config.IdentityHeader + " header"})
		return
	}
	ctx.Set("id", uint(uid))
}
