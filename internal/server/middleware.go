package server

import "github.com/gin-gonic/gin"

// QuoteRateLimit throttles the public quote endpoint per client address.
// The limiter fails open: a redis outage must not take quoting down.
func (s *Server) QuoteRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.quoteLimiter.Enabled() {
			c.Next()
			return
		}

		allowed, err := s.quoteLimiter.AllowClient(c.Request.Context(), c.ClientIP())
		if err == nil && !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
