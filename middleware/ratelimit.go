package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limiting tiers matching the original storefront deployment:
// 100 requests per 15 minutes for the API at large, 5 login attempts per
// 15 minutes, 10 payment calls per minute.
func GeneralLimiter() gin.HandlerFunc {
	return RateLimit(15*time.Minute, 100)
}

func AuthLimiter() gin.HandlerFunc {
	return RateLimit(15*time.Minute, 5)
}

func PaymentLimiter() gin.HandlerFunc {
	return RateLimit(time.Minute, 10)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit allows burst requests per window for each client IP, refilling
// continuously rather than on window boundaries.
func RateLimit(window time.Duration, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)
	limit := rate.Every(window / time.Duration(burst))

	prune := func(now time.Time) {
		for ip, v := range visitors {
			if now.Sub(v.lastSeen) > 2*window {
				delete(visitors, ip)
			}
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(limit, burst)}
			visitors[ip] = v
			if len(visitors) > 10000 {
				prune(now)
			}
		}
		v.lastSeen = now
		allowed := v.limiter.Allow()
		mu.Unlock()

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests from this IP, please try again later.",
			})
			return
		}
		c.Next()
	}
}
