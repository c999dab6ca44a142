// Package remotesim is a stand-in for the device's HTTP service, used for
// local development and end-to-end tests of the client.
package remotesim

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/five82/coolctl/internal/auth"
	"github.com/five82/coolctl/internal/logging"
)

// Device is the simulated appliance state.
type Device struct {
	mu       sync.Mutex
	online   bool
	last     map[string]any
	commands int
}

// NewDevice returns a device in the given connectivity state.
func NewDevice(online bool) *Device {
	return &Device{online: online}
}

// SetOnline flips the simulated connectivity.
func (d *Device) SetOnline(online bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.online = online
}

// Online reports the simulated connectivity.
func (d *Device) Online() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.online
}

// LastCommand returns the most recent accepted schedule and how many commands
// were accepted in total.
func (d *Device) LastCommand() (map[string]any, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.commands
}

func (d *Device) apply(intervals map[string]any) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.online {
		return false
	}
	d.last = intervals
	d.commands++
	return true
}

type commandRequest struct {
	Intervals map[string]any `json:"intervals" binding:"required"`
}

// NewRouter serves GET /status and POST /command behind basic auth for the
// admin user with the given password.
func NewRouter(dev *Device, password string, log *logging.Logger) *gin.Engine {
	if log == nil {
		log = logging.Nop()
	}
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), requestLogger(log))
	r.Use(gin.BasicAuth(gin.Accounts{auth.Username: password}))

	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"online": dev.Online()})
	})

	r.POST("/command", func(c *gin.Context) {
		var req commandRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !dev.apply(req.Intervals) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "device offline"})
			return
		}
		log.Infow("command accepted", "intervals", req.Intervals)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func requestLogger(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(started),
		)
	}
}
