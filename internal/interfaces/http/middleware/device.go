package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sidequest/backend/internal/infrastructure/logger"
)

const (
	// DeviceIDHeader carries the client device identifier. Read state
	// is tracked per device, so each installed client sends a stable ID.
	DeviceIDHeader = "X-Device-ID"
	// ContextKeyDeviceID is the context key for the device ID
	ContextKeyDeviceID = "device_id"
	// DefaultDeviceID is used when a client does not identify its device
	DefaultDeviceID = "default"
)

// DeviceID extracts the device identifier from the request headers
func DeviceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(DeviceIDHeader)
		if deviceID == "" {
			deviceID = DefaultDeviceID
		}
		c.Set(ContextKeyDeviceID, deviceID)
		c.Request = c.Request.WithContext(logger.WithDeviceID(c.Request.Context(), deviceID))
		c.Next()
	}
}

// GetDeviceID retrieves the device ID from the request context
func GetDeviceID(c *gin.Context) string {
	if value, exists := c.Get(ContextKeyDeviceID); exists {
		if deviceID, ok := value.(string); ok && deviceID != "" {
			return deviceID
		}
	}
	return DefaultDeviceID
}
