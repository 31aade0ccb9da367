package middleware

import (
	"net/http"

	"github.com/01moynul/travelsite/internal/auth"
	"github.com/01moynul/travelsite/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Maintenance closes the public storefront while settings.maintenanceMode is
// on. Requests with a valid admin session still pass so the site can be
// previewed.
func Maintenance(db *gorm.DB, sessions *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.Settings
		// A missing settings row means maintenance is off.
		err := db.WithContext(c.Request.Context()).Select("maintenance_mode").First(&settings, 1).Error
		if err != nil || !settings.MaintenanceMode {
			c.Next()
			return
		}

		if Authenticate(c, db, sessions) != nil {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
			"error": "The site is currently under maintenance. Please try again later.",
		})
	}
}
