// Package entity defines data structures used by the web layer of the condo panel.
package entity

import (
	"crypto/tls"
	"math"
	"net"
	"strings"
	"time"

	"condo-panel/util/common"
)

// Msg represents a standard API response message with success status, message text, and optional data object.
type Msg struct {
	Success bool   `json:"success"` // Indicates if the operation was successful
	Msg     string `json:"msg"`     // Response message text
	Obj     any    `json:"obj"`     // Optional data object
}

// AllSetting contains all configuration settings for the condo panel.
type AllSetting struct {
	// Web server settings
	WebListen     string `json:"webListen" form:"webListen"`         // Web server listen IP address
	WebDomain     string `json:"webDomain" form:"webDomain"`         // Web server domain for domain validation
	WebPort       int    `json:"webPort" form:"webPort"`             // Web server port number
	WebCertFile   string `json:"webCertFile" form:"webCertFile"`     // Path to SSL certificate file
	WebKeyFile    string `json:"webKeyFile" form:"webKeyFile"`       // Path to SSL private key file
	WebBasePath   string `json:"webBasePath" form:"webBasePath"`     // Base path for panel URLs
	SessionMaxAge int    `json:"sessionMaxAge" form:"sessionMaxAge"` // Session maximum age in minutes

	// UI settings
	PageSize int `json:"pageSize" form:"pageSize"` // Number of items per page in lists

	// Security settings
	TimeLocation    string `json:"timeLocation" form:"timeLocation"`       // Time zone used for display and cron
	TwoFactorEnable bool   `json:"twoFactorEnable" form:"twoFactorEnable"` // Enable TOTP for the sindico login
	TwoFactorToken  string `json:"twoFactorToken" form:"twoFactorToken"`   // TOTP shared secret

	// Maintenance settings
	BackupEnable bool   `json:"backupEnable" form:"backupEnable"` // Enable the database backup job
	BackupCron   string `json:"backupCron" form:"backupCron"`     // Cron schedule for database backups
}

// CheckValid validates the settings, checking IP addresses, ports, SSL
// certificates and other configuration values.
func (s *AllSetting) CheckValid() error {
	if s.WebListen != "" {
		ip := net.ParseIP(s.WebListen)
		if ip == nil {
			return common.NewError("web listen is not valid ip:", s.WebListen)
		}
	}

	if s.WebPort <= 0 || s.WebPort > math.MaxUint16 {
		return common.NewError("web port is not a valid port:", s.WebPort)
	}

	if s.WebCertFile != "" || s.WebKeyFile != "" {
		_, err := tls.LoadX509KeyPair(s.WebCertFile, s.WebKeyFile)
		if err != nil {
			return common.NewErrorf("cert file <%v> or key file <%v> invalid: %v", s.WebCertFile, s.WebKeyFile, err)
		}
	}

	if !strings.HasPrefix(s.WebBasePath, "/") {
		s.WebBasePath = "/" + s.WebBasePath
	}
	if !strings.HasSuffix(s.WebBasePath, "/") {
		s.WebBasePath += "/"
	}

	if s.SessionMaxAge <= 0 {
		return common.NewError("session max age must be positive:", s.SessionMaxAge)
	}

	_, err := time.LoadLocation(s.TimeLocation)
	if err != nil {
		return common.NewError("time location not exist:", s.TimeLocation)
	}

	return nil
}
