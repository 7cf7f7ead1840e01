package useragent

import (
	"fmt"
	"os"
	"strings"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

// Device types reported by Classify.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
	DeviceUnknown = "unknown"
)

// Parser classifies User-Agent strings into coarse device types.
type Parser struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

var (
	botMarkers = []string{
		"googlebot", "bingbot", "slurp", "duckduckbot", "baiduspider",
		"yandexbot", "facebookexternalhit", "twitterbot", "linkedinbot",
		"whatsapp", "telegram", "skypeuripreview", "bot", "crawler",
		"spider", "scraper", "headlesschrome",
	}
	tabletDevices = []string{"ipad", "tablet", "kindle", "surface"}
	mobileDevices = []string{"iphone", "android", "blackberry", "windows phone", "mobile", "phone"}
	mobileOS      = []string{"ios", "android", "windows phone", "blackberry os", "firefox os", "sailfish os"}
	desktopOS     = []string{"windows", "mac os x", "macos", "linux", "ubuntu", "chrome os", "freebsd", "openbsd", "netbsd"}
)

// NewParser loads regexes from regexFilePath. When the file is missing the
// definitions bundled with uap-go are used instead.
func NewParser(regexFilePath string, log *zap.Logger) (*Parser, error) {
	if regexFilePath != "" {
		if _, err := os.Stat(regexFilePath); err == nil {
			regexBytes, err := os.ReadFile(regexFilePath)
			if err != nil {
				return nil, fmt.Errorf("failed to read regexes file: %w", err)
			}
			p, err := uaparser.NewFromBytes(regexBytes)
			if err != nil {
				return nil, fmt.Errorf("failed to create User-Agent parser from %s: %w", regexFilePath, err)
			}
			log.Info("User-Agent parser initialized", zap.String("regexes_file", regexFilePath))
			return &Parser{parser: p, log: log}, nil
		}
		log.Warn("regexes file not found, using bundled definitions", zap.String("regexes_file", regexFilePath))
	}

	return &Parser{parser: uaparser.NewFromSaved(), log: log}, nil
}

// Classify returns the device type for userAgent.
func (p *Parser) Classify(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return DeviceUnknown
	}

	device := deviceType(p.parser.Parse(userAgent), userAgent)
	p.log.Debug("classified User-Agent", zap.String("device_type", device))
	return device
}

func deviceType(client *uaparser.Client, userAgent string) string {
	ua := strings.ToLower(userAgent)
	uaFamily := strings.ToLower(client.UserAgent.Family)
	if containsAny(uaFamily, botMarkers) || containsAny(ua, botMarkers) || client.Device.Family == "Spider" {
		return DeviceBot
	}

	device := strings.ToLower(client.Device.Family)
	if device != "" && device != "other" {
		if containsAny(device, tabletDevices) {
			return DeviceTablet
		}
		if containsAny(device, mobileDevices) {
			return DeviceMobile
		}
	}

	osFamily := strings.ToLower(client.Os.Family)
	if containsAny(osFamily, mobileOS) {
		switch {
		case strings.Contains(osFamily, "ios") && strings.Contains(ua, "ipad"):
			return DeviceTablet
		case strings.Contains(osFamily, "android") && !strings.Contains(ua, "mobile"):
			// Android tablets do not send "Mobile"
			return DeviceTablet
		}
		return DeviceMobile
	}

	if containsAny(osFamily, desktopOS) {
		return DeviceDesktop
	}
	return DeviceUnknown
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
