package security

import "strings"

// Legitimate non-browser clients that must not be classified as bots.
// Mirrors the allow list used for development and test tooling.
var defaultBotAllowList = []string{
	"postman",
	"insomnia",
	"httpie",
	"rest client",
	"thunder client",
	"curl",
	"wget",
	"supertest",
	"node",
	"go-http-client",
	"fetch",
	"chrome",
	"firefox",
	"safari",
	"edge",
	"mozilla",
	"googlebot",
	"bingbot",
}

var botSignatures = []string{
	"bot",
	"crawler",
	"spider",
	"scraper",
	"python-requests",
	"java/",
	"libwww",
	"headless",
	"phantomjs",
	"selenium",
}

// BotDetector classifies requests by user agent. A missing user agent or
// a known automation signature denies unless the agent is allow-listed.
type BotDetector struct {
	allowList []string
}

// NewBotDetector builds a detector; extra entries extend the default
// allow list.
func NewBotDetector(extraAllowed ...string) *BotDetector {
	allowed := make([]string, 0, len(defaultBotAllowList)+len(extraAllowed))
	allowed = append(allowed, defaultBotAllowList...)
	for _, entry := range extraAllowed {
		allowed = append(allowed, strings.ToLower(entry))
	}
	return &BotDetector{allowList: allowed}
}

// Check returns a bot denial or an allow for the given user agent.
func (d *BotDetector) Check(userAgent string) Decision {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return deny(ReasonBot)
	}

	for _, allowed := range d.allowList {
		if strings.Contains(ua, allowed) {
			return allow()
		}
	}

	for _, signature := range botSignatures {
		if strings.Contains(ua, signature) {
			return deny(ReasonBot)
		}
	}

	return allow()
}
