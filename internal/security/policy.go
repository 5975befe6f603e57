package security

import "strings"

// Request shapes the shield treats as hostile regardless of caller. The
// list targets obvious traversal and injection probes, not full WAF
// coverage.
var shieldPatterns = []string{
	"../",
	"..\\",
	"%2e%2e",
	"<script",
	"%3cscript",
	"javascript:",
	" union select",
	"union+select",
	"%00",
	"\x00",
	"/etc/passwd",
}

// ShieldPolicy rejects requests whose path or query matches a known
// malicious shape.
type ShieldPolicy struct{}

// NewShieldPolicy constructs the static policy.
func NewShieldPolicy() *ShieldPolicy {
	return &ShieldPolicy{}
}

// Check inspects the request target.
func (p *ShieldPolicy) Check(path, query string) Decision {
	target := strings.ToLower(path)
	if query != "" {
		target += "?" + strings.ToLower(query)
	}

	for _, pattern := range shieldPatterns {
		if strings.Contains(target, pattern) {
			return deny(ReasonShield)
		}
	}
	return allow()
}
