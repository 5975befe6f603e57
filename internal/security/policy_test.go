package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShieldPolicy(t *testing.T) {
	policy := NewShieldPolicy()

	tests := []struct {
		name   string
		path   string
		query  string
		denied bool
	}{
		{"clean path", "/api/users", "", false},
		{"clean query", "/api/users", "page=2", false},
		{"path traversal", "/api/../etc/passwd", "", true},
		{"encoded traversal", "/api/%2e%2e/secret", "", true},
		{"script injection in query", "/api/users", "name=<script>alert(1)</script>", true},
		{"sql injection in query", "/api/users", "q=1 union select password from users", true},
		{"null byte", "/api/users", "file=a%00.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := policy.Check(tt.path, tt.query)
			assert.Equal(t, tt.denied, decision.Denied)
			if tt.denied {
				assert.True(t, decision.Has(ReasonShield))
			}
		})
	}
}
