package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteEventName(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"PUT", "/api/v1/companies/:company_id/journal-entries/:entry_id", "journal_entries_put"},
		{"POST", "/api/v1/companies/:company_id/journal-entries/:entry_id/generate-lines", "journal_entries_generate_lines_post"},
		{"GET", "/api/v1/companies/:company_id/journal-entries/:entry_id/audit/verify", "journal_entries_audit_verify_get"},
		{"GET", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, routeEventName(tt.method, tt.path), tt.path)
	}
}
