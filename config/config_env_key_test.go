package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"dbName":  "vidtube",
		},
		"secretKey": map[string]any{
			"access":     "",
			"accessTTL":  "",
			"refreshTTL": "",
		},
		"auth": map[string]any{
			"bcryptCost": 10,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_DBNAME", want: "postgres.dbName"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "SECRETKEY_ACCESSTTL", want: "secretKey.accessTTL"},
		{envKey: "AUTH_BCRYPTCOST", want: "auth.bcryptCost"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
