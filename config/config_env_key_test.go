package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"store": map[string]any{
			"dsn":    "",
			"schema": "PIZZALIB",
		},
		"env": map[string]any{
			"serviceName": "pizzeria",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "STORE_DSN", want: "store.dsn"},
		{envKey: "STORE_SCHEMA", want: "store.schema"},
		{envKey: "ENV_SERVICENAME", want: "env.serviceName"},
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
