package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"scheduler": map[string]any{
			"cronSpec":        "* * * * *",
			"defaultTimezone": "America/Bogota",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SCHEDULER_CRONSPEC", want: "scheduler.cronSpec"},
		{envKey: "SCHEDULER_DEFAULTTIMEZONE", want: "scheduler.defaultTimezone"},
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

func TestApplyDefaults_FillsSchedulerAndNotification(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Scheduler.CronSpec != defaultCronSpec {
		t.Fatalf("CronSpec = %q, want %q", cfg.Scheduler.CronSpec, defaultCronSpec)
	}
	if cfg.Scheduler.DefaultTimezone != defaultTimezone {
		t.Fatalf("DefaultTimezone = %q, want %q", cfg.Scheduler.DefaultTimezone, defaultTimezone)
	}
	if cfg.Scheduler.DispatchBatchSize != defaultDispatchBatch {
		t.Fatalf("DispatchBatchSize = %d, want %d", cfg.Scheduler.DispatchBatchSize, defaultDispatchBatch)
	}
	if cfg.Notification.Title != defaultPushTitle {
		t.Fatalf("Title = %q, want %q", cfg.Notification.Title, defaultPushTitle)
	}
}
