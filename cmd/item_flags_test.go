package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/codetrail/devtrack/models"
)

func parseItemFlags(t *testing.T, args []string) (*itemFlags, *cobra.Command) {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	flags := &itemFlags{}
	flags.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	return flags, cmd
}

func TestItemFlags_CollectOnlyChangedFlags(t *testing.T) {
	flags, cmd := parseItemFlags(t, []string{
		"--title", "Fix login",
		"--severity", "high",
		"--steps", "open page,click login",
		"--story-points", "5",
	})

	fields := flags.collect(cmd)

	if fields["title"] != "Fix login" {
		t.Errorf("title = %v, want Fix login", fields["title"])
	}
	if fields["severity"] != "high" {
		t.Errorf("severity = %v, want high", fields["severity"])
	}
	// Flag names map onto the record's field names.
	steps, ok := fields["stepsToReproduce"].([]string)
	if !ok || len(steps) != 2 {
		t.Errorf("stepsToReproduce = %v, want two entries", fields["stepsToReproduce"])
	}
	if fields["storyPoints"] != 5.0 {
		t.Errorf("storyPoints = %v, want 5", fields["storyPoints"])
	}

	// Untouched flags stay out of the map entirely.
	for _, absent := range []string{"description", "status", "priority", "environment", "dueDate"} {
		if _, present := fields[absent]; present {
			t.Errorf("Unset flag %q leaked into the field map", absent)
		}
	}
}

func TestItemFlags_CollectEmptyWhenNothingSet(t *testing.T) {
	flags, cmd := parseItemFlags(t, nil)
	if fields := flags.collect(cmd); len(fields) != 0 {
		t.Errorf("Expected empty field map, got %v", fields)
	}
}

func TestApplyCreateDefaults(t *testing.T) {
	cases := []struct {
		kind       models.ItemKind
		wantStatus string
		wantSlice  string
	}{
		{models.KindFeature, "backlog", "acceptanceCriteria"},
		{models.KindBug, "open", "stepsToReproduce"},
		{models.KindTask, "todo", "subtasks"},
	}

	for _, tc := range cases {
		fields := map[string]any{"title": "x"}
		applyCreateDefaults(tc.kind, fields)

		if fields["status"] != tc.wantStatus {
			t.Errorf("%s: status = %v, want %q", tc.kind, fields["status"], tc.wantStatus)
		}
		if fields["description"] != "" {
			t.Errorf("%s: description = %v, want empty string", tc.kind, fields["description"])
		}
		if fields["priority"] != string(models.PriorityMedium) {
			t.Errorf("%s: priority = %v, want medium", tc.kind, fields["priority"])
		}
		if _, ok := fields[tc.wantSlice]; !ok {
			t.Errorf("%s: %s should default to an empty slice", tc.kind, tc.wantSlice)
		}
		// No default for fields the user must supply themselves.
		if _, ok := fields["environment"]; ok {
			t.Errorf("%s: environment must not be defaulted", tc.kind)
		}
	}
}

func TestApplyCreateDefaults_KeepsExplicitValues(t *testing.T) {
	fields := map[string]any{
		"title":    "x",
		"status":   "in-progress",
		"priority": "critical",
		"subtasks": []string{"a"},
	}
	applyCreateDefaults(models.KindTask, fields)

	if fields["status"] != "in-progress" {
		t.Errorf("status overwritten: %v", fields["status"])
	}
	if fields["priority"] != "critical" {
		t.Errorf("priority overwritten: %v", fields["priority"])
	}
	if subtasks := fields["subtasks"].([]string); len(subtasks) != 1 {
		t.Errorf("subtasks overwritten: %v", fields["subtasks"])
	}
}
