package cmd

import (
	"github.com/spf13/cobra"

	"github.com/codetrail/devtrack/models"
)

// itemFlags carries every field flag shared by add and update. Only
// flags the user actually set end up in the field map, so update stays
// a true partial merge.
type itemFlags struct {
	title       string
	description string
	status      string
	priority    string
	assignee    string
	tags        []string

	// feature
	epic        string
	storyPoints float64
	acceptance  []string

	// bug
	severity     string
	reproducible bool
	steps        []string
	environment  string
	resolution   string

	// task
	dueDate        string
	estimatedHours float64
	actualHours    float64
	subtasks       []string
}

func (f *itemFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.title, "title", "", "item title (required on add)")
	flags.StringVar(&f.description, "description", "", "item description")
	flags.StringVar(&f.status, "status", "", "item status (kind-specific)")
	flags.StringVar(&f.priority, "priority", "", "priority: low, medium, high, critical")
	flags.StringVar(&f.assignee, "assignee", "", "assignee")
	flags.StringSliceVar(&f.tags, "tags", nil, "comma-separated tags")

	flags.StringVar(&f.epic, "epic", "", "epic the feature belongs to")
	flags.Float64Var(&f.storyPoints, "story-points", 0, "story points (1-21)")
	flags.StringSliceVar(&f.acceptance, "acceptance", nil, "acceptance criteria")

	flags.StringVar(&f.severity, "severity", "", "bug severity: low, medium, high, critical")
	flags.BoolVar(&f.reproducible, "reproducible", false, "whether the bug is reproducible")
	flags.StringSliceVar(&f.steps, "steps", nil, "steps to reproduce")
	flags.StringVar(&f.environment, "environment", "", "environment the bug occurs in")
	flags.StringVar(&f.resolution, "resolution", "", "bug resolution")

	flags.StringVar(&f.dueDate, "due", "", "task due date (YYYY-MM-DD)")
	flags.Float64Var(&f.estimatedHours, "estimated-hours", 0, "estimated hours")
	flags.Float64Var(&f.actualHours, "actual-hours", 0, "actual hours")
	flags.StringSliceVar(&f.subtasks, "subtasks", nil, "subtask descriptions")
}

// collect builds a field map from the flags the user explicitly set.
func (f *itemFlags) collect(cmd *cobra.Command) map[string]any {
	fields := make(map[string]any)
	set := func(flag, key string, value any) {
		if cmd.Flags().Changed(flag) {
			fields[key] = value
		}
	}
	set("title", "title", f.title)
	set("description", "description", f.description)
	set("status", "status", f.status)
	set("priority", "priority", f.priority)
	set("assignee", "assignee", f.assignee)
	set("tags", "tags", f.tags)
	set("epic", "epic", f.epic)
	set("story-points", "storyPoints", f.storyPoints)
	set("acceptance", "acceptanceCriteria", f.acceptance)
	set("severity", "severity", f.severity)
	set("reproducible", "reproducible", f.reproducible)
	set("steps", "stepsToReproduce", f.steps)
	set("environment", "environment", f.environment)
	set("resolution", "resolution", f.resolution)
	set("due", "dueDate", f.dueDate)
	set("estimated-hours", "estimatedHours", f.estimatedHours)
	set("actual-hours", "actualHours", f.actualHours)
	set("subtasks", "subtasks", f.subtasks)
	return fields
}

// defaultStatus is the status a freshly created item gets when the
// caller does not supply one.
func defaultStatus(kind models.ItemKind) string {
	switch kind {
	case models.KindFeature:
		return string(models.FeatureBacklog)
	case models.KindBug:
		return string(models.BugOpen)
	case models.KindTask:
		return string(models.TaskTodo)
	}
	return ""
}

// applyCreateDefaults fills the fields the schema requires but a CLI
// caller can reasonably omit. Fields with no sensible default, such as
// a bug's environment, are left absent so validation reports them.
func applyCreateDefaults(kind models.ItemKind, fields map[string]any) {
	if _, ok := fields["description"]; !ok {
		fields["description"] = ""
	}
	if _, ok := fields["priority"]; !ok {
		fields["priority"] = string(models.PriorityMedium)
	}
	if _, ok := fields["status"]; !ok {
		fields["status"] = defaultStatus(kind)
	}
	switch kind {
	case models.KindFeature:
		if _, ok := fields["acceptanceCriteria"]; !ok {
			fields["acceptanceCriteria"] = []string{}
		}
	case models.KindBug:
		if _, ok := fields["stepsToReproduce"]; !ok {
			fields["stepsToReproduce"] = []string{}
		}
		if _, ok := fields["reproducible"]; !ok {
			fields["reproducible"] = false
		}
	case models.KindTask:
		if _, ok := fields["subtasks"]; !ok {
			fields["subtasks"] = []string{}
		}
	}
}
