package schema

import (
	"strings"
	"testing"

	"github.com/codetrail/devtrack/models"
)

func validItem(kind models.ItemKind) map[string]any {
	base := map[string]any{
		"id":          "1756600000000000000-a1b2c3d4",
		"type":        string(kind),
		"title":       "Example item",
		"description": "An example record",
		"priority":    "medium",
		"tags":        []string{"example"},
		"createdAt":   "2026-08-30T10:00:00Z",
		"updatedAt":   "2026-08-30T10:00:00Z",
	}
	switch kind {
	case models.KindFeature:
		base["status"] = "backlog"
		base["acceptanceCriteria"] = []string{"does the thing"}
	case models.KindBug:
		base["status"] = "open"
		base["severity"] = "low"
		base["reproducible"] = true
		base["stepsToReproduce"] = []string{"run it"}
		base["environment"] = "linux"
	case models.KindTask:
		base["status"] = "todo"
		base["subtasks"] = []string{}
	}
	return base
}

func TestValidateItem_Valid(t *testing.T) {
	for _, kind := range models.Kinds() {
		res := ValidateItem(kind, validItem(kind))
		if !res.Valid {
			t.Errorf("Valid %s rejected: %v", kind, res.Errors)
		}
	}
}

func TestValidateItem_MissingRequired(t *testing.T) {
	item := validItem(models.KindBug)
	delete(item, "environment")

	res := ValidateItem(models.KindBug, item)
	if res.Valid {
		t.Fatal("Bug without environment should fail validation")
	}
	found := false
	for _, fe := range res.Errors {
		if strings.Contains(fe.Message, "environment") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected an error naming the missing field, got %v", res.Errors)
	}
}

func TestValidateItem_EnumViolation(t *testing.T) {
	item := validItem(models.KindFeature)
	item["status"] = "shipped"

	res := ValidateItem(models.KindFeature, item)
	if res.Valid {
		t.Error("Feature with unknown status should fail validation")
	}
}

func TestValidateItem_WrongTypeConstant(t *testing.T) {
	item := validItem(models.KindTask)
	item["type"] = "bug"

	res := ValidateItem(models.KindTask, item)
	if res.Valid {
		t.Error("Task declaring type bug should fail the task schema")
	}
}

func TestValidateItem_StoryPointsRange(t *testing.T) {
	item := validItem(models.KindFeature)
	item["storyPoints"] = 34

	res := ValidateItem(models.KindFeature, item)
	if res.Valid {
		t.Error("storyPoints above the allowed maximum should fail validation")
	}

	item["storyPoints"] = 8
	if res := ValidateItem(models.KindFeature, item); !res.Valid {
		t.Errorf("storyPoints within range rejected: %v", res.Errors)
	}
}

func TestValidateItem_MalformedTimestamp(t *testing.T) {
	item := validItem(models.KindBug)
	item["createdAt"] = "yesterday"

	res := ValidateItem(models.KindBug, item)
	if res.Valid {
		t.Error("Non-RFC3339 createdAt should fail validation")
	}
}

func TestValidateItem_TitleLength(t *testing.T) {
	item := validItem(models.KindTask)
	item["title"] = ""

	if res := ValidateItem(models.KindTask, item); res.Valid {
		t.Error("Empty title should fail validation")
	}

	item["title"] = strings.Repeat("x", 201)
	if res := ValidateItem(models.KindTask, item); res.Valid {
		t.Error("Title above 200 characters should fail validation")
	}
}

func TestValidateItem_UnknownKind(t *testing.T) {
	res := ValidateItem(models.ItemKind("epic"), map[string]any{})
	if res.Valid {
		t.Error("Unknown kind should fail validation")
	}
}

func TestValidateItem_NonJSONValue(t *testing.T) {
	res := ValidateItem(models.KindTask, make(chan int))
	if res.Valid {
		t.Error("Unmarshalable value should fail validation, not panic")
	}
}

func TestValidateProject_Valid(t *testing.T) {
	doc := map[string]any{
		"features": []any{validItem(models.KindFeature)},
		"bugs":     []any{},
		"tasks":    []any{validItem(models.KindTask)},
		"metadata": map[string]any{
			"projectName": "demo",
			"version":     "1.0.0",
			"lastUpdated": "2026-08-30T10:00:00Z",
		},
	}
	if res := ValidateProject(doc); !res.Valid {
		t.Errorf("Valid project rejected: %v", res.Errors)
	}
}

func TestValidateProject_ReportsNestedPath(t *testing.T) {
	bad := validItem(models.KindFeature)
	bad["storyPoints"] = -3
	doc := map[string]any{
		"features": []any{validItem(models.KindFeature), bad},
		"bugs":     []any{},
		"tasks":    []any{},
		"metadata": map[string]any{
			"projectName": "demo",
			"version":     "1.0.0",
			"lastUpdated": "2026-08-30T10:00:00Z",
		},
	}

	res := ValidateProject(doc)
	if res.Valid {
		t.Fatal("Project with an invalid nested item should fail validation")
	}
	found := false
	for _, fe := range res.Errors {
		if strings.HasPrefix(fe.Path, "features.1") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected an error path under features.1, got %v", res.Errors)
	}
}

func TestValidateProject_MissingCollections(t *testing.T) {
	doc := map[string]any{
		"features": []any{},
		"metadata": map[string]any{
			"projectName": "demo",
			"version":     "1.0.0",
			"lastUpdated": "2026-08-30T10:00:00Z",
		},
	}
	if res := ValidateProject(doc); res.Valid {
		t.Error("Project missing bugs and tasks collections should fail validation")
	}
}

func TestPointerToPath(t *testing.T) {
	cases := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"/features/2/storyPoints", "features.2.storyPoints"},
		{"/metadata/projectName", "metadata.projectName"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tc := range cases {
		if got := pointerToPath(tc.ptr); got != tc.want {
			t.Errorf("pointerToPath(%q) = %q, want %q", tc.ptr, got, tc.want)
		}
	}
}
