package models

import (
	"testing"
)

func sampleData() *ProjectData {
	data := NewProjectData("demo")
	data.Features = append(data.Features, Feature{
		BaseItem: BaseItem{ID: "f-1", Type: KindFeature, Title: "Feature one"},
		Status:   FeatureBacklog,
	})
	data.Bugs = append(data.Bugs, Bug{
		BaseItem: BaseItem{ID: "b-1", Type: KindBug, Title: "Bug one"},
		Status:   BugOpen,
	})
	data.Tasks = append(data.Tasks,
		Task{BaseItem: BaseItem{ID: "t-1", Type: KindTask, Title: "Task one"}, Status: TaskTodo},
		Task{BaseItem: BaseItem{ID: "t-2", Type: KindTask, Title: "Task two"}, Status: TaskBlocked},
	)
	return data
}

func TestNewProjectData(t *testing.T) {
	data := NewProjectData("demo")
	if data.Metadata.ProjectName != "demo" {
		t.Errorf("ProjectName = %q, want demo", data.Metadata.ProjectName)
	}
	if data.Metadata.Version != DataVersion {
		t.Errorf("Version = %q, want %q", data.Metadata.Version, DataVersion)
	}
	if data.Metadata.LastUpdated.IsZero() {
		t.Error("LastUpdated should be stamped")
	}
	// Collections must be non-nil so the aggregate serializes as [], not null.
	if data.Features == nil || data.Bugs == nil || data.Tasks == nil {
		t.Error("Collections should be initialized empty, not nil")
	}
	if data.TotalItems() != 0 {
		t.Errorf("TotalItems = %d, want 0", data.TotalItems())
	}
}

func TestProjectData_ItemsAndFind(t *testing.T) {
	data := sampleData()

	if got := len(data.Items(KindTask)); got != 2 {
		t.Errorf("Items(task) length = %d, want 2", got)
	}
	if data.Items(ItemKind("epic")) != nil {
		t.Error("Items with an unknown kind should return nil")
	}

	item, ok := data.Find(KindBug, "b-1")
	if !ok {
		t.Fatal("Find should locate b-1")
	}
	if item.ItemTitle() != "Bug one" {
		t.Errorf("Title = %q, want Bug one", item.ItemTitle())
	}

	if _, ok := data.Find(KindBug, "t-1"); ok {
		t.Error("Find must not cross kind collections")
	}
}

func TestProjectData_AppendAndReplace(t *testing.T) {
	data := sampleData()

	data.Append(Task{BaseItem: BaseItem{ID: "t-3", Type: KindTask, Title: "Task three"}, Status: TaskTodo})
	if len(data.Tasks) != 3 {
		t.Errorf("Tasks length = %d, want 3", len(data.Tasks))
	}

	replaced := data.Replace(Task{BaseItem: BaseItem{ID: "t-1", Type: KindTask, Title: "Renamed"}, Status: TaskCompleted})
	if !replaced {
		t.Fatal("Replace should find t-1")
	}
	if data.Tasks[0].Title != "Renamed" || data.Tasks[0].Status != TaskCompleted {
		t.Errorf("Replace did not swap the item: %+v", data.Tasks[0])
	}

	if data.Replace(Task{BaseItem: BaseItem{ID: "missing"}}) {
		t.Error("Replace should report false for an unknown ID")
	}
}

func TestProjectData_Remove(t *testing.T) {
	data := sampleData()

	if !data.Remove(KindTask, "t-1") {
		t.Fatal("Remove should delete t-1")
	}
	if len(data.Tasks) != 1 || data.Tasks[0].ID != "t-2" {
		t.Errorf("Remaining tasks wrong: %+v", data.Tasks)
	}

	if data.Remove(KindTask, "t-1") {
		t.Error("Second Remove of the same ID should report false")
	}
	if data.Remove(KindFeature, "b-1") {
		t.Error("Remove must not cross kind collections")
	}

	if data.TotalItems() != 3 {
		t.Errorf("TotalItems = %d, want 3", data.TotalItems())
	}
}
