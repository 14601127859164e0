package store

import "github.com/codetrail/devtrack/models"

// ProjectStore defines the contract for project dataset persistence.
// It is the sole gateway to persisted state: all mutations go through
// a full load, validate, save cycle and never leave the dataset
// partially written.
type ProjectStore interface {
	// Initialize configures the store and creates the data directory and
	// an empty dataset if none exists yet. It is safe to call on an
	// already-initialized project.
	Initialize(config map[string]string) error

	// Load reads, parses and validates the persisted dataset. It never
	// returns a partially valid aggregate.
	Load() (*models.ProjectData, error)

	// Save validates the full aggregate, stamps metadata.lastUpdated,
	// writes the canonical file atomically, then writes a timestamped
	// backup and prunes old ones.
	Save(data *models.ProjectData) error

	// CreateItem assembles a new item of the given kind from the caller's
	// fields, generating id and timestamps, validates it and persists.
	CreateItem(kind models.ItemKind, fields map[string]any) (models.Item, error)

	// UpdateItem merges partial updates onto an existing item. The id,
	// type and createdAt fields can never be overwritten. A missing id
	// yields types.ErrNotFound.
	UpdateItem(kind models.ItemKind, id string, updates map[string]any) (models.Item, error)

	// DeleteItem removes an item, reporting whether a removal occurred.
	// A missing id is not an error.
	DeleteItem(kind models.ItemKind, id string) (bool, error)

	// GetItems returns the kind's collection in stored order.
	GetItems(kind models.ItemKind) ([]models.Item, error)

	// GetItem returns a single item, or types.ErrNotFound.
	GetItem(kind models.ItemKind, id string) (models.Item, error)

	// ExportData writes the current dataset to a timestamped export file
	// inside the data directory and returns its path. The canonical
	// dataset is left untouched.
	ExportData() (string, error)

	// ImportData validates the file at path as a full aggregate and
	// replaces the entire dataset with it. All-or-nothing: on any
	// failure the existing dataset is untouched.
	ImportData(path string) error

	// Close releases resources held by the store, such as file locks.
	Close() error
}
