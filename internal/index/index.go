package index

// RecordIndex defines the interface for record indexing operations.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type RecordIndex interface {
	UpsertRecord(r RecordRow, body string) error
	DeleteRecord(path string) error
	GetRecord(path string) (*RecordRow, error)
	ListRecords(kind string, limit, offset int) ([]RecordRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies RecordIndex at compile time.
var _ RecordIndex = (*DB)(nil)
