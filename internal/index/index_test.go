package index

import (
	"os"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "stride-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertAndGet(t *testing.T) {
	db := testDB(t)
	row := RecordRow{
		Path:      "challenges/c1/challenge.md",
		Kind:      "challenges",
		Title:     "30-Day Running",
		Checksum:  "abc",
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertRecord(row, "- **Status:** active"); err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}

	got, err := db.GetRecord(row.Path)
	if err != nil {
		t.Fatalf("GetRecord: %v", err)
	}
	if got == nil || got.Title != "30-Day Running" || got.Kind != "challenges" {
		t.Errorf("got = %+v", got)
	}

	// Upsert replaces in place.
	row.Title = "Renamed"
	if err := db.UpsertRecord(row, "body"); err != nil {
		t.Fatalf("UpsertRecord: %v", err)
	}
	got, _ = db.GetRecord(row.Path)
	if got.Title != "Renamed" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestGetRecord_Missing(t *testing.T) {
	db := testDB(t)
	got, err := db.GetRecord("nope.md")
	if err != nil || got != nil {
		t.Errorf("GetRecord(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestListRecords_KindFilter(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRecord(RecordRow{Path: "challenges/c1/challenge.md", Kind: "challenges", UpdatedAt: time.Now()}, "")
	_ = db.UpsertRecord(RecordRow{Path: "profiles/p1/profile.md", Kind: "profiles", UpdatedAt: time.Now()}, "")
	_ = db.UpsertRecord(RecordRow{Path: "profiles/p2/profile.md", Kind: "profiles", UpdatedAt: time.Now()}, "")

	rows, total, err := db.ListRecords("profiles", 10, 0)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Errorf("total = %d, rows = %d, want 2/2", total, len(rows))
	}

	rows, total, err = db.ListRecords("", 10, 0)
	if err != nil || total != 3 || len(rows) != 3 {
		t.Errorf("unfiltered total = %d, rows = %d, err = %v", total, len(rows), err)
	}
}

func TestDeleteRecord(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRecord(RecordRow{Path: "a.md", Kind: "", UpdatedAt: time.Now()}, "body")
	if err := db.DeleteRecord("a.md"); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	got, _ := db.GetRecord("a.md")
	if got != nil {
		t.Errorf("record survived delete: %+v", got)
	}
}

func TestSearch(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRecord(RecordRow{Path: "challenges/c1/challenge.md", Kind: "challenges", Title: "Running", UpdatedAt: time.Now()},
		"# Running\n\n- **Status:** active\n")
	_ = db.UpsertRecord(RecordRow{Path: "profiles/p1/profile.md", Kind: "profiles", Title: "Ada", UpdatedAt: time.Now()},
		"# Ada\n\n- **Email:** ada@example.com\n")

	results, err := db.Search("Running", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Path != "challenges/c1/challenge.md" {
		t.Errorf("results = %+v", results)
	}
}

func TestAllChecksums(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertRecord(RecordRow{Path: "a.md", Checksum: "cs-a", UpdatedAt: time.Now()}, "")
	_ = db.UpsertRecord(RecordRow{Path: "b.md", Checksum: "cs-b", UpdatedAt: time.Now()}, "")

	cs, err := db.AllChecksums()
	if err != nil {
		t.Fatalf("AllChecksums: %v", err)
	}
	if cs["a.md"] != "cs-a" || cs["b.md"] != "cs-b" {
		t.Errorf("checksums = %v", cs)
	}
}

func TestKindOf(t *testing.T) {
	cases := map[string]string{
		"challenges/c1/challenge.md": "challenges",
		"profiles/p1/profile.md":     "profiles",
		"top-level.md":               "",
	}
	for in, want := range cases {
		if got := KindOf(in); got != want {
			t.Errorf("KindOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTitleOf(t *testing.T) {
	if got := titleOf([]byte("# Big Goal\n\n- **ID:** x\n")); got != "Big Goal" {
		t.Errorf("heading title = %q", got)
	}
	if got := titleOf([]byte("---\nname: deep-work\n---\nbody")); got != "deep-work" {
		t.Errorf("frontmatter title = %q", got)
	}
	if got := titleOf([]byte("- **Name:** Coach\n")); got != "Coach" {
		t.Errorf("field title = %q", got)
	}
}
