package database_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/krau/fexp/database"
)

func setup(t *testing.T) context.Context {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{ReportTimestamp: false})
	ctx := log.WithContext(context.Background(), logger)
	path := filepath.Join(t.TempDir(), "data", "fexp.db")
	if err := database.Init(ctx, path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return ctx
}

func TestBookmarks(t *testing.T) {
	ctx := setup(t)

	if err := database.CreateBookmark(ctx, "src", "/home/me/src"); err != nil {
		t.Fatalf("CreateBookmark: %v", err)
	}
	if err := database.CreateBookmark(ctx, "docs", "/home/me/docs"); err != nil {
		t.Fatalf("CreateBookmark: %v", err)
	}
	if err := database.CreateBookmark(ctx, "src", "/elsewhere"); !errors.Is(err, database.ErrBookmarkExists) {
		t.Errorf("duplicate name: got %v, want ErrBookmarkExists", err)
	}

	bm, err := database.GetBookmark(ctx, "src")
	if err != nil {
		t.Fatalf("GetBookmark: %v", err)
	}
	if bm.Path != "/home/me/src" {
		t.Errorf("Path = %q", bm.Path)
	}

	all, err := database.GetAllBookmarks(ctx)
	if err != nil {
		t.Fatalf("GetAllBookmarks: %v", err)
	}
	if len(all) != 2 || all[0].Name != "docs" || all[1].Name != "src" {
		t.Errorf("bookmarks not sorted by name: %+v", all)
	}

	if err := database.DeleteBookmark(ctx, "src"); err != nil {
		t.Fatalf("DeleteBookmark: %v", err)
	}
	if err := database.DeleteBookmark(ctx, "src"); !errors.Is(err, database.ErrBookmarkNotFound) {
		t.Errorf("second delete: got %v, want ErrBookmarkNotFound", err)
	}
	if _, err := database.GetBookmark(ctx, "src"); !errors.Is(err, database.ErrBookmarkNotFound) {
		t.Errorf("get deleted: got %v, want ErrBookmarkNotFound", err)
	}
	// the name is free again after a delete
	if err := database.CreateBookmark(ctx, "src", "/new"); err != nil {
		t.Errorf("recreate: %v", err)
	}
}

func TestSearchHistoryTrim(t *testing.T) {
	ctx := setup(t)

	for i := range 5 {
		rec := &database.SearchRecord{
			Query:   fmt.Sprintf("q%d", i),
			Root:    "/tmp",
			Matches: i,
			Elapsed: time.Duration(i) * time.Millisecond,
		}
		if err := database.AddSearchRecord(ctx, rec, 3); err != nil {
			t.Fatalf("AddSearchRecord: %v", err)
		}
		if rec.RunID == "" {
			t.Error("RunID was not assigned")
		}
	}

	records, err := database.GetSearchRecords(ctx, 0)
	if err != nil {
		t.Fatalf("GetSearchRecords: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for i, want := range []string{"q4", "q3", "q2"} {
		if records[i].Query != want {
			t.Errorf("records[%d].Query = %q, want %q", i, records[i].Query, want)
		}
	}
	if records[0].Elapsed != 4*time.Millisecond {
		t.Errorf("Elapsed = %v", records[0].Elapsed)
	}

	limited, err := database.GetSearchRecords(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Errorf("limit 1: %d records, err %v", len(limited), err)
	}

	if err := database.ClearSearchRecords(ctx); err != nil {
		t.Fatalf("ClearSearchRecords: %v", err)
	}
	records, _ = database.GetSearchRecords(ctx, 0)
	if len(records) != 0 {
		t.Errorf("history not cleared: %d records", len(records))
	}
}

func TestHistoryDisabled(t *testing.T) {
	ctx := setup(t)
	if err := database.AddSearchRecord(ctx, &database.SearchRecord{Query: "x"}, 0); err != nil {
		t.Fatalf("AddSearchRecord: %v", err)
	}
	records, err := database.GetSearchRecords(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("limit 0 should store nothing, got %d", len(records))
	}
}

func TestNotInitialized(t *testing.T) {
	if _, err := database.GetAllBookmarks(context.Background()); !errors.Is(err, database.ErrNotInitialized) {
		t.Errorf("got %v, want ErrNotInitialized", err)
	}
}
