package storage_test

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"safetube/cleanup/pkg/catalog"
	"safetube/cleanup/pkg/catalog/storage"
	"safetube/cleanup/pkg/catalog/storage/storagetest"
)

func TestOpenSQLite_MissingFile(t *testing.T) {
	config := storage.DefaultSQLiteConfig()
	config.Path = filepath.Join(t.TempDir(), "missing.db")

	_, err := storage.OpenSQLite(context.Background(), config)
	if err == nil {
		t.Fatal("OpenSQLite() should fail for a missing database file")
	}

	var storageErr *catalog.StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("expected *catalog.StorageError, got %T", err)
	}
	if storageErr.Operation != "open" {
		t.Errorf("Operation = %q, want %q", storageErr.Operation, "open")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("error should wrap fs.ErrNotExist")
	}
}

func TestOpenSQLite_UnsupportedDriver(t *testing.T) {
	cat := storagetest.New(t)
	config := cat.Config()
	config.Driver = "postgres"

	if _, err := storage.OpenSQLite(context.Background(), config); err == nil {
		t.Fatal("OpenSQLite() should reject unsupported drivers")
	}
}

func TestSQLiteStore_Setting(t *testing.T) {
	cat := storagetest.New(t)
	cat.SetSetting(catalog.RetentionDaysKey, "14")
	store := cat.Store()

	ctx := context.Background()

	value, found, err := store.Setting(ctx, catalog.RetentionDaysKey)
	if err != nil {
		t.Fatalf("Setting() failed: %v", err)
	}
	if !found || value != "14" {
		t.Errorf("Setting() = (%q, %v), want (\"14\", true)", value, found)
	}

	value, found, err = store.Setting(ctx, "admin_pin")
	if err != nil {
		t.Fatalf("Setting() for missing key failed: %v", err)
	}
	if found || value != "" {
		t.Errorf("Setting() for missing key = (%q, %v), want (\"\", false)", value, found)
	}
}

func TestSQLiteStore_ExpiredVideos(t *testing.T) {
	cat := storagetest.New(t)
	cat.InsertVideo(catalog.Video{ID: 3, LocalPath: "c.mp4", CreatedAt: 100})
	cat.InsertVideo(catalog.Video{ID: 1, LocalPath: "a.mp4", ThumbnailPath: "a.jpg", CreatedAt: 50})
	cat.InsertVideo(catalog.Video{ID: 2, CreatedAt: 199})
	cat.InsertVideo(catalog.Video{ID: 4, LocalPath: "d.mp4", CreatedAt: 200})
	store := cat.Store()

	videos, err := store.ExpiredVideos(context.Background(), catalog.ExpiredQuery{Cutoff: 200})
	if err != nil {
		t.Fatalf("ExpiredVideos() failed: %v", err)
	}

	if len(videos) != 3 {
		t.Fatalf("expected 3 expired videos, got %d", len(videos))
	}
	for i, want := range []int64{1, 2, 3} {
		if videos[i].ID != want {
			t.Errorf("videos[%d].ID = %d, want %d", i, videos[i].ID, want)
		}
	}

	if videos[0].LocalPath != "a.mp4" || videos[0].ThumbnailPath != "a.jpg" {
		t.Errorf("video 1 paths = (%q, %q)", videos[0].LocalPath, videos[0].ThumbnailPath)
	}
	// NULL paths come back empty
	if videos[1].LocalPath != "" || videos[1].ThumbnailPath != "" {
		t.Errorf("video 2 paths = (%q, %q), want empty", videos[1].LocalPath, videos[1].ThumbnailPath)
	}
}

func TestSQLiteStore_ExpiredVideosWithSubtitles(t *testing.T) {
	cat := storagetest.New(t)
	cat.InsertVideo(catalog.Video{ID: 1, LocalPath: "a.mp4", SubtitlePath: "subtitles/a.vtt", CreatedAt: 10})
	store := cat.Store()

	videos, err := store.ExpiredVideos(context.Background(), catalog.ExpiredQuery{Cutoff: 20, IncludeSubtitles: true})
	if err != nil {
		t.Fatalf("ExpiredVideos() failed: %v", err)
	}
	if len(videos) != 1 || videos[0].SubtitlePath != "subtitles/a.vtt" {
		t.Fatalf("expected subtitle path to be loaded, got %+v", videos)
	}

	videos, err = store.ExpiredVideos(context.Background(), catalog.ExpiredQuery{Cutoff: 20})
	if err != nil {
		t.Fatalf("ExpiredVideos() failed: %v", err)
	}
	if videos[0].SubtitlePath != "" {
		t.Errorf("subtitle path should not be loaded, got %q", videos[0].SubtitlePath)
	}
}

func TestSQLiteStore_DeleteCommitAndRollback(t *testing.T) {
	cat := storagetest.New(t)
	cat.InsertVideo(catalog.Video{ID: 1, CreatedAt: 10})
	cat.InsertVideo(catalog.Video{ID: 2, CreatedAt: 10})

	ctx := context.Background()

	// Rolled back deletions leave the row in place
	store := cat.Store()
	tx, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	deleted, err := tx.DeleteVideo(ctx, 1)
	if err != nil || !deleted {
		t.Fatalf("DeleteVideo(1) = (%v, %v), want (true, nil)", deleted, err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}
	if !cat.HasVideo(1) {
		t.Error("video 1 should survive a rolled back transaction")
	}

	// Committed deletions are visible
	tx, err = store.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if _, err := tx.DeleteVideo(ctx, 2); err != nil {
		t.Fatalf("DeleteVideo(2) failed: %v", err)
	}
	deleted, err = tx.DeleteVideo(ctx, 99)
	if err != nil {
		t.Fatalf("DeleteVideo(99) failed: %v", err)
	}
	if deleted {
		t.Error("DeleteVideo(99) should report no row removed")
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	// Rollback after commit is a no-op
	if err := tx.Rollback(); err != nil {
		t.Errorf("Rollback() after Commit() = %v, want nil", err)
	}

	ids := cat.VideoIDs()
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("remaining videos = %v, want [1]", ids)
	}
}

func TestSQLiteOpener_ImplementsOpener(t *testing.T) {
	cat := storagetest.New(t)

	var opener catalog.Opener = storage.NewSQLiteOpener(cat.Config())
	store, err := opener.Open(context.Background())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}
