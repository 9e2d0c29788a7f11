package main

import (
	"reflect"
	"testing"

	"gitlab.com/efronlicht/sitetools/gallery"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		if got := configFromEnv(gallery.DefaultConfig()); !reflect.DeepEqual(got, gallery.DefaultConfig()) {
			t.Fatalf("expected the defaults with no environment, got %+v", got)
		}
	})
	t.Run("overrides", func(t *testing.T) {
		t.Setenv("GALLERY_SOURCE_DIR", "originals")
		t.Setenv("GALLERY_INDEX", "gallery/index.html")
		t.Setenv("GALLERY_THUMB_WIDTH", "320")
		t.Setenv("GALLERY_THUMB_HEIGHT", "not a number")
		got := configFromEnv(gallery.DefaultConfig())
		want := gallery.DefaultConfig()
		want.SourceDir = "originals"
		want.IndexPath = "gallery/index.html"
		want.ThumbWidth = 320 // an invalid height keeps the default
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("configFromEnv() = %+v, want %+v", got, want)
		}
	})
}
