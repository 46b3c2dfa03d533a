package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DATABASE_URL", "STOREFRONT_DSN", "STOREFRONT_PAGE_SIZE", "STOREFRONT_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.RefreshInterval() != 30*time.Second || cfg.MinRefreshGap() != time.Second {
		t.Errorf("durations = %v, %v", cfg.RefreshInterval(), cfg.MinRefreshGap())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sub", "config.json")

	cfg := DefaultConfig()
	cfg.Database.DSN = "postgres://shop@localhost/shop"
	cfg.UI.ResetPageOnRefresh = true
	cfg.Cart.Path = "/tmp/cart.json"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"ui":{"product_page_size":0,"admin_page_size":10}}`), 0600)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.ProductPageSize != 6 || cfg.UI.AdminPageSize != 10 {
		t.Errorf("UI = %+v", cfg.UI)
	}
	if cfg.Log.Level != "info" || cfg.Refresh.IntervalSeconds != 30 {
		t.Errorf("defaults lost: %+v %+v", cfg.Log, cfg.Refresh)
	}
}

func TestLoadCorruptFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte("{oops"), 0600)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://a/b")
	t.Setenv("STOREFRONT_DSN", "postgres://c/d")
	t.Setenv("STOREFRONT_PAGE_SIZE", "8")
	t.Setenv("STOREFRONT_LOG_LEVEL", "DEBUG")

	cfg := DefaultConfig()
	cfg.AutoPopulateFromEnv()

	if cfg.Database.DSN != "postgres://c/d" {
		t.Errorf("DSN = %q, STOREFRONT_DSN should win", cfg.Database.DSN)
	}
	if cfg.UI.ProductPageSize != 8 || cfg.UI.AdminPageSize != 8 {
		t.Errorf("UI = %+v", cfg.UI)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q", cfg.Log.Level)
	}
}

func TestBadPageSizeEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("STOREFRONT_PAGE_SIZE", "-3")
	cfg := DefaultConfig()
	cfg.AutoPopulateFromEnv()
	if cfg.UI.ProductPageSize != 6 {
		t.Errorf("ProductPageSize = %d", cfg.UI.ProductPageSize)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(path, []byte("# storefront\nexport STOREFRONT_DSN=\"postgres://x/y\"\nSTOREFRONT_PAGE_SIZE=4\nUNRELATED=1\nnot a pair\n"), 0600)

	cfg := DefaultConfig()
	if err := cfg.LoadEnvFile(path); err != nil {
		t.Fatal(err)
	}
	if cfg.Database.DSN != "postgres://x/y" || cfg.UI.ProductPageSize != 4 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadAppliesEnvFileBeforeEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("STOREFRONT_HOME", dir)
	os.WriteFile(filepath.Join(dir, ".env"), []byte("STOREFRONT_PAGE_SIZE=4\nSTOREFRONT_LOG_LEVEL=warn\n"), 0600)
	os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"ui":{"product_page_size":9}}`), 0600)
	t.Setenv("STOREFRONT_LOG_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UI.ProductPageSize != 4 || cfg.UI.AdminPageSize != 4 {
		t.Errorf(".env should override the config file: UI = %+v", cfg.UI)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("Level = %q, the environment should beat .env", cfg.Log.Level)
	}
	if v, ok := os.LookupEnv("STOREFRONT_PAGE_SIZE"); ok && v != "" {
		t.Errorf("LoadEnvFile leaked STOREFRONT_PAGE_SIZE=%q into the environment", v)
	}
}

func TestLoadEnvFileWithoutConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ".env"), []byte("STOREFRONT_DSN=postgres://shop@db/shop\n"), 0600)

	cfg, err := LoadFrom(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Database.DSN != "postgres://shop@db/shop" {
		t.Errorf("DSN = %q", cfg.Database.DSN)
	}
}

func TestDatabaseDSNDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STOREFRONT_HOME", dir)

	cfg := DefaultConfig()
	if got := cfg.DatabaseDSN(); got != filepath.Join(dir, "storefront.db") {
		t.Errorf("DatabaseDSN = %q", got)
	}
	if ConfigPath() != filepath.Join(dir, "config.json") {
		t.Errorf("ConfigPath = %q", ConfigPath())
	}
}
