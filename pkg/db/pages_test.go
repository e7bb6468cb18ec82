package db

import (
	"reflect"
	"testing"

	"github.com/sitetruth/sitetruth/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func testPage(url, slug string) *models.ExtractedPage {
	return &models.ExtractedPage{
		URL:  url,
		Slug: slug,
		Meta: models.PageMeta{Title: "Acme Washing"},
		Links: models.Links{
			Internal: []string{url + "/about"},
			External: []string{},
		},
		Diagnostics: models.Diagnostics{WordCount: 120, HasOpenGraph: true},
		Images: models.OKField([]models.Image{{
			ID:       "a1b2c3d4e5f60718",
			PageSlug: slug,
			Src:      url + "/logo.svg",
			Format:   "svg",
			Role:     "logo",
			Placement: models.PlacementRef{
				Zone:       models.ZoneLogo,
				Confidence: 0.6,
				Signals: []models.Signal{
					{Source: models.SourceDOMContext, Zone: models.ZoneLogo, Weight: 0.6},
				},
			},
		}}, 0.6),
		Navbar: []models.NavItem{
			{Text: "about", Href: url + "/about", Depth: 0},
		},
		Blocks: []models.Block{
			{Type: models.BlockHeading, Level: 1, Text: "Acme Washing"},
		},
		Confidence: 0.65,
	}
}

func TestInsertAndGetPage(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.InsertRun("run-1", "https://example.com", 1); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	page := testPage("https://example.com", "home")
	if _, err := db.InsertPage("run-1", page); err != nil {
		t.Fatalf("InsertPage() error = %v", err)
	}

	restored, err := db.GetPage("run-1", "https://example.com")
	if err != nil {
		t.Fatalf("GetPage() error = %v", err)
	}

	if !reflect.DeepEqual(page, restored) {
		t.Errorf("stored record differs from original:\n%+v\n%+v", page, restored)
	}
}

func TestInsertPageReplacesOnConflict(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.InsertRun("run-1", "https://example.com", 1); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	first := testPage("https://example.com", "home")
	if _, err := db.InsertPage("run-1", first); err != nil {
		t.Fatalf("InsertPage() first error = %v", err)
	}

	second := testPage("https://example.com", "home")
	second.Confidence = 0.9
	if _, err := db.InsertPage("run-1", second); err != nil {
		t.Fatalf("InsertPage() second error = %v", err)
	}

	pages, err := db.ListPages("run-1")
	if err != nil {
		t.Fatalf("ListPages() error = %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("pages = %d, want 1 after re-insert", len(pages))
	}
	if pages[0].Confidence != 0.9 {
		t.Errorf("confidence = %v, want updated value 0.9", pages[0].Confidence)
	}
}

func TestGetPageNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.GetPage("run-x", "https://example.com/missing"); err == nil {
		t.Error("GetPage() on missing page returned nil error")
	}
}

func TestListPagesOrder(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.InsertRun("run-1", "https://example.com", 3); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}

	urls := []string{
		"https://example.com",
		"https://example.com/services",
		"https://example.com/contact",
	}
	for _, u := range urls {
		if _, err := db.InsertPage("run-1", testPage(u, "p")); err != nil {
			t.Fatalf("InsertPage(%s) error = %v", u, err)
		}
	}

	pages, err := db.ListPages("run-1")
	if err != nil {
		t.Fatalf("ListPages() error = %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("pages = %d, want 3", len(pages))
	}
	for i, u := range urls {
		if pages[i].URL != u {
			t.Errorf("page %d url = %q, want %q (insertion order)", i, pages[i].URL, u)
		}
	}
	if pages[0].ImageCount != 1 || pages[0].WordCount != 120 {
		t.Errorf("summary counts = %d images, %d words", pages[0].ImageCount, pages[0].WordCount)
	}
}

func TestRunStats(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.InsertRun("run-1", "https://example.com", 5); err != nil {
		t.Fatalf("InsertRun() error = %v", err)
	}
	if err := db.UpdateRunStats("run-1", 4, 1); err != nil {
		t.Fatalf("UpdateRunStats() error = %v", err)
	}

	run, err := db.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.PageCount != 5 || run.SuccessCount != 4 || run.FailedCount != 1 {
		t.Errorf("run = %+v, want counts 5/4/1", run)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("runs = %d, want 1", len(runs))
	}
}
