package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func parseOn(t *testing.T, target string, opt PageOptions) PageParams {
	t.Helper()

	var got PageParams
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ParsePageWith(c, "created_at", "desc", opt)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	return got
}

func TestParsePageDefaults(t *testing.T) {
	p := parseOn(t, "/", DefaultPageOpts)
	if p.Page != 1 || p.PerPage != 25 || p.SortBy != "created_at" || p.SortOrder != "desc" {
		t.Errorf("defaults = %+v", p)
	}
}

func TestParsePageClamping(t *testing.T) {
	p := parseOn(t, "/?page=-3&per_page=9999&order=ASC", DefaultPageOpts)
	if p.Page != 1 {
		t.Errorf("page = %d, want clamp to 1", p.Page)
	}
	if p.PerPage != DefaultPageOpts.MaxPerPage {
		t.Errorf("per_page = %d, want clamp to %d", p.PerPage, DefaultPageOpts.MaxPerPage)
	}
	if p.SortOrder != "asc" {
		t.Errorf("order = %q, want asc", p.SortOrder)
	}
}

func TestParsePageLimitAlias(t *testing.T) {
	p := parseOn(t, "/?limit=10", DefaultPageOpts)
	if p.PerPage != 10 {
		t.Errorf("per_page via limit alias = %d, want 10", p.PerPage)
	}
}

func TestOffset(t *testing.T) {
	p := PageParams{Page: 3, PerPage: 50}
	if p.Offset() != 100 {
		t.Errorf("offset = %d, want 100", p.Offset())
	}
	if p.Limit() != 50 {
		t.Errorf("limit = %d, want 50", p.Limit())
	}
}

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"created_at": "payment_created_at",
		"amount":     "payment_amount",
	}

	p := PageParams{SortBy: "amount", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "created_at")
	if err != nil {
		t.Fatalf("SafeOrderClause: %v", err)
	}
	if clause != "payment_amount ASC" {
		t.Errorf("clause = %q", clause)
	}

	// unknown sort key falls back to the default column, never raw input
	p = PageParams{SortBy: "payment_amount; DROP TABLE payments", SortOrder: "desc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	if err != nil {
		t.Fatalf("SafeOrderClause fallback: %v", err)
	}
	if clause != "payment_created_at DESC" {
		t.Errorf("fallback clause = %q", clause)
	}

	if _, err := (PageParams{}).SafeOrderClause(allowed, "nope"); err == nil {
		t.Error("want error when default key is not whitelisted")
	}
}

func TestBuildPageMeta(t *testing.T) {
	m := BuildPageMeta(101, PageParams{Page: 2, PerPage: 25})
	if m.TotalPages != 5 {
		t.Errorf("total_pages = %d, want 5", m.TotalPages)
	}
	if !m.HasNext || !m.HasPrev {
		t.Errorf("has_next=%v has_prev=%v, want both true", m.HasNext, m.HasPrev)
	}

	m = BuildPageMeta(0, PageParams{Page: 1, PerPage: 25})
	if m.TotalPages != 0 || m.HasNext || m.HasPrev {
		t.Errorf("empty meta = %+v", m)
	}
}
