package httpserver

import (
	"net/url"
	"testing"
)

func TestBuildListFilters(t *testing.T) {
	values, _ := url.ParseQuery("branchId= b1 &sentiment=positive&category=food&source=google&page=2&pageSize=25")

	filters, err := buildListFilters(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.BranchID == nil || *filters.BranchID != "b1" {
		t.Fatalf("branchId not trimmed: %+v", filters.BranchID)
	}
	if filters.Sentiment == nil || *filters.Sentiment != "positive" {
		t.Fatalf("sentiment parse failed: %+v", filters.Sentiment)
	}
	if filters.Category == nil || *filters.Category != "food" {
		t.Fatalf("category parse failed: %+v", filters.Category)
	}
	if filters.Source == nil || *filters.Source != "google" {
		t.Fatalf("source parse failed: %+v", filters.Source)
	}
	if filters.Page != 2 {
		t.Fatalf("page = %d, want 2", filters.Page)
	}
	if filters.PageSize != 25 {
		t.Fatalf("pageSize = %d, want 25", filters.PageSize)
	}
}

func TestBuildListFilters_Defaults(t *testing.T) {
	filters, err := buildListFilters(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filters.Page != 1 || filters.PageSize != defaultPageSize {
		t.Fatalf("defaults = %d/%d, want 1/%d", filters.Page, filters.PageSize, defaultPageSize)
	}
	if filters.BranchID != nil || filters.Sentiment != nil {
		t.Fatalf("empty query produced filters: %+v", filters)
	}
}

func TestBuildListFilters_InvalidPage(t *testing.T) {
	values, _ := url.ParseQuery("page=abc")
	if _, err := buildListFilters(values); err == nil {
		t.Fatalf("expected error for invalid page")
	}

	values, _ = url.ParseQuery("pageSize=xyz")
	if _, err := buildListFilters(values); err == nil {
		t.Fatalf("expected error for invalid pageSize")
	}
}

func TestParseDaysParam(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 0, false},
		{"7", 7, false},
		{" 30 ", 30, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
	}
	for _, c := range cases {
		got, err := parseDaysParam(c.raw)
		if c.wantErr {
			if err == nil {
				t.Fatalf("parseDaysParam(%q) expected error", c.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseDaysParam(%q) unexpected error: %v", c.raw, err)
		}
		if got != c.want {
			t.Fatalf("parseDaysParam(%q) = %d, want %d", c.raw, got, c.want)
		}
	}
}
