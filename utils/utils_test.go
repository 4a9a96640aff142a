package utils

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID("job", 12)
	if !strings.HasPrefix(id, "job") {
		t.Errorf("missing prefix: %s", id)
	}
	if len(id) != 15 {
		t.Errorf("length = %d, want 15", len(id))
	}
	if GenerateID("job", 12) == id {
		t.Error("two generated IDs collided")
	}
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query string
		page  int
		limit int
	}{
		{"", 1, 10},
		{"?page=3&limit=25", 3, 25},
		{"?page=0&limit=0", 1, 10},
		{"?page=-2&limit=500", 1, 10},
		{"?page=abc&limit=xyz", 1, 10},
		{"?limit=50", 1, 50},
	}
	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/jobs"+tc.query, nil)
		page, limit := ParsePagination(r)
		if page != tc.page || limit != tc.limit {
			t.Errorf("%q: got (%d,%d), want (%d,%d)", tc.query, page, limit, tc.page, tc.limit)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags(" Go, mongodb ,go,,Redis ")
	want := []string{"go", "mongodb", "redis"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if len(SplitTags("")) != 0 {
		t.Error("empty input should yield no tags")
	}
}
