package search

import (
	"errors"
	"net/url"
	"testing"
	"time"
)

func parse(t *testing.T, raw string) SearchFilters {
	t.Helper()
	params, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("parse query %q: %v", raw, err)
	}
	f, err := ParseFilters(params)
	if err != nil {
		t.Fatalf("ParseFilters(%q): %v", raw, err)
	}
	return f
}

func TestParseFilters_Defaults(t *testing.T) {
	f := parse(t, "query=hello")
	if f.Type != TypeAll || f.SortBy != SortRelevance {
		t.Fatalf("wrong enum defaults: %+v", f)
	}
	if f.Page != 1 || f.Limit != DefaultLimit {
		t.Fatalf("wrong pagination defaults: page=%d limit=%d", f.Page, f.Limit)
	}
	if f.Archived {
		t.Fatal("archived must default to false")
	}
}

func TestParseFilters_QueryTooShort(t *testing.T) {
	for _, raw := range []string{"query=a", "query=+++a++", "q=x", ""} {
		params, _ := url.ParseQuery(raw)
		if _, err := ParseFilters(params); !errors.Is(err, ErrQueryTooShort) {
			t.Fatalf("%q: expected ErrQueryTooShort, got %v", raw, err)
		}
	}
	// Exactly two characters is the accepted boundary.
	if f := parse(t, "query=ab"); f.Query != "ab" {
		t.Fatalf("2-char query rejected: %+v", f)
	}
}

func TestParseFilters_LegacyAliasEquivalence(t *testing.T) {
	current := parse(t, "query=hello")
	legacy := parse(t, "q=hello")
	if current.Query != legacy.Query {
		t.Fatalf("q alias not equivalent: %q vs %q", current.Query, legacy.Query)
	}
}

func TestParseFilters_CurrentNameWinsOverLegacy(t *testing.T) {
	f := parse(t, "query=new&q=old")
	if f.Query != "new" {
		t.Fatalf("query should beat q, got %q", f.Query)
	}

	f = parse(t, "query=hi&isAI=false&conversationType=ai")
	if f.IsAI == nil || *f.IsAI {
		t.Fatalf("isAI should beat conversationType, got %v", f.IsAI)
	}

	f = parse(t, "query=hi&tagIds=t1,t2&tagId=t9")
	if len(f.TagIDs) != 2 || f.TagIDs[0] != "t1" || f.TagIDs[1] != "t2" {
		t.Fatalf("tagIds should beat tagId, got %v", f.TagIDs)
	}
}

func TestParseFilters_LegacyConversationType(t *testing.T) {
	f := parse(t, "query=hi&conversationType=human")
	if f.IsAI == nil || *f.IsAI {
		t.Fatalf("conversationType=human should set isAI=false, got %v", f.IsAI)
	}
}

func TestParseFilters_OffsetToPage(t *testing.T) {
	f := parse(t, "query=hi&offset=40&limit=20")
	if f.Page != 3 {
		t.Fatalf("offset=40 limit=20 should be page 3, got %d", f.Page)
	}
	// floor semantics
	f = parse(t, "query=hi&offset=39&limit=20")
	if f.Page != 2 {
		t.Fatalf("offset=39 limit=20 should be page 2, got %d", f.Page)
	}
	// page beats offset
	f = parse(t, "query=hi&page=5&offset=0")
	if f.Page != 5 {
		t.Fatalf("page should beat offset, got %d", f.Page)
	}
}

func TestParseFilters_LimitClampedAndDefaulted(t *testing.T) {
	if f := parse(t, "query=hi&limit=500"); f.Limit != MaxLimit {
		t.Fatalf("limit should clamp to %d, got %d", MaxLimit, f.Limit)
	}
	if f := parse(t, "query=hi&limit=banana"); f.Limit != DefaultLimit {
		t.Fatalf("non-numeric limit should default, got %d", f.Limit)
	}
	if f := parse(t, "query=hi&limit=-3"); f.Limit != DefaultLimit {
		t.Fatalf("negative limit should default, got %d", f.Limit)
	}
}

func TestParseFilters_InvalidEnumsDegradeToDefault(t *testing.T) {
	f := parse(t, "query=hi&type=bogus&sortBy=nope&personality=wizard")
	if f.Type != TypeAll {
		t.Fatalf("invalid type should default, got %q", f.Type)
	}
	if f.SortBy != SortRelevance {
		t.Fatalf("invalid sortBy should default, got %q", f.SortBy)
	}
	if f.Personality != "" {
		t.Fatalf("invalid personality should be dropped, got %q", f.Personality)
	}
}

func TestParseFilters_ValidEnums(t *testing.T) {
	f := parse(t, "query=hi&type=messages&sortBy=messageCount&personality=analytical")
	if f.Type != TypeMessages || f.SortBy != SortMessageCount || f.Personality != "analytical" {
		t.Fatalf("valid enums mishandled: %+v", f)
	}
}

func TestParseFilters_DateToEndOfDay(t *testing.T) {
	f := parse(t, "query=hi&dateTo=2025-03-10")
	if f.DateTo == nil {
		t.Fatal("dateTo not parsed")
	}
	h, m, s := f.DateTo.Clock()
	if h != 23 || m != 59 || s != 59 {
		t.Fatalf("dateTo not normalized to end of day: %v", f.DateTo)
	}
	if f.DateTo.Nanosecond() != 999*int(time.Millisecond) {
		t.Fatalf("dateTo millis wrong: %v", f.DateTo.Nanosecond())
	}
}

func TestParseFilters_MalformedDateIgnored(t *testing.T) {
	f := parse(t, "query=hi&dateFrom=notadate")
	if f.DateFrom != nil {
		t.Fatalf("malformed dateFrom should be ignored, got %v", f.DateFrom)
	}
}

func TestParseFilters_TagCSVTrimsAndDropsEmpties(t *testing.T) {
	f := parse(t, "query=hi&tagIds=+t1+,,t2,")
	if len(f.TagIDs) != 2 || f.TagIDs[0] != "t1" || f.TagIDs[1] != "t2" {
		t.Fatalf("CSV handling wrong: %v", f.TagIDs)
	}
}

func TestPrecedenceTable_CoversEveryRecognizedParam(t *testing.T) {
	recognized := map[string]bool{
		"query": false, "q": false, "type": false,
		"dateFrom": false, "dateTo": false,
		"isAI": false, "conversationType": false,
		"personality": false, "tagIds": false, "tagId": false,
		"hasAttachments": false, "archived": false, "sortBy": false,
		"page": false, "offset": false, "limit": false,
	}
	for _, b := range precedenceTable() {
		for _, src := range b.sources {
			seen, ok := recognized[src.name]
			if !ok {
				t.Fatalf("table references unknown parameter %q", src.name)
			}
			if seen {
				t.Fatalf("parameter %q bound twice", src.name)
			}
			recognized[src.name] = true
		}
	}
	for name, seen := range recognized {
		if !seen {
			t.Fatalf("parameter %q missing from precedence table", name)
		}
	}
}
