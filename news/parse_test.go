package news

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"newsticker/models"
)

func serialize(records []models.NewsRecord) string {
	blocks := make([]string, 0, len(records))
	for _, r := range records {
		blocks = append(blocks, fmt.Sprintf("Date: %s\nSource: %s\nHeadline: %s", r.Date, r.Source, r.Headline))
	}
	return strings.Join(blocks, "\n\n")
}

func TestParseRoundTrip(t *testing.T) {
	want := []models.NewsRecord{
		{Date: "2025-07-01 14:30", Source: "TechCrunch", Headline: "[Innovation] DeepMind's Quantum AI Breakthrough - Solves Complex Molecular Structures Instantly"},
		{Date: "2025-07-01 13:10", Source: "Wired", Headline: "[Industry] Microsoft's $5B AI Chip Factory - Game-Changing Hardware"},
		{Date: "2025-07-01 09:45", Source: "Reuters", Headline: "[Policy] EU's New AI Law Takes Effect - Strict Rules Reshape Development"},
	}
	got := Parse(serialize(want))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestParseDropsIncompleteBlock(t *testing.T) {
	input := "Date: 2025-07-01 14:30\nSource: TechCrunch\nHeadline: [Innovation] Example Headline\n\nDate: 2025-07-01 13:10\nSource: Wired\n"
	got := Parse(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(got), got)
	}
	want := models.NewsRecord{Date: "2025-07-01 14:30", Source: "TechCrunch", Headline: "[Innovation] Example Headline"}
	if got[0] != want {
		t.Fatalf("expected %+v, got %+v", want, got[0])
	}
}

func TestParseIncompleteBlockDoesNotLeakIntoNeighbours(t *testing.T) {
	input := strings.Join([]string{
		"Date: 2025-07-01 10:00",
		"Headline: [Research] Missing Source Line",
		"",
		"Date: 2025-07-01 09:00",
		"Source: ZDNet",
		"Headline: [Industry] Complete Block",
	}, "\n")
	got := Parse(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(got), got)
	}
	if got[0].Source != "ZDNet" {
		t.Fatalf("expected ZDNet record, got %+v", got[0])
	}
}

func TestParseIgnoresCommentaryAndUnknownLabels(t *testing.T) {
	input := strings.Join([]string{
		"Found 1 article from today:",
		"",
		"Date: 2025-07-01 14:30",
		"Source: TechCrunch",
		"Description: extra context the contract drops",
		"Headline: [Innovation] Example Headline",
		"",
		"Let me know if you need more details.",
	}, "\n")
	got := Parse(input)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(got), got)
	}
}

func TestParseRepeatedLabelLastWins(t *testing.T) {
	input := strings.Join([]string{
		"Date: 2025-07-01 08:00",
		"Date: 2025-07-01 14:30",
		"Source: TechCrunch",
		"Headline: [Innovation] Example Headline",
	}, "\n")
	got := Parse(input)
	if len(got) != 1 || got[0].Date != "2025-07-01 14:30" {
		t.Fatalf("expected last date to win, got %+v", got)
	}
}

func TestParseWhitespaceIdempotence(t *testing.T) {
	core := "Date: 2025-07-01 14:30\nSource: TechCrunch\nHeadline: [Innovation] Example Headline"
	padded := "\n\n   \n  Date: 2025-07-01 14:30  \n\tSource: TechCrunch\n  Headline: [Innovation] Example Headline  \n\n\n"
	if !reflect.DeepEqual(Parse(core), Parse(padded)) {
		t.Fatalf("whitespace changed the parse result:\ncore   %+v\npadded %+v", Parse(core), Parse(padded))
	}
}

func TestParseEmptyInput(t *testing.T) {
	got := Parse("")
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %+v", got)
	}
}

func TestParseLowercaseLabelNotRecognised(t *testing.T) {
	input := "date: 2025-07-01 14:30\nsource: TechCrunch\nheadline: nope"
	if got := Parse(input); len(got) != 0 {
		t.Fatalf("label matching must be case-sensitive, got %+v", got)
	}
}
