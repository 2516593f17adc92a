package domain

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func testEvent(title, description, category string) *Event {
	e := &Event{
		Title:     title,
		SourceURL: "https://example.com/event",
		StartTime: time.Date(2026, 1, 25, 20, 0, 0, 0, time.UTC),
	}
	if description != "" {
		e.Description = strPtr(description)
	}
	if category != "" {
		e.Category = strPtr(category)
	}
	return e
}

func TestEventFilterMatches(t *testing.T) {
	jazzNight := testEvent("Jazz Night", "Live jazz downtown", "music")
	foodFest := testEvent("Food Fest", "Over 20 food trucks", "food")
	jazzBrunch := testEvent("Jazz Brunch", "", "food")

	tests := []struct {
		name   string
		filter EventFilter
		event  *Event
		want   bool
	}{
		{
			name:   "no filters matches everything",
			filter: EventFilter{},
			event:  foodFest,
			want:   true,
		},
		{
			name:   "query matches title substring",
			filter: EventFilter{Query: strPtr("jazz")},
			event:  jazzNight,
			want:   true,
		},
		{
			name:   "query matches description substring",
			filter: EventFilter{Query: strPtr("trucks")},
			event:  foodFest,
			want:   true,
		},
		{
			name:   "query is case-insensitive",
			filter: EventFilter{Query: strPtr("JAZZ")},
			event:  jazzBrunch,
			want:   true,
		},
		{
			name:   "query misses unrelated event",
			filter: EventFilter{Query: strPtr("jazz")},
			event:  foodFest,
			want:   false,
		},
		{
			name:   "category is exact match",
			filter: EventFilter{Category: strPtr("music")},
			event:  jazzNight,
			want:   true,
		},
		{
			name:   "category is case-sensitive",
			filter: EventFilter{Category: strPtr("Music")},
			event:  jazzNight,
			want:   false,
		},
		{
			name:   "category misses event without category",
			filter: EventFilter{Category: strPtr("music")},
			event:  testEvent("Mystery Meetup", "", ""),
			want:   false,
		},
		{
			name:   "query and category are conjunctive: both hold",
			filter: EventFilter{Query: strPtr("jazz"), Category: strPtr("food")},
			event:  jazzBrunch,
			want:   true,
		},
		{
			name:   "query and category are conjunctive: category mismatch",
			filter: EventFilter{Query: strPtr("jazz"), Category: strPtr("food")},
			event:  jazzNight,
			want:   false,
		},
		{
			name:   "query and category are conjunctive: text mismatch",
			filter: EventFilter{Query: strPtr("jazz"), Category: strPtr("food")},
			event:  foodFest,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.event); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventFilterIsEmpty(t *testing.T) {
	if !(&EventFilter{}).IsEmpty() {
		t.Error("empty filter should report IsEmpty")
	}
	if (&EventFilter{Query: strPtr("jazz")}).IsEmpty() {
		t.Error("filter with query should not report IsEmpty")
	}
	if (&EventFilter{Category: strPtr("music")}).IsEmpty() {
		t.Error("filter with category should not report IsEmpty")
	}
	if (&EventFilter{Limit: 20}).IsEmpty() == false {
		t.Error("limit alone does not make a filter non-empty")
	}
}

func TestEventValidate(t *testing.T) {
	start := time.Date(2026, 2, 1, 19, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)
	after := start.Add(3 * time.Hour)

	tests := []struct {
		name      string
		event     Event
		wantField string
	}{
		{
			name:  "valid event",
			event: Event{Title: "OSU Basketball", SourceURL: "https://okstate.com", StartTime: start, EndTime: &after},
		},
		{
			name:      "empty title",
			event:     Event{Title: "  ", SourceURL: "https://okstate.com", StartTime: start},
			wantField: "title",
		},
		{
			name:      "empty source_url",
			event:     Event{Title: "OSU Basketball", SourceURL: "", StartTime: start},
			wantField: "source_url",
		},
		{
			name:      "zero start_time",
			event:     Event{Title: "OSU Basketball", SourceURL: "https://okstate.com"},
			wantField: "start_time",
		},
		{
			name:      "end before start",
			event:     Event{Title: "OSU Basketball", SourceURL: "https://okstate.com", StartTime: start, EndTime: &before},
			wantField: "end_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			fieldErr, ok := err.(*FieldError)
			if !ok {
				t.Fatalf("Validate() = %v, want *FieldError", err)
			}
			if fieldErr.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", fieldErr.Field, tt.wantField)
			}
		})
	}
}
