package flexlist

import (
	"reflect"
	"testing"
)

func TestReconcile(t *testing.T) {
	cases := []struct {
		name          string
		authoritative []Item
		stored        []Entry
		want          []Entry
	}{
		{
			name: "stored_order_and_visibility_kept_new_items_appended",
			authoritative: []Item{
				{Name: "title", Description: "Title"},
				{Name: "author", Description: "Author"},
			},
			stored: []Entry{
				{Name: "author", Description: "Old", Visible: false},
			},
			want: []Entry{
				{Name: "author", Description: "Author", Visible: false},
				{Name: "title", Description: "Title", Visible: true},
			},
		},
		{
			name: "stale_entry_dropped",
			authoritative: []Item{
				{Name: "title", Description: "Title"},
			},
			stored: []Entry{
				{Name: "removed_field", Description: "X", Visible: true},
			},
			want: []Entry{
				{Name: "title", Description: "Title", Visible: true},
			},
		},
		{
			name: "empty_stored_yields_authoritative_order_all_visible",
			authoritative: []Item{
				{Name: "a", Description: "A"},
				{Name: "b", Description: "B"},
				{Name: "c", Description: "C"},
			},
			stored: nil,
			want: []Entry{
				{Name: "a", Description: "A", Visible: true},
				{Name: "b", Description: "B", Visible: true},
				{Name: "c", Description: "C", Visible: true},
			},
		},
		{
			name:          "empty_authoritative_yields_empty_result",
			authoritative: nil,
			stored: []Entry{
				{Name: "anything", Description: "X", Visible: true},
			},
			want: []Entry{},
		},
		{
			name: "stored_relative_order_preserved",
			authoritative: []Item{
				{Name: "a", Description: "A"},
				{Name: "b", Description: "B"},
				{Name: "c", Description: "C"},
				{Name: "d", Description: "D"},
			},
			stored: []Entry{
				{Name: "c", Description: "C", Visible: true},
				{Name: "a", Description: "A", Visible: false},
			},
			want: []Entry{
				{Name: "c", Description: "C", Visible: true},
				{Name: "a", Description: "A", Visible: false},
				{Name: "b", Description: "B", Visible: true},
				{Name: "d", Description: "D", Visible: true},
			},
		},
		{
			name: "stale_description_overwritten",
			authoritative: []Item{
				{Name: "title", Description: "Headline"},
			},
			stored: []Entry{
				{Name: "title", Description: "Title", Visible: true},
			},
			want: []Entry{
				{Name: "title", Description: "Headline", Visible: true},
			},
		},
		{
			name: "duplicate_stored_name_keeps_first",
			authoritative: []Item{
				{Name: "a", Description: "A"},
				{Name: "b", Description: "B"},
			},
			stored: []Entry{
				{Name: "a", Description: "A", Visible: false},
				{Name: "a", Description: "A", Visible: true},
			},
			want: []Entry{
				{Name: "a", Description: "A", Visible: false},
				{Name: "b", Description: "B", Visible: true},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Reconcile(tc.authoritative, tc.stored)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Reconcile()=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestReconcileIdempotent(t *testing.T) {
	authoritative := []Item{
		{Name: "title", Description: "Title"},
		{Name: "author", Description: "Author"},
		{Name: "created_at", Description: "Created At"},
	}
	stored := []Entry{
		{Name: "author", Description: "stale", Visible: false},
		{Name: "gone", Description: "gone", Visible: true},
	}

	once := Reconcile(authoritative, stored)
	twice := Reconcile(authoritative, once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("reconciling a reconciled list changed it: %v -> %v", once, twice)
	}
}

func TestReconcileCompleteness(t *testing.T) {
	authoritative := []Item{
		{Name: "a", Description: "A"},
		{Name: "b", Description: "B"},
		{Name: "c", Description: "C"},
	}
	storedVariants := [][]Entry{
		nil,
		{{Name: "zzz", Description: "", Visible: true}},
		{{Name: "b", Description: "B", Visible: false}, {Name: "b", Description: "B", Visible: true}},
		{{Name: "c", Description: "", Visible: true}, {Name: "a", Description: "", Visible: false}, {Name: "b", Description: "", Visible: true}},
	}

	for _, stored := range storedVariants {
		got := Reconcile(authoritative, stored)
		names := map[string]int{}
		for _, e := range got {
			names[e.Name]++
		}
		if len(names) != len(authoritative) {
			t.Fatalf("output names %v do not cover authoritative set for stored=%v", names, stored)
		}
		for _, item := range authoritative {
			if names[item.Name] != 1 {
				t.Fatalf("name %q appears %d times for stored=%v", item.Name, names[item.Name], stored)
			}
		}
	}
}
