package service_test

import (
	"testing"

	"todoterm/internal/service"
)

func TestChangeBody_CarriesExactlyOneField(t *testing.T) {
	med := service.CategoryMedium
	cases := []struct {
		name   string
		change service.Change
		key    string
		want   any
	}{
		{"description", service.DescriptionChange("x"), "description", "x"},
		{"category", service.CategoryChange(&med), "category_id", service.CategoryMedium},
		{"finished", service.FinishedChange(true), "is_finished", true},
		{"attachment", service.AttachmentChange(false), "attachment", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := tc.change.Body()
			if len(body) != 1 {
				t.Fatalf("expected exactly one field, got %v", body)
			}
			if got, ok := body[tc.key]; !ok || got != tc.want {
				t.Errorf("expected %s=%v, got %v", tc.key, tc.want, body)
			}
		})
	}
}

func TestChangeBody_ClearingCategorySendsExplicitNull(t *testing.T) {
	body := service.CategoryChange(nil).Body()
	if len(body) != 1 {
		t.Fatalf("expected exactly one field, got %v", body)
	}
	v, ok := body["category_id"]
	if !ok {
		t.Fatal("expected category_id key present")
	}
	if v != nil {
		t.Errorf("expected explicit null, got %v", v)
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"low", service.CategoryLow, true},
		{"medium", service.CategoryMedium, true},
		{"high", service.CategoryHigh, true},
		{"urgent", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := service.ParseCategory(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseCategory(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCategoryName(t *testing.T) {
	if got := service.CategoryName(nil); got != "none" {
		t.Errorf("expected none for nil category, got %q", got)
	}
	high := service.CategoryHigh
	if got := service.CategoryName(&high); got != "high" {
		t.Errorf("expected high, got %q", got)
	}
}
