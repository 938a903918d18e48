package models_test

import (
	"testing"

	"github.com/durveshgosavi-netizen/cblens/models"
)

func TestCandidateList_ScanDropsJunk(t *testing.T) {
	raw := []byte(`[
		{"id":"dish-1","name":"Chicken Rice","confidence_score":0.9},
		{"id":"","name":"missing id"},
		{"name":"missing id too"},
		"not an object",
		{"id":"dish-2","name":"Lentil Soup","confidence_score":0.7}
	]`)

	var list models.CandidateList
	if err := list.Scan(raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 valid candidates, got %d: %+v", len(list), list)
	}
	if list[0].ID != "dish-1" || list[1].ID != "dish-2" {
		t.Fatalf("wrong survivors: %+v", list)
	}
}

func TestCandidateList_ScanGarbageColumn(t *testing.T) {
	var list models.CandidateList
	if err := list.Scan([]byte(`{{not json`)); err != nil {
		t.Fatalf("garbage should not error: %v", err)
	}
	if list != nil {
		t.Fatalf("garbage should decode to nil, got %+v", list)
	}

	if err := list.Scan(nil); err != nil {
		t.Fatalf("nil column: %v", err)
	}
	if list != nil {
		t.Fatalf("nil column should decode to nil, got %+v", list)
	}
}

func TestCandidateList_ValueEmpty(t *testing.T) {
	var list models.CandidateList
	v, err := list.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Fatalf("empty list should store NULL, got %v", v)
	}
}

func TestDishCandidate_Valid(t *testing.T) {
	ok := models.DishCandidate{ID: "dish-1", Name: "Chicken Rice"}
	if !ok.Valid() {
		t.Fatal("complete candidate should be valid")
	}
	if (models.DishCandidate{Name: "x"}).Valid() {
		t.Fatal("candidate without id should be invalid")
	}
	if (models.DishCandidate{ID: "x"}).Valid() {
		t.Fatal("candidate without name should be invalid")
	}
}
