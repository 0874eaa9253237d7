package matching

import (
	"context"
	"reflect"
	"testing"

	"urbanset/models"
	"urbanset/utils"
)

type staticDirectory []models.Worker

func (d staticDirectory) FindByService(_ context.Context, _ string) ([]models.Worker, error) {
	out := make([]models.Worker, len(d))
	copy(out, d)
	return out, nil
}

func electricians() staticDirectory {
	return staticDirectory{
		{ID: "b-ravi", Name: "Ravi", Experience: 5, Price: 400, Rating: 4.5, Skills: []string{"electrician"}, Location: models.Location{City: "Delhi"}},
		{ID: "a-amit", Name: "Amit", Experience: 2, Price: 300, Rating: 4.8, Skills: []string{"electrician"}, Location: models.Location{City: "Pune"}},
	}
}

func names(ws []models.Worker) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Name
	}
	return out
}

func TestSearchScenarios(t *testing.T) {
	svc := NewDefaultMatchingService(electricians())
	cases := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"min experience", Filters{MinExperience: 3}, []string{"Ravi"}},
		{"price low", Filters{SortBy: SortPriceLow}, []string{"Amit", "Ravi"}},
		{"price high", Filters{SortBy: SortPriceHigh}, []string{"Ravi", "Amit"}},
		{"rating", Filters{SortBy: SortRating}, []string{"Amit", "Ravi"}},
		{"relevance is experience", Filters{}, []string{"Ravi", "Amit"}},
		{"query matches city", Filters{Query: "pUnE"}, []string{"Amit"}},
		{"query matches skill", Filters{Query: "electric"}, []string{"Ravi", "Amit"}},
		{"place substring", Filters{Place: "del"}, []string{"Ravi"}},
		{"min rating", Filters{MinRating: 4.6}, []string{"Amit"}},
		{"max price", Filters{MaxPrice: 350}, []string{"Amit"}},
		{"no match is empty", Filters{Query: "plumber"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Search(context.Background(), "electrician", tc.filters)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(names(got), tc.want) {
				t.Fatalf("got %v, want %v", names(got), tc.want)
			}
		})
	}
}

func TestSearchIsDeterministicOnTies(t *testing.T) {
	dir := staticDirectory{
		{ID: "c", Name: "C", Price: 100},
		{ID: "a", Name: "A", Price: 100},
		{ID: "b", Name: "B", Price: 100},
	}
	svc := NewDefaultMatchingService(dir)

	first, _ := svc.Search(context.Background(), "x", Filters{SortBy: SortPriceLow})
	if !reflect.DeepEqual(names(first), []string{"A", "B", "C"}) {
		t.Fatalf("ties should order by id, got %v", names(first))
	}
	for i := 0; i < 5; i++ {
		again, _ := svc.Search(context.Background(), "x", Filters{SortBy: SortPriceLow})
		if !reflect.DeepEqual(names(again), names(first)) {
			t.Fatalf("run %d: %v != %v", i, names(again), names(first))
		}
	}
}

func TestFiltersFromQuery(t *testing.T) {
	query := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	f, err := FiltersFromQuery(query(map[string]string{
		"q": " ravi ", "minExperience": "3", "minRating": "4.5", "maxPrice": "500", "sortBy": "priceHigh",
	}))
	if err != nil {
		t.Fatal(err)
	}
	want := Filters{Query: "ravi", MinExperience: 3, MinRating: 4.5, MaxPrice: 500, SortBy: SortPriceHigh}
	if f != want {
		t.Fatalf("got %+v, want %+v", f, want)
	}

	for name, bad := range map[string]map[string]string{
		"unknown sort":          {"sortBy": "newest"},
		"negative experience":   {"minExperience": "-1"},
		"fractional experience": {"minExperience": "2.5"},
		"rating above five":     {"minRating": "6"},
		"zero max price":        {"maxPrice": "0"},
		"not a number":          {"maxPrice": "cheap"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FiltersFromQuery(query(bad))
			if utils.KindOf(err) != utils.KindValidation {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}
