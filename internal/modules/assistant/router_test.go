package assistant

import "testing"

func TestRouteLocationQuestions(t *testing.T) {
	router := NewKeywordRouter("general-model", "search-model")

	cases := []string{
		"find vets nearby",
		"Is there a 24h animal hospital around me?",
		"closest pet pharmacy",
		"recommend a grooming salon",
		"where can I board my dog? any good kennel?",
	}
	for _, q := range cases {
		d := router.Route(q)
		if !d.UseLocationTool {
			t.Fatalf("%q should select the location tool", q)
		}
		if d.Model != "search-model" {
			t.Fatalf("%q should use the search model, got %s", q, d.Model)
		}
	}
}

func TestRouteGeneralQuestions(t *testing.T) {
	router := NewKeywordRouter("general-model", "search-model")

	cases := []string{
		"when was Luna's last vaccine?",
		"how much should a 4kg cat eat per day",
		"summarize the care journal",
	}
	for _, q := range cases {
		d := router.Route(q)
		if d.UseLocationTool {
			t.Fatalf("%q should not select the location tool", q)
		}
		if d.Model != "general-model" {
			t.Fatalf("%q should use the general model, got %s", q, d.Model)
		}
	}
}
