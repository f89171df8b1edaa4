package preview

import (
	"github.com/goliatone/go-depselect/pkg/catalog"
	"github.com/goliatone/go-depselect/pkg/markup"
)

// DemoStore returns the catalogs behind the built-in demo form: states keyed
// by country code and cities keyed by state value.
func DemoStore() *catalog.Store {
	store := catalog.NewStore()
	store.MustRegister("states", catalog.Catalog{
		{Text: "Alabama", Value: "1", FilterKey: "us"},
		{Text: "Alaska", Value: "2", FilterKey: "us"},
		{Text: "New York", Value: "4", FilterKey: "us"},
		{Text: "Quebec", Value: "3", FilterKey: "ca"},
		{Text: "British Columbia", Value: "5", FilterKey: "ca"},
	})
	store.MustRegister("cities", catalog.Catalog{
		{Text: "Montgomery", Value: "mgm", FilterKey: "1"},
		{Text: "Juneau", Value: "jnu", FilterKey: "2"},
		{Text: "New York City", Value: "nyc", FilterKey: "4"},
		{Text: "Montreal", Value: "yul", FilterKey: "3"},
		{Text: "Vancouver", Value: "yvr", FilterKey: "5"},
	})
	return store
}

// DemoRoot returns the country select the demo cascade starts from.
func DemoRoot() RootControl {
	return RootControl{
		ID:    "country",
		Name:  "country",
		Label: "Country",
		Options: []Choice{
			{Text: "United States", Value: "us"},
			{Text: "Canada", Value: "ca"},
		},
	}
}

// DemoControls returns the state and city selects of the demo cascade.
func DemoControls() []markup.Spec {
	return []markup.Spec{
		{
			Name:         "state",
			Observes:     "country",
			CatalogName:  "states",
			Label:        "State",
			IncludeBlank: true,
		},
		{
			Name:        "city",
			Observes:    markup.ControlID("state"),
			CatalogName: "cities",
			Label:       "City",
		},
	}
}
