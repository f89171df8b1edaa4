package dom_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	depselect "github.com/goliatone/go-depselect"
	"github.com/goliatone/go-depselect/pkg/catalog"
)

func statesCatalog() catalog.Catalog {
	return catalog.Catalog{
		{Text: "Alabama", Value: "1", FilterKey: "1"},
		{Text: "Alaska", Value: "2", FilterKey: "1"},
		{Text: "Quebec", Value: "3", FilterKey: "2"},
	}
}

func citiesCatalog() catalog.Catalog {
	return catalog.Catalog{
		{Text: "Birmingham", Value: "bhm", FilterKey: "1"},
		{Text: "Anchorage", Value: "anc", FilterKey: "2"},
		{Text: "Montreal", Value: "yul", FilterKey: "3"},
	}
}

const editFormPage = `<!DOCTYPE html>
<html>
<body>
  <form>
    <select id="country">
      <option value="1" selected>USA</option>
      <option value="2">Canada</option>
    </select>
    <select id="state"></select>
  </form>
</body>
</html>`

func TestBinder_OverParsedPage(t *testing.T) {
	doc := parsePage(t, editFormPage)

	binder, err := depselect.NewBinder(doc)
	if err != nil {
		t.Fatalf("new binder: %v", err)
	}
	err = binder.Bind(depselect.Binding{
		DependentID:    "state",
		ObservedID:     "country",
		Catalog:        statesCatalog(),
		InitialValue:   "2",
		IncludeBlank:   true,
		CollapseSpaces: true,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	state, _ := doc.Select("state")
	want := []depselect.Option{
		{},
		{Text: "Alabama", Value: "1"},
		{Text: "Alaska", Value: "2", Selected: true},
	}
	if diff := cmp.Diff(want, state.Options()); diff != "" {
		t.Fatalf("first run options mismatch (-want +got):\n%s", diff)
	}
	if got := state.Value(); got != "2" {
		t.Fatalf("edit form should restore the persisted state, got %q", got)
	}

	// The user flips the country; the old selection does not survive the new
	// filter, so the blank option shows.
	country, _ := doc.Select("country")
	country.ChangeValue("2")

	want = []depselect.Option{
		{},
		{Text: "Quebec", Value: "3"},
	}
	if diff := cmp.Diff(want, state.Options()); diff != "" {
		t.Fatalf("rebuild options mismatch (-want +got):\n%s", diff)
	}
	if got := state.Value(); got != "" {
		t.Fatalf("blank option should show after the filter change, got %q", got)
	}
}

func TestBinder_RenderedMarkupIsPreSynchronized(t *testing.T) {
	doc := parsePage(t, editFormPage)

	binder, _ := depselect.NewBinder(doc)
	err := binder.Bind(depselect.Binding{
		DependentID:    "state",
		ObservedID:     "country",
		Catalog:        statesCatalog(),
		InitialValue:   "2",
		IncludeBlank:   true,
		CollapseSpaces: true,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	markup, err := doc.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(markup, `<option value="2" selected="selected">Alaska</option>`) {
		t.Fatalf("markup should ship with the restored selection:\n%s", markup)
	}
	if !strings.Contains(markup, `<option value=""></option>`) {
		t.Fatalf("markup should carry the blank option:\n%s", markup)
	}
}

func TestBinder_ThreeLevelChain(t *testing.T) {
	doc := parsePage(t, `<body>
		<select id="country">
			<option value="1" selected>USA</option>
			<option value="2">Canada</option>
		</select>
		<select id="state"></select>
		<select id="city"></select>
	</body>`)

	binder, _ := depselect.NewBinder(doc)
	err := binder.BindAll(
		depselect.Binding{
			DependentID:    "state",
			ObservedID:     "country",
			Catalog:        statesCatalog(),
			CollapseSpaces: true,
		},
		depselect.Binding{
			DependentID:    "city",
			ObservedID:     "state",
			Catalog:        citiesCatalog(),
			CollapseSpaces: true,
		},
	)
	if err != nil {
		t.Fatalf("bind all: %v", err)
	}

	city, _ := doc.Select("city")
	if got := city.Value(); got != "bhm" {
		t.Fatalf("chain should settle on Birmingham, got %q", got)
	}

	country, _ := doc.Select("country")
	country.ChangeValue("2")

	if got := city.Value(); got != "yul" {
		t.Fatalf("one edit should ripple to the bottom of the chain, got %q", got)
	}
}

func TestBinder_ObservedInput(t *testing.T) {
	doc := parsePage(t, `<body>
		<input id="country" value="2">
		<select id="state"></select>
	</body>`)

	binder, _ := depselect.NewBinder(doc)
	err := binder.Bind(depselect.Binding{
		DependentID:    "state",
		ObservedID:     "country",
		Catalog:        statesCatalog(),
		IncludeBlank:   true,
		CollapseSpaces: true,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	state, _ := doc.Select("state")
	want := []string{"", "Quebec"}
	var texts []string
	for _, opt := range state.Options() {
		texts = append(texts, opt.Text)
	}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Fatalf("texts mismatch (-want +got):\n%s", diff)
	}
}

func TestBinder_InputEditRebuilds(t *testing.T) {
	doc := parsePage(t, `<body>
		<input id="country" value="1">
		<select id="state"></select>
	</body>`)

	binder, _ := depselect.NewBinder(doc)
	err := binder.Bind(depselect.Binding{
		DependentID:    "state",
		ObservedID:     "country",
		Catalog:        statesCatalog(),
		CollapseSpaces: true,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	state, _ := doc.Select("state")
	if got := state.Value(); got != "1" {
		t.Fatalf("first run should land on Alabama, got %q", got)
	}

	country, _ := doc.Input("country")
	country.ChangeValue("2")

	if got := state.Value(); got != "3" {
		t.Fatalf("typing a new key should rebuild the select, got %q", got)
	}
}

func TestBinder_NoBreakSpacesSurviveSerialization(t *testing.T) {
	doc := parsePage(t, `<body>
		<input id="country" value="au">
		<select id="state"></select>
	</body>`)

	cat := catalog.Catalog{
		{Text: "New South Wales", Value: "nsw", FilterKey: "au"},
	}

	binder, _ := depselect.NewBinder(doc)
	err := binder.Bind(depselect.Binding{
		DependentID: "state",
		ObservedID:  "country",
		Catalog:     cat,
	})
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	markup, err := doc.HTML()
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(markup, "New South Wales") {
		t.Fatalf("no-break spaces should survive serialization:\n%s", markup)
	}
}
