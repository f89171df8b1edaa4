package markup_test

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/goliatone/go-depselect/pkg/catalog"
	"github.com/goliatone/go-depselect/pkg/markup"
	"github.com/goliatone/go-depselect/pkg/testsupport"
)

func goldenPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve caller for testdata path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", "golden", name)
}

// The golden covers a full page head-to-toe: theme assets, runtime reference,
// a store-backed control with label and description, and an inline-catalog
// control observing the first one.
func TestGenerator_GoldenPage(t *testing.T) {
	store := catalog.NewStore()
	if err := store.Register("states", statesCatalog()); err != nil {
		t.Fatalf("register states: %v", err)
	}

	gen := markup.NewGenerator(
		markup.WithStore(store),
		markup.WithTheme(testTheme()),
		markup.WithRuntimeURL("/assets/depselect.js"),
	)
	ctx := markup.NewContext()

	var page strings.Builder
	for _, render := range []func() (string, error){
		func() (string, error) { return gen.ThemeAssets(ctx) },
		func() (string, error) { return gen.RuntimeTag(ctx) },
		func() (string, error) {
			return gen.SelectTag(ctx, markup.Spec{
				Name:         "state",
				Observes:     "country",
				CatalogName:  "states",
				InitialValue: "2",
				Label:        "State",
				Description:  "Filters by the **country** field.",
				IncludeBlank: true,
			})
		},
		func() (string, error) {
			return gen.SelectTag(ctx, markup.Spec{
				Name:     "city",
				Observes: markup.ControlID("state"),
				Catalog: catalog.Catalog{
					{Text: "Montgomery", Value: "mgm", FilterKey: "1"},
					{Text: "Juneau", Value: "jnu", FilterKey: "2"},
					{Text: "Montreal", Value: "yul", FilterKey: "3"},
				},
			})
		},
	} {
		chunk, err := render()
		if err != nil {
			t.Fatalf("render page chunk: %v", err)
		}
		page.WriteString(chunk)
	}

	golden := goldenPath(t, "page.html")
	if testsupport.WriteMaybeGolden(t, golden, []byte(page.String())) {
		return
	}
	want := testsupport.MustReadGoldenString(t, golden)
	if diff := testsupport.CompareGolden(want, page.String()); diff != "" {
		t.Errorf("page markup mismatch (-want +got):\n%s", diff)
	}
}
