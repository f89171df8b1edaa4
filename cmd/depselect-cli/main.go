package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/goliatone/go-depselect/components/preview"
	"github.com/goliatone/go-depselect/pkg/catalog"
	"github.com/goliatone/go-depselect/pkg/markup"
	"github.com/goliatone/go-depselect/pkg/openapi"
	"github.com/goliatone/go-depselect/pkg/tui"
)

func main() {
	source := flag.String("source", "", "OpenAPI document with x-depselect annotations")
	operation := flag.String("operation", "", "operation ID to render (optional when the document has exactly one)")
	catalogsPath := flag.String("catalogs", "", "catalog document or directory of them (JSON or YAML)")
	output := flag.String("output", "", "output file (stdout if empty)")
	serve := flag.String("serve", "", "serve the browser preview on this address instead of rendering")
	interactive := flag.Bool("tui", false, "walk the cascade in the terminal instead of rendering")
	withRuntime := flag.Bool("runtime", true, "inline the browser runtime ahead of the controls")
	flag.Parse()

	ctx := context.Background()

	store := loadStore(*catalogsPath)

	if *serve != "" {
		servePreview(ctx, *serve, store, *source, *operation)
		return
	}

	bindings := loadBindings(ctx, *source, *operation)

	if *interactive {
		runChain(ctx, store, bindings)
		return
	}

	writeOutput(*output, renderMarkup(store, bindings, *withRuntime))
}

func loadStore(path string) *catalog.Store {
	if strings.TrimSpace(path) == "" {
		return catalog.NewStore()
	}
	store, err := catalog.Load(path)
	if err != nil {
		log.Fatalf("load catalogs from %s: %v", path, err)
	}
	return store
}

func loadBindings(ctx context.Context, source, operation string) []openapi.Binding {
	if strings.TrimSpace(source) == "" {
		log.Fatalf("missing -source: point it at an OpenAPI document")
	}
	data, err := os.ReadFile(source)
	if err != nil {
		log.Fatalf("read %s: %v", source, err)
	}

	all, err := openapi.New(openapi.Options{}).Bindings(ctx, data)
	if err != nil {
		log.Fatalf("extract bindings: %v", err)
	}
	if len(all) == 0 {
		log.Fatalf("%s declares no x-depselect annotations", source)
	}

	if operation == "" {
		if len(all) > 1 {
			log.Fatalf("document has several annotated operations, pick one with -operation: %s", strings.Join(operationIDs(all), ", "))
		}
		for _, bindings := range all {
			return mustOrder(bindings)
		}
	}
	bindings, ok := all[operation]
	if !ok {
		log.Fatalf("operation %q not found, document has: %s", operation, strings.Join(operationIDs(all), ", "))
	}
	return mustOrder(bindings)
}

func operationIDs(all map[string][]openapi.Binding) []string {
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func mustOrder(bindings []openapi.Binding) []openapi.Binding {
	ordered, err := openapi.Order(bindings)
	if err != nil {
		log.Fatalf("order bindings: %v", err)
	}
	return ordered
}

func renderMarkup(store *catalog.Store, bindings []openapi.Binding, withRuntime bool) string {
	gen := markup.NewGenerator(markup.WithStore(store))
	pageCtx := markup.NewContext()

	var builder strings.Builder
	if withRuntime {
		tag, err := gen.RuntimeTag(pageCtx)
		if err != nil {
			log.Fatalf("render runtime: %v", err)
		}
		builder.WriteString(tag)
	}
	for _, binding := range bindings {
		tag, err := gen.SelectTag(pageCtx, binding.Spec())
		if err != nil {
			log.Fatalf("render %s: %v", binding.Field, err)
		}
		builder.WriteString(tag)
	}
	return builder.String()
}

func writeOutput(path, html string) {
	if path != "" {
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Markup written to %s\n", path)
		return
	}
	fmt.Println(html)
}

func runChain(ctx context.Context, store *catalog.Store, bindings []openapi.Binding) {
	// The root field carries no annotation of its own; its choices are the
	// distinct filter keys of the catalog right below it. An empty catalog
	// falls back to free input.
	chain := tui.Chain{
		Root: tui.RootField{
			Name:    rootFieldName(bindings),
			Options: resolveCatalog(store, bindings[0]).FilterKeys(),
		},
	}
	for _, binding := range bindings {
		chain.Steps = append(chain.Steps, tui.Step{
			Name:           binding.Field,
			Label:          binding.Label,
			Catalog:        resolveCatalog(store, binding),
			InitialValue:   binding.InitialValue,
			IncludeBlank:   binding.IncludeBlank,
			CollapseSpaces: binding.CollapseSpaces,
		})
	}

	values, err := tui.NewSession().Run(ctx, chain)
	if err != nil {
		log.Fatalf("walk cascade: %v", err)
	}
	fmt.Printf("%s=%s\n", chain.Root.Name, values[chain.Root.Name])
	for _, step := range chain.Steps {
		fmt.Printf("%s=%s\n", step.Name, values[step.Name])
	}
}

func servePreview(ctx context.Context, addr string, store *catalog.Store, source, operation string) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	fns := []preview.OptionFn{preview.WithLogger(logger)}
	if strings.TrimSpace(source) != "" {
		bindings := loadBindings(ctx, source, operation)
		controls := make([]markup.Spec, 0, len(bindings))
		for _, binding := range bindings {
			controls = append(controls, binding.Spec())
		}
		fns = append(fns,
			preview.WithStore(store),
			preview.WithControls(controls),
			preview.WithRoot(rootControl(store, bindings)),
		)
	}

	component := preview.New(fns...)
	server := &http.Server{
		Addr:         addr,
		Handler:      component.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("preview listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve preview: %v", err)
	}
}

// rootFieldName is the field the first binding observes, which the document
// does not annotate because nothing filters it.
func rootFieldName(bindings []openapi.Binding) string {
	return strings.TrimPrefix(bindings[0].Observes, "#")
}

// rootControl builds the hand-written top of the cascade. Its element id has
// to match what the first generated control observes, and its options come
// from the first catalog's distinct filter keys.
func rootControl(store *catalog.Store, bindings []openapi.Binding) preview.RootControl {
	first := bindings[0]
	name := rootFieldName(bindings)

	id := first.Spec().Observes
	root := preview.RootControl{ID: id, Name: name, Label: name}
	for _, key := range resolveCatalog(store, first).FilterKeys() {
		root.Options = append(root.Options, preview.Choice{Text: key, Value: key})
	}
	return root
}

func resolveCatalog(store *catalog.Store, binding openapi.Binding) catalog.Catalog {
	if binding.CatalogName == "" {
		return binding.Catalog
	}
	rows, err := store.Get(binding.CatalogName)
	if err != nil {
		log.Fatalf("catalog %s: %v", binding.CatalogName, err)
	}
	return rows
}
