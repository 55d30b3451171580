package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"golang.org/x/text/language"

	"github.com/oleksiit/giftrank/internal/config"
	"github.com/oleksiit/giftrank/internal/refresh"
	"github.com/oleksiit/giftrank/internal/store"
	"github.com/oleksiit/giftrank/pkg/catalog"
	"github.com/oleksiit/giftrank/pkg/engine"
	"github.com/oleksiit/giftrank/pkg/server"
)

type listOpts struct {
	file        string
	category    string
	tag         string
	search      string
	maxPrice    string
	minRating   string
	sortKey     string
	desc        bool
	bestValue   bool
	mostPopular bool
	jsonOutput  bool
	limit       int
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func buildEngine(cfg *config.Config) *engine.Engine {
	formula, _ := engine.ParseFormula(cfg.Engine.Formula)

	loc, err := language.Parse(cfg.Catalog.Locale)
	if err != nil {
		loc = language.Und
	}

	return engine.New(cfg.Engine.Weights, cfg.Engine.Thresholds, loc, formula)
}

func loadTaxonomy(cfg *config.Config) *catalog.Taxonomy {
	if cfg.Catalog.Taxonomy == "" {
		return nil
	}
	tax, err := catalog.LoadTaxonomy(cfg.Catalog.Taxonomy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "taxonomy load error (labels fall back to ids): %v\n", err)
		return nil
	}
	return tax
}

func runImport(file string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if file == "" {
		file = cfg.Catalog.Path
	}

	items, err := catalog.LoadFile(file)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	if err := db.UpsertItems(context.Background(), items); err != nil {
		return fmt.Errorf("import items: %w", err)
	}

	fmt.Fprintf(os.Stderr, "imported %d items from %s\n", len(items), file)
	return nil
}

func runList(opts listOpts) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var items []catalog.Item
	if opts.file != "" {
		items, err = catalog.LoadFile(opts.file)
		if err != nil {
			return fmt.Errorf("load corpus: %w", err)
		}
	} else {
		db, err := store.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer db.Close()

		items, err = db.ListItems(context.Background(), store.ListOpts{})
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
	}

	eng := buildEngine(cfg)
	corpus := eng.LoadCorpus(items)

	q := engine.Query{
		Category:  opts.category,
		Tag:       opts.tag,
		Search:    opts.search,
		MaxPrice:  opts.maxPrice,
		MinRating: opts.minRating,
	}

	// The quick toggles override any explicit column sort.
	switch {
	case opts.bestValue:
		q.Sort = engine.SortByValue()
	case opts.mostPopular:
		q.Sort = engine.SortByPopularity()
	default:
		if key, ok := engine.ParseSortKey(opts.sortKey); ok {
			q.Sort = engine.Sort{Key: key, Desc: opts.desc}
		}
	}

	rows := eng.Query(corpus, q)
	if opts.limit > 0 && opts.limit < len(rows) {
		rows = rows[:opts.limit]
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("no gifts found (try importing a corpus first: giftrank import)")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRICE\tSTARS\tPOP\tSCORE\tVALUE\tPRI\tCATEGORY\tTITLE")
	var sumScore, sumValue float64
	for _, r := range rows {
		fmt.Fprintf(w, "%.0f\t%.1f\t%.1f\t%.2f\t%.2f\t%d %s\t%s\t%s\n",
			r.PriceMin, r.Stars, r.PopRating, r.Score, r.Value,
			r.Priority, r.PriorityLabel, r.Category, r.Title)
		sumScore += r.Score
		sumValue += r.Value
	}
	n := float64(len(rows))
	fmt.Fprintf(w, "\t\t\tavg %.2f\tavg %.2f\t\t\t%d gifts\n", sumScore/n, sumValue/n, len(rows))
	return w.Flush()
}

func runStats(jsonOutput bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	items, err := db.ListItems(ctx, store.ListOpts{})
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	counts, err := db.CountItemsByCategory(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}

	eng := buildEngine(cfg)
	corpus := eng.LoadCorpus(items)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"aggregates": corpus.Agg,
			"formula":    corpus.Formula,
			"categories": counts,
		})
	}

	fmt.Printf("items:       %d\n", corpus.Agg.Count)
	fmt.Printf("formula:     %s\n", corpus.Formula)
	fmt.Printf("max reviews: %d\n", corpus.Agg.MaxReviews)
	fmt.Printf("value p85:   %.2f\n", corpus.Agg.ValueP85)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nCATEGORY\tITEMS")
	for _, cat := range corpus.Agg.Categories {
		fmt.Fprintf(w, "%s\t%d\n", cat, counts[cat])
	}
	return w.Flush()
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if port == 0 {
		port = cfg.Server.Port
	}

	db, err := store.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	eng := buildEngine(cfg)
	srv := server.New(db, eng, loadTaxonomy(cfg), port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Reload(ctx); err != nil {
		return fmt.Errorf("initial corpus load: %w", err)
	}

	// Periodic reload picks up re-imported catalogues.
	ref := refresh.New(srv, cfg.Server.ParseRefreshInterval())
	go func() {
		if err := ref.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "refresh error: %v\n", err)
		}
	}()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nshutting down...")
	}()

	return srv.ListenAndServe()
}
