package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lumina-store/models"
	"lumina-store/services"
	"lumina-store/showcase"
	"lumina-store/storage"
)

var browseOpts struct {
	category string
	sort     string
	search   string
	min      int
	max      int
	pages    int
	csv      bool
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Print the product showcase for a filter selection",
	Example: `  lumina browse --category apparel --min 30 --max 480 --sort priceAsc
  lumina browse --search backpack --pages 2 --csv`,
	RunE: runBrowse,
}

func init() {
	f := browseCmd.Flags()
	f.StringVar(&browseOpts.category, "category", "all", "all, apparel, accessories or tech")
	f.StringVar(&browseOpts.sort, "sort", "featured", "featured, priceAsc or priceDesc")
	f.StringVar(&browseOpts.search, "search", "", "free-text search over title, description and category")
	f.IntVar(&browseOpts.min, "min", models.DefaultPriceRange.Min, "minimum price")
	f.IntVar(&browseOpts.max, "max", models.DefaultPriceRange.Max, "maximum price")
	f.IntVar(&browseOpts.pages, "pages", 1, "number of pages to load")
	f.BoolVar(&browseOpts.csv, "csv", false, "also export the shown products to CSV_OUTPUT_PATH")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	category, err := models.ParseCategory(browseOpts.category)
	if err != nil {
		return err
	}
	sort, err := models.ParseSort(browseOpts.sort)
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(ctx)
	if err != nil {
		return err
	}
	defer closeSrc()

	price := models.DefaultPriceRange.WithMax(browseOpts.max).WithMin(browseOpts.min).WithMax(browseOpts.max)
	filter := models.FilterState{Category: category, Price: price, Sort: sort, Search: browseOpts.search}

	sc := showcase.New(src, showcase.Options{
		PageSize:   cfg.PageSize,
		FetchLimit: cfg.FetchLimit,
		Filter:     &filter,
	}, logger)
	defer sc.Close()

	if err := sc.Load(ctx); err != nil {
		return err
	}

	for page := 2; page <= browseOpts.pages; page++ {
		if err := sc.LoadMore(ctx); err != nil {
			if errors.Is(err, showcase.ErrPagingDisabled) {
				break
			}
			return err
		}
	}

	st := sc.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n  %s | $%d-$%d | %s | page %d\n\n",
		st.Filter.Category.Label(), st.Filter.Price.Min, st.Filter.Price.Max, st.Filter.Sort, st.Page.Page)
	if len(st.Products) == 0 {
		fmt.Fprintln(out, "  No products match these filters")
	}
	services.PrintProducts(out, st.Products)
	view := showcase.Render(st)
	fmt.Fprintf(out, "\n  [%s]\n", view.LoadMoreLabel)

	insights := services.NewInsightService(logger)
	insights.Print(out, insights.Generate(st.Products))

	if browseOpts.csv {
		w, err := storage.NewCSVWriter(cfg.CSVOutputPath)
		if err != nil {
			return err
		}
		if err := export(w, st.Products); err != nil {
			return err
		}
		logger.Info("Exported %d products to %s", len(st.Products), cfg.CSVOutputPath)
	}
	return nil
}

func export(w storage.ProductExporter, products []models.Product) error {
	if err := w.WriteProducts(products); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
