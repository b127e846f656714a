package services

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"lumina-store/models"
	"lumina-store/utils"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	priceStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	expStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	boldStyle    = lipgloss.NewStyle().Bold(true)
	badgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Padding(0, 1)
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(products []models.Product) *models.InsightReport {
	report := &models.InsightReport{
		ProductsByCategory: make(map[string]int),
		TopRated:           []*models.Product{},
	}

	if len(products) == 0 {
		return report
	}

	report.TotalProducts = len(products)

	var priced []*models.Product
	var rated []*models.Product

	for i := range products {
		p := &products[i]
		if p.IsNew() {
			report.NewProducts++
		}
		if p.Price.IsPositive() {
			priced = append(priced, p)
		}
		if p.Rating != nil && p.Rating.Rate > 0 {
			rated = append(rated, p)
		}
		if p.Category != "" {
			report.ProductsByCategory[p.Category]++
		}
	}

	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		report.MostExpensive = priced[0]
		total := decimal.Zero
		for _, p := range priced {
			total = total.Add(p.Price)
			if p.Price.LessThan(report.MinPrice) {
				report.MinPrice = p.Price
			}
			if p.Price.GreaterThan(report.MaxPrice) {
				report.MaxPrice = p.Price
				report.MostExpensive = p
			}
		}
		report.AveragePrice = total.Div(decimal.NewFromInt(int64(len(priced)))).Round(2)
	}

	// Top 5 by rating
	slices.SortStableFunc(rated, func(a, b *models.Product) int {
		return cmp.Compare(b.Rating.Rate, a.Rating.Rate)
	})
	if len(rated) > 5 {
		rated = rated[:5]
	}
	report.TopRated = rated

	s.logger.Debug("[insights] %d products across %d categories", report.TotalProducts, len(report.ProductsByCategory))
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(sep))
	fmt.Fprintf(w, "%s\n", titleStyle.Render("  SHOWCASE INSIGHTS"))
	fmt.Fprintf(w, "%s\n\n", titleStyle.Render(sep))

	fmt.Fprintf(w, "%s\n", sectionStyle.Render("  Overview"))
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Products shown : %s\n", boldStyle.Render(fmt.Sprint(r.TotalProducts)))
	fmt.Fprintf(w, "  New arrivals   : %s\n\n", boldStyle.Render(fmt.Sprint(r.NewProducts)))

	fmt.Fprintf(w, "%s\n", sectionStyle.Render("  Price Statistics"))
	fmt.Fprintf(w, "  %s\n", thin)
	if r.AveragePrice.IsPositive() {
		fmt.Fprintf(w, "  Average price : %s\n", priceStyle.Render(FormatCurrency(r.AveragePrice)))
		fmt.Fprintf(w, "  Minimum price : %s\n", priceStyle.Render(FormatCurrency(r.MinPrice)))
		fmt.Fprintf(w, "  Maximum price : %s\n", priceStyle.Render(FormatCurrency(r.MaxPrice)))
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	if r.MostExpensive != nil {
		fmt.Fprintf(w, "%s\n", sectionStyle.Render("  Most Expensive Product"))
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s\n", truncate(r.MostExpensive.Title, 50))
		fmt.Fprintf(w, "  Category : %s\n", r.MostExpensive.Category)
		fmt.Fprintf(w, "  Price    : %s\n\n", expStyle.Render(FormatCurrency(r.MostExpensive.Price)))
	}

	fmt.Fprintf(w, "%s\n", sectionStyle.Render("  Top Rated"))
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopRated) == 0 {
		fmt.Fprintf(w, "  No rated products found\n")
	} else {
		for i, p := range r.TopRated {
			fmt.Fprintf(w, "  %s %-40s %s\n",
				boldStyle.Render(fmt.Sprintf("%d.", i+1)),
				truncate(p.Title, 38),
				priceStyle.Render(fmt.Sprintf("%.1f ★", p.Rating.Rate)))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s\n", sectionStyle.Render("  Products by Category"))
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.ProductsByCategory) == 0 {
		fmt.Fprintf(w, "  No category data\n")
	} else {
		type catCount struct {
			cat   string
			count int
		}
		var cats []catCount
		for cat, cnt := range r.ProductsByCategory {
			cats = append(cats, catCount{cat, cnt})
		}
		slices.SortFunc(cats, func(a, b catCount) int {
			if c := cmp.Compare(b.count, a.count); c != 0 {
				return c
			}
			return strings.Compare(a.cat, b.cat)
		})
		for _, cc := range cats {
			bar := strings.Repeat("█", cc.count)
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(cc.cat, 28), bar, cc.count)
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", titleStyle.Render(sep))
}

// PrintProducts renders a product grid as a terminal list.
func PrintProducts(w io.Writer, products []models.Product) {
	for _, p := range products {
		badge := ""
		if p.IsNew() {
			badge = " " + badgeStyle.Render("New")
		}
		fmt.Fprintf(w, "  %s%s\n", boldStyle.Render(p.Title), badge)
		fmt.Fprintf(w, "    %s  ★ %.1f  [%s]\n",
			priceStyle.Render(FormatCurrency(p.Price)), p.DisplayRating(), p.Category)
	}
}

// FormatCurrency renders an amount as US dollars, e.g. $1,234.50.
func FormatCurrency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
