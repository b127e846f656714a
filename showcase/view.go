package showcase

import (
	"lumina-store/models"
	"lumina-store/services"
)

// DescriptionLimit is the number of characters shown before "Read More".
const DescriptionLimit = 100

// LoadingMessage is shown in place of the grid during an initial load.
const LoadingMessage = "Loading products…"

// View is the render-ready form of a State.
type View struct {
	Filter       models.FilterState `json:"filter"`
	PendingPrice models.PriceRange  `json:"pending_price"`
	Page         models.PageState   `json:"page"`
	// StatusMessage replaces the grid while loading or after an error.
	StatusMessage   string        `json:"status_message,omitempty"`
	Products        []ProductView `json:"products"`
	LoadMoreEnabled bool          `json:"load_more_enabled"`
	LoadMoreLabel   string        `json:"load_more_label"`
}

// ProductView is one product card.
type ProductView struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Truncated   bool    `json:"truncated"`
	Expanded    bool    `json:"expanded"`
	Price       string  `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      float64 `json:"rating"`
	New         bool    `json:"new"`
}

// View renders the current state.
func (s *Showcase) View() View {
	return Render(s.Snapshot())
}

// Render builds the View for a state.
func Render(st State) View {
	v := View{
		Filter:          st.Filter,
		PendingPrice:    st.PendingPrice,
		Page:            st.Page,
		Products:        []ProductView{},
		LoadMoreEnabled: st.Page.CanLoadMore(),
	}

	switch {
	case st.Page.Status == models.StatusLoadingMore:
		v.LoadMoreLabel = "Loading..."
	case st.Page.HasMore:
		v.LoadMoreLabel = "Load More Products"
	default:
		v.LoadMoreLabel = "No More Products"
	}

	switch st.Page.Status {
	case models.StatusLoading:
		v.StatusMessage = LoadingMessage
		return v
	case models.StatusError:
		v.StatusMessage = st.Page.Error
		return v
	}

	for _, p := range st.Products {
		expanded := st.Expanded[p.ID]
		desc, long := describe(p.Description, expanded)
		v.Products = append(v.Products, ProductView{
			ID:          p.ID,
			Title:       p.Title,
			Description: desc,
			Truncated:   long && !expanded,
			Expanded:    long && expanded,
			Price:       services.FormatCurrency(p.Price),
			Category:    p.Category,
			Image:       p.Image,
			Rating:      p.DisplayRating(),
			New:         p.IsNew(),
		})
	}
	return v
}

func describe(description string, expanded bool) (string, bool) {
	r := []rune(description)
	if len(r) <= DescriptionLimit {
		return description, false
	}
	if expanded {
		return description, true
	}
	return string(r[:DescriptionLimit]) + "…", true
}
