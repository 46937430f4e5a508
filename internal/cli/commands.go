package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/brewery-dashboard/internal/domain"
	"github.com/couchcryptid/brewery-dashboard/internal/tui"
)

const barWidth = 40

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(_ []string) error {
	svc, err := c.rt.loadedService()
	if err != nil {
		return err
	}
	stats := svc.View(domain.Query{}).Stats

	return emit(c.rt.out, c.rt.globals.Format, stats, func(w io.Writer) error {
		fmt.Fprintf(w, "Total Breweries:  %d\n", stats.Total)
		fmt.Fprintf(w, "Most Common Type: %s\n", stats.MostCommonType)
		fmt.Fprintf(w, "States:           %d\n", stats.UniqueStateCount)
		return nil
	})
}

type listOutput struct {
	Query        domain.Query `json:"query"`
	TotalVisible int          `json:"total_visible"`
	Page         domain.Page  `json:"page"`
}

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(_ []string) error {
	if !domain.IsFilterType(c.Type) {
		return fmt.Errorf("unknown --type %q (see `brewstat types`)", c.Type)
	}

	svc, err := c.rt.loadedService()
	if err != nil {
		return err
	}
	v := svc.View(domain.Query{Search: c.Search, Type: c.Type})
	out := listOutput{
		Query:        v.Query,
		TotalVisible: v.TotalVisible,
		Page:         domain.Paginate(v.Records, c.Page, c.PerPage),
	}

	return emit(c.rt.out, c.rt.globals.Format, out, func(w io.Writer) error {
		if out.TotalVisible == 0 {
			fmt.Fprintln(w, "No breweries match.")
			return nil
		}
		fmt.Fprintf(w, "Showing %d of %d breweries (page %d/%d)\n\n",
			len(out.Page.Items), out.TotalVisible, out.Page.Page, out.Page.TotalPages)
		for i, b := range out.Page.Items {
			n := (out.Page.Page-1)*out.Page.PerPage + i + 1
			fmt.Fprintf(w, "%d. %s [%s]\n", n, b.Name, b.TypeLabel())
			if loc := location(b); loc != "" {
				fmt.Fprintf(w, "   %s\n", loc)
			}
		}
		return nil
	})
}

// Execute implements the go-flags Commander interface for ShowCommand.
func (c *ShowCommand) Execute(_ []string) error {
	svc, err := c.rt.service()
	if err != nil {
		return err
	}
	b, err := svc.Detail(c.rt.ctx, c.ID)
	if err != nil {
		return fmt.Errorf("brewery %q: %w", c.ID, err)
	}

	return emit(c.rt.out, c.rt.globals.Format, b, func(w io.Writer) error {
		fmt.Fprintf(w, "%s\n", b.Name)
		field(w, "Type", b.TypeLabel())
		field(w, "Address", b.FormattedAddress())
		field(w, "Location", location(b))
		field(w, "Postal Code", b.PostalCode)
		field(w, "Country", b.Country)
		field(w, "Phone", b.Phone)
		field(w, "Website", b.WebsiteURL)
		if b.HasCoordinates() {
			field(w, "Coordinates", b.Latitude.String()+", "+b.Longitude.String())
		}
		return nil
	})
}

// Execute implements the go-flags Commander interface for ChartsCommand.
func (c *ChartsCommand) Execute(_ []string) error {
	svc, err := c.rt.loadedService()
	if err != nil {
		return err
	}
	charts := svc.Charts()

	return emit(c.rt.out, c.rt.globals.Format, charts, func(w io.Writer) error {
		writeChart(w, charts.Types)
		fmt.Fprintln(w)
		writeChart(w, charts.States)
		return nil
	})
}

// Execute implements the go-flags Commander interface for TypesCommand.
func (c *TypesCommand) Execute(_ []string) error {
	opts := domain.FilterOptions()
	return emit(c.rt.out, c.rt.globals.Format, opts, func(w io.Writer) error {
		for _, o := range opts {
			value := o.Value
			if value == "" {
				value = `""`
			}
			fmt.Fprintf(w, "%-12s %s\n", value, o.Label)
		}
		return nil
	})
}

// Execute implements the go-flags Commander interface for TUICommand.
func (c *TUICommand) Execute(_ []string) error {
	svc, err := c.rt.service()
	if err != nil {
		return err
	}
	return tui.Run(c.rt.ctx, svc)
}

func location(b domain.Brewery) string {
	parts := make([]string, 0, 2)
	if b.City != "" {
		parts = append(parts, b.City)
	}
	if s := b.StateLabel(); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func field(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func writeChart(w io.Writer, c domain.Chart) {
	fmt.Fprintln(w, c.Title)
	if len(c.Labels) == 0 {
		fmt.Fprintln(w, "  (no data)")
		return
	}

	labelWidth, peak := 0, 0
	for i, l := range c.Labels {
		labelWidth = max(labelWidth, len(l))
		peak = max(peak, c.Values[i])
	}
	for i, l := range c.Labels {
		n := max(1, c.Values[i]*barWidth/peak)
		fmt.Fprintf(w, "  %-*s %s %d\n", labelWidth, l, strings.Repeat("#", n), c.Values[i])
	}
}
