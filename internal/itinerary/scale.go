package itinerary

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const DefaultCurrency = "INR"

// ScalingItem is one upgrade line the scaler may append to a day.
type ScalingItem struct {
	Text string `yaml:"text"`
	Cost int    `yaml:"cost"`
}

// DefaultCatalog is consumed in order. None of the texts contain a cost,
// places or day header marker, so scaled days re-parse to the same places.
var DefaultCatalog = []ScalingItem{
	{Text: "Upgrade to premium accommodation for the night", Cost: 1500},
	{Text: "Private guided tour of the day's highlights", Cost: 800},
	{Text: "Fine dining experience at a top-rated local restaurant", Cost: 1200},
	{Text: "Private transport with driver for the day", Cost: 1000},
	{Text: "Spa and wellness session", Cost: 2000},
	{Text: "Extra guided visit to a nearby heritage site", Cost: 600},
}

// Scaler raises an under-utilised itinerary toward MinUtilization of the
// budget by appending catalog items, never exceeding the budget.
type Scaler struct {
	Catalog        []ScalingItem
	MinUtilization float64
	Currency       string
}

func DefaultScaler() Scaler {
	return Scaler{
		Catalog:        DefaultCatalog,
		MinUtilization: DefaultMinUtilization,
		Currency:       DefaultCurrency,
	}
}

// Scale applies the default scaler.
func Scale(days Document, budgetValue int) (Document, string) {
	return DefaultScaler().Scale(days, budgetValue)
}

// Target is the minimum total cost the scaler aims for.
func (s Scaler) Target(budgetValue int) int {
	util := s.MinUtilization
	if util <= 0 || util > 1 {
		util = DefaultMinUtilization
	}
	// 0.7*2000 is 1399.9999... in binary floating point.
	return int(math.Floor(util*float64(budgetValue) + 1e-9))
}

// Scale walks the days in order and appends the next unused catalog item to
// the current day while it fits under the budget and the shortfall remains.
// The first item that does not fit moves the walk to the next day. The result
// is not validated; callers must re-run Validate on the returned text.
func (s Scaler) Scale(days Document, budgetValue int) (Document, string) {
	out := cloneDocument(days)
	if budgetValue <= 0 {
		return out, out.Text()
	}

	total := days.TotalCost()
	toAdd := s.Target(budgetValue) - total
	if toAdd <= 0 {
		return out, out.Text()
	}

	currency := s.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	grand := total
	added := 0
	next := 0
	for i := range out {
		if added >= toAdd || next >= len(s.Catalog) {
			break
		}

		var (
			lines    strings.Builder
			dayAdded int
		)
		for next < len(s.Catalog) && added < toAdd {
			item := s.Catalog[next]
			if addCost(grand, item.Cost) > budgetValue {
				break
			}
			fmt.Fprintf(&lines, "\n• %s (approx %d %s)", item.Text, item.Cost, currency)
			grand = addCost(grand, item.Cost)
			added = addCost(added, item.Cost)
			dayAdded = addCost(dayAdded, item.Cost)
			next++
		}
		if dayAdded == 0 {
			continue
		}

		newCost := addCost(out[i].Cost, dayAdded)
		out[i].Description = rewriteCost(out[i].Description+lines.String(), newCost, currency)
		out[i].Cost = newCost
	}

	return out, out.Text()
}

// rewriteCost replaces the digits of the first cost line, or appends one.
func rewriteCost(desc string, cost int, currency string) string {
	loc := costLineRe.FindStringSubmatchIndex(desc)
	if loc == nil {
		return fmt.Sprintf("%s\nCost: %d %s", desc, cost, currency)
	}
	return desc[:loc[2]] + strconv.Itoa(cost) + desc[loc[3]:]
}

func cloneDocument(days Document) Document {
	out := make(Document, len(days))
	for i, d := range days {
		d.Places = append([]string{}, d.Places...)
		out[i] = d
	}
	return out
}
