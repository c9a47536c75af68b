package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/duhBlu/gridfilter/eval"
	"github.com/duhBlu/gridfilter/executor"
	"github.com/duhBlu/gridfilter/optimize"
	"github.com/duhBlu/gridfilter/query"
	"github.com/duhBlu/gridfilter/stats"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type order struct {
	Category  string
	Product   string
	Amount    any
	OrderedAt time.Time
}

var categories = []string{"tools", "garden", "office", "kitchen"}

func genOrders(n int) []order {
	out := make([]order, n)

	for i := 0; i < n; i++ {
		cat := categories[rand.Intn(len(categories))]

		out[i] = order{
			Category:  cat,
			Product:   fmt.Sprintf("%s-item-%02d", cat, rand.Intn(20)),
			Amount:    float64(rand.Intn(900) + 50),
			OrderedAt: time.Now().AddDate(0, 0, -rand.Intn(5)),
		}

		// sprinkle some unparsable and missing amounts to keep the
		// column mixed-type like real grid data
		switch rand.Intn(20) {
		case 0:
			out[i].Amount = nil
		case 1:
			out[i].Amount = "n/a"
		}
	}

	return out
}

func runDemo(rows, workers int, verbose bool) error {
	orders := genOrders(rows)

	amounts := make([]any, len(orders))
	for i, o := range orders {
		amounts[i] = o.Amount
	}

	cache := stats.NewCache()
	colContext, err := cache.Get(context.Background(), "amount", 1, func() []any {
		return amounts
	})
	if err != nil {
		return err
	}

	// (amount between 250 and 750 OR amount in top 3) AND amount not null
	templates := []query.Template{
		query.NewTemplate(query.Condition{
			Field:     "amount",
			Operator:  query.Between,
			Arguments: []any{250.0, 750.0},
		}).WithLink(query.Or).InGroup(1),
		query.NewTemplate(query.Condition{
			Field:     "amount",
			Operator:  query.TopN,
			Arguments: []any{3},
		}).WithLink(query.And).InGroup(1),
		query.NewTemplate(query.Condition{
			Field:    "amount",
			Operator: query.IsNotNull,
		}),
	}

	tokens := query.Tokens(templates)
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == query.TokenRemoveAction {
			continue
		}
		parts = append(parts, tok.Text)
	}
	color.Cyan("filter: %s", strings.Join(parts, " "))

	pred, err := eval.Compile(templates, &eval.Env{Context: colContext})
	if err != nil {
		return err
	}

	matched, err := executor.PassValues(context.Background(), amounts, pred, executor.PassOptions{
		Workers: workers,
	})
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "category", "product", "amount", "ordered at"})

	shown := 0
	for _, idx := range matched {
		o := orders[idx]
		t.AppendRow(table.Row{idx, o.Category, o.Product, o.Amount, o.OrderedAt.Format("2006-01-02")})

		shown++
		if shown >= 15 {
			break
		}
	}
	t.Render()
	color.Green("%d of %d rows matched", len(matched), len(orders))

	// a raw "include these values" selection of all but one category,
	// the cheap-exclusion case
	catContext, err := cache.Get(context.Background(), "category", 1, func() []any {
		cats := make([]any, len(orders))
		for i, o := range orders {
			cats[i] = o.Category
		}
		return cats
	})
	if err != nil {
		return err
	}

	domain := catContext.Domain()
	selected := []any{}
	for _, v := range domain {
		if v != "office" {
			selected = append(selected, v)
		}
	}

	optimized, info := optimize.Selection("category", selected, domain)
	color.Yellow("optimizer: %s -> %s (saved %d, gain %.2f)",
		info.OriginalStrategy, info.ChosenStrategy, info.ValuesSaved, info.GainRatio)

	if verbose {
		spew.Dump(optimized, info)
	}

	return nil
}

func main() {
	var (
		rows    int
		workers int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "gridfilter",
		Short: "filter engine demo over a generated orders table",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDemo(rows, workers, verbose)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 200, "rows to generate")
	cmd.Flags().IntVar(&workers, "workers", 0, "pass workers, 0 = number of CPUs")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "dump optimizer decisions")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
