// Package charts renders dashboard figures as PNG images.
package charts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"paisa/internal/core"
)

// Generator renders aggregate results into PNG charts.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func rupees(v any) string {
	return fmt.Sprintf("₹%.0f", v.(float64))
}

// CategoryPie renders the spend distribution across categories. Slices below
// one percent of the total are folded out to keep labels readable.
func (g *Generator) CategoryPie(categories []core.CategoryAmount) ([]byte, error) {
	if len(categories) == 0 {
		return nil, nil
	}

	var total int64
	for _, cat := range categories {
		total += cat.Amount.Cents
	}
	if total == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(categories))
	for _, cat := range categories {
		percentage := float64(cat.Amount.Cents) / float64(total) * 100
		if percentage <= 1.0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: ₹%.0f (%.1f%%)", cat.Name, cat.Amount.Rupees(), percentage),
			Value: cat.Amount.Rupees(),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render category pie: %w", err)
	}

	return buffer.Bytes(), nil
}

// ModeSplitPie renders the cash versus online expense split.
func (g *Generator) ModeSplitPie(split core.ModeSplitTotals) ([]byte, error) {
	if split.Cash.Cents == 0 && split.Online.Cents == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, 2)
	if split.Online.Cents > 0 {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("Online: ₹%.0f", split.Online.Rupees()),
			Value: split.Online.Rupees(),
			Style: chart.Style{
				FillColor: chart.ColorBlue,
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}
	if split.Cash.Cents > 0 {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("Cash: ₹%.0f", split.Cash.Rupees()),
			Value: split.Cash.Rupees(),
			Style: chart.Style{
				FillColor: chart.ColorGreen,
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Width:  600,
		Height: 600,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    30,
				Left:   30,
				Right:  30,
				Bottom: 30,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render mode split pie: %w", err)
	}

	return buffer.Bytes(), nil
}

// DailySeries renders the spending history as a time series line.
func (g *Generator) DailySeries(series []core.DailyAmount) ([]byte, error) {
	// go-chart needs at least two points to draw a line.
	if len(series) < 2 {
		return nil, nil
	}

	xValues := make([]time.Time, len(series))
	yValues := make([]float64, len(series))
	for i, point := range series {
		day, err := time.Parse("2006-01-02", point.Date)
		if err != nil {
			return nil, fmt.Errorf("parse day bucket %q: %w", point.Date, err)
		}
		xValues[i] = day
		yValues[i] = point.Amount.Rupees()
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("02 Jan"),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: rupees,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Spent",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 2,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render daily series: %w", err)
	}

	return buffer.Bytes(), nil
}

// BudgetBar renders used versus remaining budget as a bar chart.
func (g *Generator) BudgetBar(split core.BudgetSplit) ([]byte, error) {
	if split.Income.Cents == 0 && split.Used.Cents == 0 {
		return nil, nil
	}

	bars := []chart.Value{
		{
			Label: fmt.Sprintf("Income: ₹%.0f", split.Income.Rupees()),
			Value: split.Income.Rupees(),
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				FillColor:   chart.ColorBlue,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		},
		{
			Label: fmt.Sprintf("Used: ₹%.0f", split.Used.Rupees()),
			Value: split.Used.Rupees(),
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				FillColor:   chart.ColorRed,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		},
		{
			Label: fmt.Sprintf("Remaining: ₹%.0f", split.Remaining.Rupees()),
			Value: split.Remaining.Rupees(),
			Style: chart.Style{
				StrokeColor: chart.ColorGreen,
				FillColor:   chart.ColorGreen,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		},
	}

	graph := chart.BarChart{
		Width:    800,
		Height:   400,
		BarWidth: 80,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: rupees,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render budget bar: %w", err)
	}

	return buffer.Bytes(), nil
}
