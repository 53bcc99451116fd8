package charts

import (
	"bytes"
	"testing"
	"time"

	"paisa/internal/core"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func money(cents int64) core.Money {
	return core.Money{Cents: cents}
}

func TestCategoryPie(t *testing.T) {
	g := NewGenerator()

	t.Run("empty input renders nothing", func(t *testing.T) {
		png, err := g.CategoryPie(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if png != nil {
			t.Fatalf("expected nil image, got %d bytes", len(png))
		}
	})

	t.Run("renders png", func(t *testing.T) {
		png, err := g.CategoryPie([]core.CategoryAmount{
			{Name: "Food Essential", Amount: money(120000)},
			{Name: "Travel", Amount: money(45000)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(png, pngMagic) {
			t.Fatal("expected PNG output")
		}
	})

	t.Run("folds out tiny slices", func(t *testing.T) {
		png, err := g.CategoryPie([]core.CategoryAmount{
			{Name: "Tiny", Amount: money(1)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.HasPrefix(png, pngMagic) {
			t.Fatal("a single category is always a full slice")
		}
	})
}

func TestModeSplitPie(t *testing.T) {
	g := NewGenerator()

	png, err := g.ModeSplitPie(core.ModeSplitTotals{
		Online: money(30000),
		Cash:   money(10000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatal("expected PNG output")
	}

	png, err = g.ModeSplitPie(core.ModeSplitTotals{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if png != nil {
		t.Fatal("expected nil image for empty split")
	}
}

func TestDailySeries(t *testing.T) {
	g := NewGenerator()

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	series := []core.DailyAmount{
		{Date: day.Format("2006-01-02"), Amount: money(5000)},
		{Date: day.AddDate(0, 0, 1).Format("2006-01-02"), Amount: money(7500)},
		{Date: day.AddDate(0, 0, 2).Format("2006-01-02"), Amount: money(2500)},
	}

	png, err := g.DailySeries(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatal("expected PNG output")
	}

	png, err = g.DailySeries(series[:1])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if png != nil {
		t.Fatal("a single point cannot make a line")
	}
}

func TestBudgetBar(t *testing.T) {
	g := NewGenerator()

	png, err := g.BudgetBar(core.BudgetSplit{
		Used:      money(40000),
		Remaining: money(60000),
		Income:    money(100000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatal("expected PNG output")
	}

	png, err = g.BudgetBar(core.BudgetSplit{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if png != nil {
		t.Fatal("expected nil image for empty budget")
	}
}
