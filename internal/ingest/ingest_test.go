package ingest

import (
	"reflect"
	"strings"
	"testing"
)

func TestProcessColumnarCSV(t *testing.T) {
	csvData := "Revenue,Net Income,Cash Flow,EBITDA\n" +
		"1000000,100000,150000,200000\n" +
		"1500000,200000,250000,300000\n" +
		"2000000,300000,350000,400000\n"

	out, err := Process([]Upload{{Name: "financials.csv", Reader: strings.NewReader(csvData)}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	wantRevenue := []float64{1_000_000, 1_500_000, 2_000_000}
	if !reflect.DeepEqual(out.Revenue, wantRevenue) {
		t.Errorf("Revenue = %v, want %v", out.Revenue, wantRevenue)
	}
	if !reflect.DeepEqual(out.NetIncome, []float64{100_000, 200_000, 300_000}) {
		t.Errorf("NetIncome = %v", out.NetIncome)
	}
	if !reflect.DeepEqual(out.EBITDA, []float64{200_000, 300_000, 400_000}) {
		t.Errorf("EBITDA = %v", out.EBITDA)
	}
	if len(out.Files) != 1 || !out.Files[0].Processed {
		t.Errorf("file result = %+v", out.Files)
	}
}

func TestProcessCurrencyFormattedCells(t *testing.T) {
	csvData := "Revenue\n\"$1,000,000\"\n\"$2,000,000\"\n"
	out, err := Process([]Upload{{Name: "f.csv", Reader: strings.NewReader(csvData)}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !reflect.DeepEqual(out.Revenue, []float64{1_000_000, 2_000_000}) {
		t.Errorf("Revenue = %v", out.Revenue)
	}
}

func TestProcessYearColumnLayout(t *testing.T) {
	csvData := "Metric,2022,2023,2024\n" +
		"Revenue,1000000,1500000,2000000\n" +
		"Net Income,100000,200000,300000\n" +
		"EBITDA,150000,250000,350000\n"

	out, err := Process([]Upload{{Name: "transposed.csv", Reader: strings.NewReader(csvData)}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !reflect.DeepEqual(out.Revenue, []float64{1_000_000, 1_500_000, 2_000_000}) {
		t.Errorf("Revenue = %v", out.Revenue)
	}
	if !reflect.DeepEqual(out.NetIncome, []float64{100_000, 200_000, 300_000}) {
		t.Errorf("NetIncome = %v", out.NetIncome)
	}
}

func TestProcessMarketColumns(t *testing.T) {
	csvData := "Revenue,Market Size,Growth Rate\n1000000,25000000000,18\n2000000,,\n"
	out, err := Process([]Upload{{Name: "m.csv", Reader: strings.NewReader(csvData)}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Market.MarketSize != 25_000_000_000 {
		t.Errorf("MarketSize = %v", out.Market.MarketSize)
	}
	if out.Market.GrowthRate != 18 {
		t.Errorf("GrowthRate = %v", out.Market.GrowthRate)
	}
}

func TestProcessRejectsUnsupportedExtension(t *testing.T) {
	out, err := Process([]Upload{{Name: "report.docx", Reader: strings.NewReader("x")}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(out.Files) != 1 {
		t.Fatalf("file results = %+v", out.Files)
	}
	if out.Files[0].Processed || out.Files[0].Error == "" {
		t.Errorf("expected rejected file result, got %+v", out.Files[0])
	}
	// Nothing extractable, so the sample dataset applies.
	if !reflect.DeepEqual(out.Revenue, []float64{2_500_000, 3_200_000, 4_100_000}) {
		t.Errorf("sample revenue = %v", out.Revenue)
	}
	if out.Market.MarketSize != 50_000 || out.Market.GrowthRate != 15 {
		t.Errorf("sample market = %+v", out.Market)
	}
}

func TestProcessOversizeFile(t *testing.T) {
	big := strings.NewReader(strings.Repeat("a", MaxFileSize+1))
	out, err := Process([]Upload{{Name: "huge.csv", Reader: big}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out.Files[0].Processed {
		t.Error("oversize file must not be marked processed")
	}
	if !strings.Contains(out.Files[0].Error, "maximum size") {
		t.Errorf("error = %q", out.Files[0].Error)
	}
}

func TestProcessNoFiles(t *testing.T) {
	if _, err := Process(nil); err == nil {
		t.Fatal("expected error for empty upload list")
	}
}

func TestProcessBrokenExcelFallsBackToSamples(t *testing.T) {
	out, err := Process([]Upload{{Name: "book.xlsx", Reader: strings.NewReader("not a zip")}})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !out.Files[0].Processed {
		t.Errorf("excel fallback should still be marked processed: %+v", out.Files[0])
	}
	if !reflect.DeepEqual(out.Revenue, []float64{2_800_000, 4_100_000, 5_800_000}) {
		t.Errorf("excel sample revenue = %v", out.Revenue)
	}
}

func TestLaterFileOverridesEarlier(t *testing.T) {
	first := "Revenue\n1000000\n"
	second := "Revenue\n9000000\n"
	out, err := Process([]Upload{
		{Name: "a.csv", Reader: strings.NewReader(first)},
		{Name: "b.csv", Reader: strings.NewReader(second)},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !reflect.DeepEqual(out.Revenue, []float64{9_000_000}) {
		t.Errorf("Revenue = %v", out.Revenue)
	}
}
