// Command bondcalc prints clean/dirty price, accrued interest and duration
// for a bond at a given date, given either a YTM or a price.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/swhysc/tbond/attrstore"
	"github.com/swhysc/tbond/bondattr"
	"github.com/swhysc/tbond/pricing"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bondcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	bondCode := fs.String("bond", "", "bond code, e.g. 220012.IB")
	dateStr := fs.String("date", "", "valuation date, YYYY-MM-DD")
	ytm := fs.Float64("ytm", 0, "yield to maturity, e.g. 0.0279")
	price := fs.Float64("price", 0, "clean price")
	useDirty := fs.Bool("dirty", false, "-price is a dirty price rather than clean")
	haveYTM := fs.Bool("have-ytm", false, "treat -ytm as supplied even if 0")
	havePrice := fs.Bool("have-price", false, "treat -price as supplied even if 0")
	infoDir := fs.String("bonds-info-path", os.Getenv("BONDS_INFO_PATH"), "directory of bond attribute JSON files")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if *bondCode == "" || *dateStr == "" {
		fmt.Fprintln(stderr, "Usage: bondcalc -bond <code> -date YYYY-MM-DD (-ytm Y | -price P [-dirty])")
		return 2
	}
	date, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		fmt.Fprintf(stderr, "invalid -date: %v\n", err)
		return 2
	}

	store := attrstore.NewMemoryStore(0, 0)
	retriever := attrstore.NewCached(store, attrstore.NewFileRetriever(resolveInfoDir(*infoDir)))

	attrs, err := retriever.Retrieve(date, *bondCode)
	if err != nil {
		logger.Warn("bond attribute lookup failed", zap.String("bond", *bondCode), zap.Error(err))
		switch {
		case errors.Is(err, bondattr.ErrUnknownBond), errors.Is(err, bondattr.ErrInvalidBondCode):
			return 2
		default:
			return 4
		}
	}

	in := pricing.Inputs{Attrs: attrs, Date: date}
	switch {
	case *haveYTM || *ytm != 0:
		in.YTM = ytm
	case *havePrice || *price != 0:
		in.Price = price
		if *useDirty {
			in.PriceBasis = pricing.DirtyPrice
		} else {
			in.PriceBasis = pricing.CleanPrice
		}
	default:
		fmt.Fprintln(stderr, "one of -ytm or -price is required (use -have-ytm / -have-price for a value of 0)")
		return 2
	}

	result, err := pricing.NewPrimitivePricer().Calculate(in)
	if err != nil {
		logger.Error("pricing failed", zap.String("bond", *bondCode), zap.Error(err))
		return 3
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(stdout, string(out))
	return 0
}

func resolveInfoDir(dir string) string {
	if dir != "" {
		return dir
	}
	return filepath.Join(".", "bonds_info")
}
