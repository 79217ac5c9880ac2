// Command tfeval prints the full treasury-futures evaluator output for a
// futures contract code and a deliverable bond code at a given date.
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
	"github.com/swhysc/tbond/futurescal"
	"github.com/swhysc/tbond/pricing"
	"github.com/swhysc/tbond/tfeval"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tfeval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	futuresCode := fs.String("futures", "", "futures contract code, e.g. T2212")
	bondCode := fs.String("bond", "", "deliverable bond code, e.g. 220021.IB")
	dateStr := fs.String("date", "", "evaluation date, YYYY-MM-DD")
	futuresPrice := fs.Float64("futures-price", 0, "futures settlement price")
	bondYTM := fs.Float64("bond-ytm", 0, "bond yield to maturity")
	capitalRate := fs.Float64("capital-rate", 0, "capital/funding rate")
	reinvestRate := fs.Float64("reinvest-rate", 0, "coupon reinvestment rate")
	haveReinvest := fs.Bool("have-reinvest-rate", false, "use -reinvest-rate even if 0")
	algoName := fs.String("algo", "carry", "forward-ytm algorithm: carry|discount|spot")
	discRate := fs.Float64("disc-rate", 0, "discount rate for -algo discount")
	infoDir := fs.String("bonds-info-path", os.Getenv("BONDS_INFO_PATH"), "directory of bond attribute JSON files")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if *futuresCode == "" || *bondCode == "" || *dateStr == "" {
		fmt.Fprintln(stderr, "Usage: tfeval -futures <code> -bond <code> -date YYYY-MM-DD -futures-price P -bond-ytm Y -capital-rate R")
		return 2
	}
	date, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		fmt.Fprintf(stderr, "invalid -date: %v\n", err)
		return 2
	}

	if _, err := futurescal.Parse(*futuresCode); err != nil {
		logger.Warn("invalid futures code", zap.String("futures", *futuresCode), zap.Error(err))
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

	var algo tfeval.ForwardYieldAlgo
	switch *algoName {
	case "carry", "":
		algo = tfeval.CarryAlgo{}
	case "discount":
		algo = tfeval.DiscountAlgo{DiscRate: *discRate}
	case "spot":
		algo = tfeval.SpotAlgo{}
	default:
		fmt.Fprintf(stderr, "unknown -algo %q: want carry|discount|spot\n", *algoName)
		return 2
	}

	in := tfeval.Inputs{
		EvaluatingDate: date,
		FuturesCode:    *futuresCode,
		FuturesPrice:   *futuresPrice,
		BondAttrs:      attrs,
		BondYTM:        *bondYTM,
		CapitalRate:    *capitalRate,
		Algo:           algo,
	}
	if *haveReinvest || *reinvestRate != 0 {
		in.ReinvestRate = reinvestRate
	}

	priced, err := tfeval.New(in, pricing.NewPrimitivePricer()).Calc()
	if err != nil {
		logger.Error("evaluation failed", zap.String("futures", *futuresCode), zap.String("bond", *bondCode), zap.Error(err))
		if errors.Is(err, tfeval.ErrDegenerateEvaluation) {
			return 3
		}
		return 3
	}

	out, _ := json.MarshalIndent(priced.State, "", "  ")
	fmt.Fprintln(stdout, string(out))
	return 0
}

func resolveInfoDir(dir string) string {
	if dir != "" {
		return dir
	}
	return filepath.Join(".", "bonds_info")
}
