package attrstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/swhysc/tbond/bondattr"
)

// wireAttributes is the on-disk JSON shape spec.md §6 specifies, one file
// per bond named "<code>.json".
type wireAttributes struct {
	BondCode     string   `json:"bond_code"`
	Market       string   `json:"mkt"`
	Abbr         string   `json:"abbr"`
	ParValue     float64  `json:"par_value"`
	CouponType   string   `json:"cp_type"`
	InterestType string   `json:"interest_type"`
	CouponRate   float64  `json:"cp_rate_1st"`
	BaseRate     *float64 `json:"base_rate"`
	RateSpread   *float64 `json:"rate_spread"`
	InstFreq     int      `json:"inst_freq"`
	CarryDate    string   `json:"carry_date"`
	MaturityDate string   `json:"maturity_date"`
	DayCount     string   `json:"day_count"`
}

// FileRetriever loads bond attribute JSON files from a directory, one file
// per bond named "<code>.json", matching spec.md §6's wire format and
// §6's BONDS_INFO_PATH environment convention (resolved by the caller,
// not by this package — see cmd/bondcalc for the thin env-var wrapper).
type FileRetriever struct {
	Dir string
}

// NewFileRetriever builds a FileRetriever rooted at dir.
func NewFileRetriever(dir string) *FileRetriever {
	return &FileRetriever{Dir: dir}
}

// Retrieve implements Retriever. The calculatingDate parameter is accepted
// for interface symmetry with date-sensitive retrievers but unused: the
// file format carries no point-in-time versioning.
func (r *FileRetriever) Retrieve(_ time.Time, bondCode string) (*bondattr.BondAttributes, error) {
	path := filepath.Join(r.Dir, bondCode+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("attrstore: %w: %s", bondattr.ErrUnknownBond, bondCode)
		}
		return nil, fmt.Errorf("attrstore: reading %s: %w", path, err)
	}

	var w wireAttributes
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("attrstore: parsing %s: %w", path, err)
	}

	carryDate, err := time.Parse("2006-01-02", w.CarryDate)
	if err != nil {
		return nil, fmt.Errorf("attrstore: %s: invalid carry_date %q: %w", bondCode, w.CarryDate, err)
	}
	maturityDate, err := time.Parse("2006-01-02", w.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("attrstore: %s: invalid maturity_date %q: %w", bondCode, w.MaturityDate, err)
	}

	market, err := bondattr.MarketFromBondCode(w.BondCode)
	if err != nil {
		return nil, fmt.Errorf("attrstore: %w", err)
	}

	attrs, err := bondattr.New(bondattr.BondAttributes{
		BondCode:     w.BondCode,
		Market:       market,
		Abbr:         w.Abbr,
		ParValue:     w.ParValue,
		CouponType:   bondattr.CouponType(w.CouponType),
		InterestType: bondattr.InterestType(w.InterestType),
		CouponRate:   w.CouponRate,
		InstFreq:     w.InstFreq,
		CarryDate:    carryDate,
		MaturityDate: maturityDate,
		DayCount:     w.DayCount,
	})
	if err != nil {
		return nil, fmt.Errorf("attrstore: %s: %w", bondCode, err)
	}
	return attrs, nil
}

// Cached wraps a delegate Retriever with a Store: it checks the store
// first, falls through to the delegate on a miss, and populates the store
// before returning. This mirrors the original system's
// CachedBondAttrRetrieval decorator (check cache -> delegate -> populate
// cache -> always read back from cache).
type Cached struct {
	Store    Store
	Delegate Retriever
}

// NewCached builds a Cached retriever.
func NewCached(store Store, delegate Retriever) *Cached {
	return &Cached{Store: store, Delegate: delegate}
}

// Retrieve implements Retriever.
func (c *Cached) Retrieve(calculatingDate time.Time, bondCode string) (*bondattr.BondAttributes, error) {
	if attrs, ok, err := c.Store.Get(bondCode); err != nil {
		return nil, err
	} else if ok {
		return attrs, nil
	}

	attrs, err := c.Delegate.Retrieve(calculatingDate, bondCode)
	if err != nil {
		return nil, err
	}
	if err := c.Store.Put(bondCode, attrs); err != nil {
		return nil, err
	}

	attrs, _, err = c.Store.Get(bondCode)
	if err != nil {
		return nil, err
	}
	return attrs, nil
}
