package rsutax

import (
	"errors"
	"fmt"
	"io"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// TaxParameters holds the rates used to compute the tax on a sale.
type TaxParameters struct {
	IncomeTaxRate          decimal.Decimal // marginal income tax rate (TMI)
	SocialContributionRate decimal.Decimal // CSG, CRDS and other social contributions
	FlatTaxRate            decimal.Decimal // flat tax on capital gains (PFU)
}

// DefaultTaxParameters returns a 30% marginal income tax rate, 17.2% of social
// contributions and the 30% flat tax.
func DefaultTaxParameters() TaxParameters {
	return TaxParameters{
		IncomeTaxRate:          decimal.RequireFromString("0.3"),
		SocialContributionRate: decimal.RequireFromString("0.172"),
		FlatTaxRate:            decimal.RequireFromString("0.3"),
	}
}

// tomlTaxParameters is the on-disk representation, absent keys keep their default.
type tomlTaxParameters struct {
	Tax struct {
		IncomeTaxRate          *float64 `toml:"income_tax_rate"`
		SocialContributionRate *float64 `toml:"social_contribution_rate"`
		FlatTaxRate            *float64 `toml:"flat_tax_rate"`
	} `toml:"tax"`
}

// DecodeTaxParameters reads tax parameters from a TOML document like:
//
//	[tax]
//	income_tax_rate = 0.41
//	social_contribution_rate = 0.172
//	flat_tax_rate = 0.3
//
// Missing keys keep the value from DefaultTaxParameters.
func DecodeTaxParameters(r io.Reader) (TaxParameters, error) {
	var doc tomlTaxParameters
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&doc); err != nil {
		return TaxParameters{}, fmt.Errorf("cannot decode tax parameters: %w", err)
	}

	p := DefaultTaxParameters()
	var errs error
	set := func(name string, src *float64, dst *decimal.Decimal) {
		if src == nil {
			return
		}
		if *src < 0 || *src > 1 {
			errs = errors.Join(errs, fmt.Errorf("%s must be between 0 and 1, got %v", name, *src))
			return
		}
		*dst = decimal.NewFromFloat(*src)
	}
	set("income_tax_rate", doc.Tax.IncomeTaxRate, &p.IncomeTaxRate)
	set("social_contribution_rate", doc.Tax.SocialContributionRate, &p.SocialContributionRate)
	set("flat_tax_rate", doc.Tax.FlatTaxRate, &p.FlatTaxRate)
	if errs != nil {
		return TaxParameters{}, errs
	}
	return p, nil
}

// LoadTaxParameters reads tax parameters from a TOML file.
func LoadTaxParameters(filename string) (TaxParameters, error) {
	f, err := os.Open(filename)
	if err != nil {
		return TaxParameters{}, fmt.Errorf("cannot open %q for reading: %w", filename, err)
	}
	defer f.Close()
	p, err := DecodeTaxParameters(f)
	if err != nil {
		return TaxParameters{}, fmt.Errorf("in %q: %w", filename, err)
	}
	return p, nil
}
