// Package payment computes crypto-denominated prices from a static rate table.
// Rates are mocked: real oracle and payment-contract integration is out of scope.
package payment

// PaymentAddress is the mock deposit address returned by the payment endpoints
const PaymentAddress = "0x742d35Cc6634C0532925a3b844Bc9e7595f0fEb1"

// Fiat-per-unit rates for the supported stablecoins
var cryptoRates = map[string]float64{
	"USDT": 1.0,
	"USDC": 1.0,
	"DAI":  1.0,
}

// Quote converts a fiat amount to the given crypto currency.
// Unknown currency codes fall back to a rate of 1.0.
func Quote(fiatAmount float64, currencyCode string) float64 {
	rate, ok := cryptoRates[currencyCode]
	if !ok {
		rate = 1.0
	}
	return fiatAmount / rate
}

// CurrencyInfo describes a supported payment currency
type CurrencyInfo struct {
	Symbol   string   `json:"symbol"`   // Ticker symbol
	Name     string   `json:"name"`     // Human-readable name
	Networks []string `json:"networks"` // Chains the currency settles on
}

// Currencies returns the supported payment currencies
func Currencies() []CurrencyInfo {
	return []CurrencyInfo{
		{Symbol: "USDT", Name: "Tether", Networks: []string{"ethereum", "polygon", "arbitrum"}},
		{Symbol: "USDC", Name: "USD Coin", Networks: []string{"ethereum", "polygon", "arbitrum"}},
		{Symbol: "DAI", Name: "Dai", Networks: []string{"ethereum"}},
	}
}

// Rates returns the mock exchange-rate table keyed by symbol then fiat code
func Rates() map[string]map[string]float64 {
	return map[string]map[string]float64{
		"USDT": {"USD": 1.0},
		"USDC": {"USD": 1.0},
		"DAI":  {"USD": 1.0},
		"ETH":  {"USD": 3200.0},
	}
}
