package vnfolio

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

/*
	{
	    "data": [
	        {
	            "code": "HPG",
	            "date": "2025-08-29",
	            "close": 27.45,
	            "floor": "HOSE"
	        }
	    ]
	}
*/
const vndirectBase = "https://api-finfo.vndirect.com.vn/v4/stock_prices"

// FetchQuotes returns the latest close price of each symbol, in dong.
// VNDirect quotes in thousands of dong, prices are scaled back.
//
// Symbols that cannot be fetched are skipped; their errors are joined and
// returned alongside the prices that did resolve.
func FetchQuotes(symbols []string) (map[string]Money, error) {
	client := daily()
	prices := make(map[string]Money, len(symbols))
	var errs []error
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		addr := vndirectBase + "?sort=date&size=1&q=" + url.QueryEscape("code:"+symbol)

		var jobj any
		if err := jwget(client, addr, &jobj); err != nil {
			errs = append(errs, fmt.Errorf("error retrieving %q: %w", symbol, err))
			continue
		}
		path := "$.data[0].close"
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			errs = append(errs, fmt.Errorf("error parsing %q: %q %w", symbol, path, err))
			continue
		}
		// jsonpath is never clear about whether it returns a list of one
		// answer or a single answer, keep the first one if any
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		val, ok := jval.(float64)
		if !ok || val == 0 {
			errs = append(errs, fmt.Errorf("error parsing %q: %q %s %v", symbol, path, "not a price", jval))
			continue
		}
		// thousands of dong to dong
		prices[symbol] = M(decimal.NewFromFloat(val).Mul(decimal.NewFromInt(1000)))
	}
	return prices, errors.Join(errs...)
}
