package vnfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tdvinh/vnfolio/advisor"
)

// Watchlist is the set of symbols tracked outside the portfolio, with the
// latest stored analysis per symbol.
type Watchlist struct {
	Symbols  []string                           `json:"symbols"`
	Analyses map[string]advisor.TrackedAnalysis `json:"analyses"`
}

// NewWatchlist creates an empty watchlist.
func NewWatchlist() Watchlist {
	return Watchlist{Symbols: []string{}, Analyses: map[string]advisor.TrackedAnalysis{}}
}

// Add tracks a symbol. Adding twice is a no-op.
func (w *Watchlist) Add(symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || slices.Contains(w.Symbols, symbol) {
		return
	}
	w.Symbols = append(w.Symbols, symbol)
}

// Remove untracks a symbol and drops its stored analysis.
func (w *Watchlist) Remove(symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	w.Symbols = slices.DeleteFunc(w.Symbols, func(s string) bool { return s == symbol })
	delete(w.Analyses, symbol)
}

// Record stores the latest analysis for a symbol, tracking it if needed.
func (w *Watchlist) Record(symbol string, a advisor.TrackedAnalysis) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	w.Add(symbol)
	if w.Analyses == nil {
		w.Analyses = map[string]advisor.TrackedAnalysis{}
	}
	w.Analyses[symbol] = a
}

// ReadWatchlistFile loads the watchlist from path. A missing file yields an
// empty watchlist.
func ReadWatchlistFile(path string) (Watchlist, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewWatchlist(), nil
	}
	if err != nil {
		return Watchlist{}, err
	}
	var w Watchlist
	if err := json.Unmarshal(data, &w); err != nil {
		return Watchlist{}, fmt.Errorf("cannot read watchlist file %q: %w", path, err)
	}
	if w.Symbols == nil {
		w.Symbols = []string{}
	}
	if w.Analyses == nil {
		w.Analyses = map[string]advisor.TrackedAnalysis{}
	}
	return w, nil
}

// WriteWatchlistFile saves the watchlist to path.
func WriteWatchlistFile(path string, w Watchlist) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
