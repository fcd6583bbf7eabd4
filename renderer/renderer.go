// Package renderer turns ledger and advisor values into markdown reports.
package renderer

import "time"

// Now is the clock used in report headers, swappable in tests.
var Now = time.Now
