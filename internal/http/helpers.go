package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// parseTab extracts the wallet tab from query parameters. Empty and unknown
// values both mean the overview.
func parseTab(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("tab"))
}

// formatRupees formats cents as a Rupee currency string (e.g., "₹12.34").
func formatRupees(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	rupees := cents / 100
	rem := cents % 100
	s := strconv.FormatInt(rupees, 10) + "." + fmt.Sprintf("%02d", rem)
	if neg {
		return "-₹" + s
	}
	return "₹" + s
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
