package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/restaurant-ledger/internal/repository"
)

const (
	OrderPrefix       = "ORD"
	ReservationPrefix = "RES"

	sequenceWidth = 3
)

// DateKey formats t as YYYYMMDD.
func DateKey(t time.Time) string {
	return t.Format("20060102")
}

// DateKeyFromDate strips the separators from a YYYY-MM-DD date.
func DateKeyFromDate(date string) string {
	return strings.ReplaceAll(date, "-", "")
}

// NextID mints prefix+dateKey followed by the zero-padded count of existing
// identifiers in idField that share that stem, plus one.
func NextID(prefix, dateKey string, rows []repository.Record, idField string) string {
	stem := prefix + dateKey
	count := 0
	for _, row := range rows {
		if strings.HasPrefix(row[idField], stem) {
			count++
		}
	}
	return fmt.Sprintf("%s%0*d", stem, sequenceWidth, count+1)
}

func sequenceLockKey(prefix, dateKey string) string {
	return "seq:" + prefix + ":" + dateKey
}
