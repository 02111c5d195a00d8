package id

import (
	"sync/atomic"
	"time"
)

var lastLoanID atomic.Int64

// NewLoanID returns the current time in Unix milliseconds, bumped by
// one whenever two calls land in the same millisecond so ids stay
// unique and strictly increasing.
func NewLoanID() int64 {
	for {
		prev := lastLoanID.Load()
		next := time.Now().UnixMilli()
		if next <= prev {
			next = prev + 1
		}
		if lastLoanID.CompareAndSwap(prev, next) {
			return next
		}
	}
}
