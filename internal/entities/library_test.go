package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookStatus_Valid(t *testing.T) {
	assert.True(t, BookStatusAvailable.Valid())
	assert.True(t, BookStatusBorrowed.Valid())
	assert.False(t, BookStatus("available").Valid())
	assert.False(t, BookStatus("").Valid())
}

func TestTransaction_IsOpen(t *testing.T) {
	assert.True(t, Transaction{Status: TransactionStatusBorrowed}.IsOpen())
	assert.False(t, Transaction{Status: TransactionStatusReturned}.IsOpen())
}

func TestOverdueCutoff(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "truncates to midnight",
			now:  time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC),
			want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "uses the UTC calendar day",
			now:  time.Date(2024, 3, 10, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*60*60)),
			want: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(OverdueCutoff(tt.now)), "got %s", OverdueCutoff(tt.now))
		})
	}
}
