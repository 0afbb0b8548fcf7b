package payment

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"flynext/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCard(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		number  string
		expiry  string
		wantErr string
	}{
		{"valid", "4242424242424242", "12/27", ""},
		{"grouped digits", "4242 4242 4242 4242", "12/27", "Invalid card number format"},
		{"surrounding whitespace", " 4242424242424242 ", "12/27", ""},
		{"expiry month still valid", "4242424242424242", "06/25", ""},
		{"missing number", "", "12/27", "Card number and expiry date are required"},
		{"missing expiry", "4242424242424242", " ", "Card number and expiry date are required"},
		{"short number", "4242", "12/27", "Invalid card number format"},
		{"letters", "42424242424242ab", "12/27", "Invalid card number format"},
		{"bad expiry layout", "4242424242424242", "1227", "Invalid expiry date format"},
		{"month out of range", "4242424242424242", "13/27", "Invalid month in expiry date"},
		{"expired", "4242424242424242", "05/25", "Card has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCard(tt.number, tt.expiry, now)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var appErr *utils.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
			assert.Equal(t, tt.wantErr, appErr.Message)
		})
	}
}

func TestLast4(t *testing.T) {
	assert.Equal(t, "4242", Last4("4000 0000 0000 4242"))
	assert.Equal(t, "12", Last4("12"))
}
