package payment

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"flynext/utils"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{16}$`)
	expiryPattern     = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
)

// ValidateCard checks the card number format and that MM/YY is not in the past.
// A card stays valid through its expiry month. Grouped numbers ("4242 4242 ...")
// are rejected; clients send the digits only.
func ValidateCard(cardNumber, expiry string, now time.Time) error {
	cardNumber = strings.TrimSpace(cardNumber)
	if cardNumber == "" || strings.TrimSpace(expiry) == "" {
		return utils.BadRequest("Card number and expiry date are required")
	}
	if !cardNumberPattern.MatchString(cardNumber) {
		return utils.BadRequest("Invalid card number format")
	}

	m := expiryPattern.FindStringSubmatch(strings.TrimSpace(expiry))
	if m == nil {
		return utils.BadRequest("Invalid expiry date format")
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return utils.BadRequest("Invalid month in expiry date")
	}
	year += 2000

	if year*12+month < now.Year()*12+int(now.Month()) {
		return utils.BadRequest("Card has expired")
	}
	return nil
}

// Last4 returns the last four digits of a card number.
func Last4(cardNumber string) string {
	cardNumber = strings.ReplaceAll(cardNumber, " ", "")
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
