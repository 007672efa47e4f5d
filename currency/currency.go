// Package currency formats amounts for display.
package currency

import (
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Default is used when a currency code is not recognised.
const Default = money.INR

// Format rounds amount to the currency's minor unit and renders it with its
// symbol. Rupees are grouped in lakhs and crores (₹4,12,432.00); other
// currencies use go-money's thousands grouping.
func Format(amount float64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(Default)
	}
	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	if cur.Code == money.INR {
		return indian(minor, cur)
	}
	return money.New(minor, cur.Code).Display()
}

// INR formats amount in Indian rupees.
func INR(amount float64) string {
	return Format(amount, money.INR)
}

// indian renders minor units with the last three digits grouped together and
// every two digits above that.
func indian(minor int64, cur *money.Currency) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	digits := strconv.FormatInt(minor, 10)
	if pad := cur.Fraction + 1 - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	whole, frac := digits[:len(digits)-cur.Fraction], digits[len(digits)-cur.Fraction:]

	grouped := whole
	if len(whole) > 3 {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		parts = append([]string{head}, parts...)
		grouped = strings.Join(parts, cur.Thousand) + cur.Thousand + tail
	}
	if frac != "" {
		grouped += cur.Decimal + frac
	}
	return sign + cur.Grapheme + grouped
}
