package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount of currency in cents.
type Money int64

var ErrMoneyFormat = errors.New("money value is incorrect")

// String formats the amount as dollars with two decimal places.
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}

// ParseMoney reads a decimal dollar amount ("25", "25.5", "25.00").
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	dollarPart, centPart, hasCents := strings.Cut(s, ".")
	if dollarPart == "" {
		return 0, ErrMoneyFormat
	}

	dollars, err := strconv.ParseInt(dollarPart, 10, 64)
	if err != nil {
		return 0, ErrMoneyFormat
	}

	var cents int64
	if hasCents {
		if len(centPart) == 0 || len(centPart) > 2 {
			return 0, ErrMoneyFormat
		}
		if len(centPart) == 1 {
			centPart += "0"
		}
		cents, err = strconv.ParseInt(centPart, 10, 64)
		if err != nil {
			return 0, ErrMoneyFormat
		}
	}

	total := dollars*100 + cents
	if negative {
		total = -total
	}
	return Money(total), nil
}
