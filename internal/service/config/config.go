package config

import "time"

type Config struct {
	// Lead time applied when the caller asks for an "ASAP" pickup.
	ASAPLead time.Duration
	// How long a newly purchased gift card stays redeemable.
	GiftCardValidity time.Duration
}
