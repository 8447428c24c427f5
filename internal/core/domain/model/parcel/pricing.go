package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// Fee schedule constants. These are process-wide configuration, not
// per-call state.
const (
	// BaseFee is the flat charge applied to every parcel.
	BaseFee = 50.0

	// WeightFeePerKg is the per-kilogram charge on top of the base fee.
	WeightFeePerKg = 10.0

	// MinWeightKg and MaxWeightKg bound the accepted parcel weight.
	MinWeightKg = 0.1
	MaxWeightKg = 50.0
)

// ErrPricingIsNotConstructed is returned when a Pricing value bypassed
// ComputePricing or RestorePricing.
var ErrPricingIsNotConstructed = errs.NewValueIsRequiredError(
	"Pricing must be created via ComputePricing or RestorePricing")

// Pricing is the immutable fee breakdown attached to a parcel. It is computed
// at creation and recomputed whenever a sender update touches the weight,
// other parcel details, or the urgency tier.
type Pricing struct {
	baseFee    float64
	weightFee  float64
	urgencyFee float64
	totalFee   float64
	discount   float64
	couponCode string

	guard guard.ConstructorGuard
}

// ValidateFeeInput checks the fee-relevant attributes before any pricing is
// computed. All violations are accumulated and reported together in a single
// ValidationFailedError rather than stopping at the first one.
//
// Rules:
//   - weight must be greater than 0
//   - weight must not exceed MaxWeightKg
//   - urgency must be one of the known tiers
func ValidateFeeInput(weightKg float64, urgency Urgency) error {
	var messages []string

	if weightKg <= 0 {
		messages = append(messages, fmt.Sprintf("weight must be greater than 0, got %g", weightKg))
	} else if weightKg > MaxWeightKg {
		messages = append(messages, fmt.Sprintf("weight must not exceed %g kg, got %g", MaxWeightKg, weightKg))
	}

	if err := urgency.Validate(); err != nil {
		messages = append(messages, fmt.Sprintf("urgency %q is not one of standard, express, urgent", string(urgency)))
	}

	if len(messages) > 0 {
		return errs.NewValidationFailedError(messages...)
	}
	return nil
}

// ComputePricing produces the fee breakdown for the given attributes:
//
//	baseFee    = BaseFee
//	weightFee  = weightKg x WeightFeePerKg
//	urgencyFee = BaseFee x (multiplier - 1), zero for standard
//	totalFee   = max(0, baseFee + weightFee + urgencyFee - discount)
//
// The discount and coupon code pass through to the breakdown only when a
// positive discount or a non-empty code was supplied. Callers must run
// ValidateFeeInput first; ComputePricing repeats the check defensively and
// rejects invalid input with the same accumulated error.
func ComputePricing(weightKg float64, urgency Urgency, discount float64, couponCode string) (Pricing, error) {
	if err := ValidateFeeInput(weightKg, urgency); err != nil {
		return Pricing{}, err
	}

	multiplier, err := urgency.Multiplier()
	if err != nil {
		return Pricing{}, err
	}

	weightFee := weightKg * WeightFeePerKg
	urgencyFee := BaseFee * (multiplier - 1)

	total := BaseFee + weightFee + urgencyFee - discount
	if total < 0 {
		total = 0
	}

	p := Pricing{
		baseFee:    BaseFee,
		weightFee:  weightFee,
		urgencyFee: urgencyFee,
		totalFee:   total,
		guard:      guard.NewConstructorGuard(),
	}
	if discount > 0 {
		p.discount = discount
	}
	if couponCode != "" {
		p.couponCode = couponCode
	}
	return p, nil
}

// RestorePricing rebuilds a Pricing value from persistence without
// recomputation. Persistence is trusted to hold a breakdown that was
// originally produced by ComputePricing.
func RestorePricing(baseFee, weightFee, urgencyFee, totalFee, discount float64, couponCode string) Pricing {
	return Pricing{
		baseFee:    baseFee,
		weightFee:  weightFee,
		urgencyFee: urgencyFee,
		totalFee:   totalFee,
		discount:   discount,
		couponCode: couponCode,
		guard:      guard.NewConstructorGuard(),
	}
}

// Validate ensures the Pricing value was created through a constructor.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// BaseFee returns the flat charge component.
func (p Pricing) BaseFee() float64 {
	return p.baseFee
}

// WeightFee returns the weight-proportional component.
func (p Pricing) WeightFee() float64 {
	return p.weightFee
}

// UrgencyFee returns the urgency surcharge component.
func (p Pricing) UrgencyFee() float64 {
	return p.urgencyFee
}

// TotalFee returns the final charge. Never negative.
func (p Pricing) TotalFee() float64 {
	return p.totalFee
}

// Discount returns the applied discount, zero when none was supplied.
func (p Pricing) Discount() float64 {
	return p.discount
}

// CouponCode returns the applied coupon code, empty when none was supplied.
func (p Pricing) CouponCode() string {
	return p.couponCode
}
