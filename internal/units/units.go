package units

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// WeiPerUnit is the number of smallest units in one display unit of
// either asset. Both the reserve asset and the artist token use 18
// decimals, like their on-chain counterparts.
var WeiPerUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

var weiPerUnitDec = decimal.NewFromBigInt(WeiPerUnit, 0)

// ToWei converts a whole display-unit amount to the smallest unit.
func ToWei(amount int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(amount), WeiPerUnit)
}

// FromWei converts a smallest-unit amount to display units.
func FromWei(wei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(wei, 0).Div(weiPerUnitDec)
}

// RoundFromWei converts a smallest-unit amount to display units rounded
// to the nearest whole unit, the resolution used in ledger output.
func RoundFromWei(wei *big.Int) decimal.Decimal {
	return FromWei(wei).Round(0)
}

// ToFiat converts a smallest-unit reserve amount to fiat at the given
// reserve-to-fiat exchange rate, rounded to cents.
func ToFiat(wei *big.Int, rate decimal.Decimal) decimal.Decimal {
	return FromWei(wei).Mul(rate).Round(2)
}

// ExchangeRate is the external amount divided by the internal amount of
// a single transaction. Both amounts are in the smallest unit; the
// shared 18-decimal scale cancels out. The caller must guard against a
// zero internal amount.
func ExchangeRate(externalWei, internalWei *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(externalWei, 0).DivRound(decimal.NewFromBigInt(internalWei, 0), 8)
}

// PricePerToken is the fiat display price implied by trading externalWei
// of reserve for internalWei of tokens, rounded to 4 decimal places.
func PricePerToken(externalWei, internalWei *big.Int, rate decimal.Decimal) decimal.Decimal {
	return ExchangeRate(externalWei, internalWei).Mul(rate).Round(4)
}

// Float converts a smallest-unit amount to display units as a float64.
// Only derived ratios may use floating point; balance accounting stays
// in arbitrary-precision integers.
func Float(wei *big.Int) float64 {
	return FromWei(wei).InexactFloat64()
}

// FromFloat converts a display-unit value to the smallest unit,
// truncating sub-wei precision.
func FromFloat(v float64) *big.Int {
	return decimal.NewFromFloat(v).Mul(weiPerUnitDec).BigInt()
}

// PercentageChange returns the percentage increase from before to after.
func PercentageChange(before, after decimal.Decimal) decimal.Decimal {
	return after.Sub(before).Div(before).Mul(decimal.NewFromInt(100))
}
