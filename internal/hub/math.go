package hub

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// uint128Bits bounds every amount the hub stores or emits. Values outside
// [0, 2^128) fail the operation instead of wrapping.
const uint128Bits = 128

func checkUint128(v sdkmath.Int) error {
	if v.IsNil() {
		return errorsmod.Wrap(ErrInvalidRequest, "amount is not set")
	}
	if v.IsNegative() {
		return errorsmod.Wrapf(ErrUnderflow, "negative amount %s", v)
	}
	if v.BigInt().BitLen() > uint128Bits {
		return errorsmod.Wrapf(ErrOverflow, "amount %s exceeds 128 bits", v)
	}
	return nil
}

// guard turns the panics raised by sdkmath on out-of-range values into
// ErrOverflow.
func guard(op string, fn func() sdkmath.Int) (res sdkmath.Int, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = sdkmath.ZeroInt()
			err = errorsmod.Wrapf(ErrOverflow, "%s: %v", op, r)
		}
	}()
	res = fn()
	return res, checkUint128(res)
}

func safeAdd(a, b sdkmath.Int) (sdkmath.Int, error) {
	return guard(fmt.Sprintf("%s + %s", a, b), func() sdkmath.Int { return a.Add(b) })
}

func safeSub(a, b sdkmath.Int) (sdkmath.Int, error) {
	if b.GT(a) {
		return sdkmath.ZeroInt(), errorsmod.Wrapf(ErrUnderflow, "%s - %s", a, b)
	}
	return a.Sub(b), nil
}

// saturatingSub returns max(0, a-b).
func saturatingSub(a, b sdkmath.Int) sdkmath.Int {
	if b.GTE(a) {
		return sdkmath.ZeroInt()
	}
	return a.Sub(b)
}

// mulDec returns floor(a * d).
func mulDec(a sdkmath.Int, d sdkmath.LegacyDec) (sdkmath.Int, error) {
	return guard(fmt.Sprintf("%s * %s", a, d), func() sdkmath.Int {
		return d.MulInt(a).TruncateInt()
	})
}

// divDec returns floor(a / d).
func divDec(a sdkmath.Int, d sdkmath.LegacyDec) (sdkmath.Int, error) {
	if !d.IsPositive() {
		return sdkmath.ZeroInt(), errorsmod.Wrapf(ErrInvalidRequest, "division by non-positive rate %s", d)
	}
	return guard(fmt.Sprintf("%s / %s", a, d), func() sdkmath.Int {
		return sdkmath.LegacyNewDecFromInt(a).QuoTruncate(d).TruncateInt()
	})
}

// mulRatio returns floor(a * num / den) computed on integers.
func mulRatio(a, num, den sdkmath.Int) (sdkmath.Int, error) {
	if den.IsZero() {
		return sdkmath.ZeroInt(), nil
	}
	return guard(fmt.Sprintf("%s * %s / %s", a, num, den), func() sdkmath.Int {
		return a.Mul(num).Quo(den)
	})
}

// decFromRatio truncates num/den to 18 decimals. A zero denominator yields zero.
func decFromRatio(num, den sdkmath.Int) sdkmath.LegacyDec {
	if den.IsZero() {
		return sdkmath.LegacyZeroDec()
	}
	return sdkmath.LegacyNewDecFromInt(num).QuoInt(den)
}

func minInt(a, b sdkmath.Int) sdkmath.Int {
	if a.LT(b) {
		return a
	}
	return b
}
