package coin

import (
	"fmt"
	"math/bits"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/liquid/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,7}$`).MatchString

// Coin is an amount of a single currency.
type Coin struct {
	// Ticker is the currency code, for example IOV.
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	// Amount is expressed in the smallest indivisible unit.
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Coin) Reset()         { *m = Coin{} }
func (m *Coin) String() string { return proto.CompactTextString(m) }
func (*Coin) ProtoMessage()    {}

// NewCoin creates a new coin object
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{Ticker: ticker, Amount: amount}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// Validate ensures the ticker is a valid currency code.
func (c *Coin) Validate() error {
	if c == nil {
		return errors.Wrap(errors.ErrEmpty, "coin")
	}
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker: %q", c.Ticker)
	}
	return nil
}

// IsZero returns true when the amount is zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// Add returns the sum of two coins of the same currency.
func (c Coin) Add(o Coin) (Coin, error) {
	if c.Ticker != o.Ticker {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	sum, carry := bits.Add64(c.Amount, o.Amount, 0)
	if carry != 0 {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "coin amount")
	}
	return Coin{Ticker: c.Ticker, Amount: sum}, nil
}

// Subtract returns the difference of two coins of the same currency. The
// result cannot be negative.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if c.Ticker != o.Ticker {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", o.Ticker, c.Ticker)
	}
	if o.Amount > c.Amount {
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "%d %s < %d %s", c.Amount, c.Ticker, o.Amount, o.Ticker)
	}
	return Coin{Ticker: c.Ticker, Amount: c.Amount - o.Amount}, nil
}

// Above returns the part of the coin strictly above the threshold, or zero.
func (c Coin) Above(threshold uint64) Coin {
	if c.Amount <= threshold {
		return Coin{Ticker: c.Ticker}
	}
	return Coin{Ticker: c.Ticker, Amount: c.Amount - threshold}
}

// Human returns a human readable representation, for example "10 IOV".
func (c Coin) Human() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// MulDiv returns floor(a * b / c). The intermediate product is computed on
// 128 bits so it never overflows. The result must fit into 64 bits, which
// is always true when b <= c.
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, errors.Wrap(errors.ErrInput, "division by zero")
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, errors.Wrap(errors.ErrOverflow, "result does not fit 64 bits")
	}
	quo, _ := bits.Div64(hi, lo, c)
	return quo, nil
}
