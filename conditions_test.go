package liquid_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/crypto/bech32"
	"github.com/iov-one/liquid/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	addr := liquid.Address([]byte("ABCD123456LHB"))
	assert.Equal(t, fmt.Sprintf("%X", []byte(addr)), addr.String())
	assert.Equal(t, "(nil)", liquid.Address(nil).String())

	cond := liquid.NewCondition("liquid", "token", []byte{0, 1})
	assert.Equal(t, "liquid/token/0001", cond.String())
	assert.Contains(t, liquid.Condition("bad").String(), "Invalid Condition")
}

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond    liquid.Condition
		ext     string
		typ     string
		data    []byte
		wantErr *errors.Error
	}{
		"valid": {
			cond: liquid.NewCondition("custody", "account", []byte{1, 2, 3}),
			ext:  "custody",
			typ:  "account",
			data: []byte{1, 2, 3},
		},
		"data with newline": {
			cond: liquid.NewCondition("liquid", "token", []byte("a\nb")),
			ext:  "liquid",
			typ:  "token",
			data: []byte("a\nb"),
		},
		"missing data": {
			cond:    liquid.Condition("liquid/token/"),
			wantErr: errors.ErrInput,
		},
		"extension too short": {
			cond:    liquid.NewCondition("ab", "token", []byte{1}),
			wantErr: errors.ErrInput,
		},
		"invalid characters": {
			cond:    liquid.NewCondition("liq uid", "token", []byte{1}),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				require.True(t, tc.wantErr.Is(tc.cond.Validate()))
				return
			}
			require.NoError(t, err)
			require.NoError(t, tc.cond.Validate())
			assert.Equal(t, tc.ext, ext)
			assert.Equal(t, tc.typ, typ)
			assert.Equal(t, tc.data, data)
		})
	}
}

func TestConditionAddress(t *testing.T) {
	a := liquid.NewCondition("liquid", "token", []byte{1})
	b := liquid.NewCondition("liquid", "token", []byte{2})

	assert.True(t, a.Equals(liquid.NewCondition("liquid", "token", []byte{1})))
	assert.False(t, a.Equals(b))
	require.NoError(t, a.Address().Validate())
	assert.Len(t, a.Address(), liquid.AddressLength)
	assert.True(t, a.Address().Equals(a.Address()))
	assert.False(t, a.Address().Equals(b.Address()))
	assert.Nil(t, liquid.NewAddress(nil))
}

func TestAddressClone(t *testing.T) {
	addr := liquid.NewCondition("test", "sig", []byte{9}).Address()
	cpy := addr.Clone()
	require.True(t, addr.Equals(cpy))
	cpy[0]++
	assert.False(t, addr.Equals(cpy))
	assert.Nil(t, liquid.Address(nil).Clone())
}

func TestAddressValidate(t *testing.T) {
	assert.True(t, errors.ErrInput.Is(liquid.Address(nil).Validate()))
	assert.True(t, errors.ErrInput.Is(liquid.Address([]byte{1, 2}).Validate()))
	assert.NoError(t, liquid.Address(make([]byte, liquid.AddressLength)).Validate())
}

func TestAddressJSON(t *testing.T) {
	cond := liquid.NewCondition("liquid", "token", []byte{0, 0, 0, 0, 0, 0, 0, 1})
	addr := cond.Address()

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%q", addr.String()), string(raw))

	human, err := bech32.Encode("liq", addr)
	require.NoError(t, err)
	short, err := bech32.Encode("liq", []byte{1, 2, 3})
	require.NoError(t, err)

	cases := map[string]struct {
		json    string
		want    liquid.Address
		wantErr *errors.Error
	}{
		"hex": {
			json: string(raw),
			want: addr,
		},
		"condition": {
			json: `"cond:liquid/token/0000000000000001"`,
			want: addr,
		},
		"bech32": {
			json: fmt.Sprintf(`"bech32:%s"`, human),
			want: addr,
		},
		"bech32 short address": {
			json:    fmt.Sprintf(`"bech32:%s"`, short),
			wantErr: errors.ErrInput,
		},
		"bech32 bad checksum": {
			json:    `"bech32:liq1qqqqqqqq"`,
			wantErr: errors.ErrInput,
		},
		"empty": {
			json: `""`,
			want: nil,
		},
		"invalid hex": {
			json:    `"zz"`,
			wantErr: errors.ErrInput,
		},
		"short address": {
			json:    `"0102"`,
			wantErr: errors.ErrInput,
		},
		"malformed condition": {
			json:    `"cond:liquid/token"`,
			wantErr: errors.ErrInput,
		},
		"malformed condition data": {
			json:    `"cond:liquid/token/xyz"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got liquid.Address
			err := json.Unmarshal([]byte(tc.json), &got)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
