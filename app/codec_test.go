package app

import (
	"testing"

	"github.com/iov-one/liquid/liquidtest"
)

func TestCodecDeclarations(t *testing.T) {
	liquidtest.AssertCodec(t, "codec.proto", &Tx{}, &ResultSet{})
}
