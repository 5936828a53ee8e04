package liquid

import (
	"testing"

	"github.com/iov-one/liquid/liquidtest"
)

func TestCodecDeclarations(t *testing.T) {
	liquidtest.AssertCodec(t, "codec.proto",
		&Token{},
		&Balance{},
		&Allowance{},
		&Configuration{},
		&CreateTokenMsg{},
		&MintMsg{},
		&MintAndDistributeMsg{},
		&BurnMsg{},
		&BurnAndDistributeMsg{},
		&BurnFromMsg{},
		&TransferMsg{},
		&TransferFromMsg{},
		&ApproveMsg{},
		&ApproveHolderMsg{},
		&DisapproveHolderMsg{},
		&AddManagedAccountMsg{},
		&ReleaseManagedAccountMsg{},
		&WithdrawFromAllMsg{},
		&DistributeMsg{},
		&SetRewardTickersMsg{},
		&TransferAdminMsg{},
		&UpdateConfigurationMsg{},
	)
}
