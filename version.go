package liquid

import "fmt"

// Release version of the liquid module and the liquidd binary.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is set at build time with
//
//	-ldflags "-X github.com/iov-one/liquid.GitCommit=<hash>"
var GitCommit = ""

// Version returns the release version followed by the commit hash when
// it is known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
