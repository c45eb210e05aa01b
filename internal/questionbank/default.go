package questionbank

import (
	_ "embed"
	"fmt"
)

// DefaultTitle is used when a bank does not name itself.
const DefaultTitle = "Decision Engine Maturity Assessment"

//go:embed default_bank.yaml
var defaultBankYAML []byte

// Default returns a fresh copy of the built-in decision-engine maturity
// bank. It panics if the embedded document is invalid.
func Default() *Bank {
	b, err := Parse(defaultBankYAML, ".yaml")
	if err != nil {
		panic(fmt.Sprintf("default bank: %v", err))
	}
	return b
}
