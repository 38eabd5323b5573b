package countdown

import "fmt"

var (
	ErrRegistryFull = func(max int) error {
		return fmt.Errorf("registry already holds the maximum of %d timers", max)
	}
)
