// Command telemedctl manages the users of a telemedicine booking deployment
// directly on its configured storage.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
