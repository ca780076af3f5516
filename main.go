// The main package for the scout executable.
package main

import (
	"github.com/planforge/scout/cmd"
)

func main() {
	cmd.Execute()
}
