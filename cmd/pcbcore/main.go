// Command pcbcore inspects, formats and stores PCB board items.
package main

import "github.com/mesh-intelligence/pcbcore/internal/cli"

func main() {
	cli.Execute()
}
