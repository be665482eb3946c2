// irship plays two-board Battleship in the terminal over a one-byte link.
package main

import "irship/cmd"

func main() {
	cmd.Execute()
}
