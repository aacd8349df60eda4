package main

import (
	"github.com/pjedge/conseq/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
