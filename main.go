package main

import (
	"github.com/jobnest/jobnest/cmd"
)

func main() {
	cmd.Execute()
}
