package main

import (
	"github.com/mindedal/solosec/cmd"
)

func main() {
	cmd.Execute()
}
