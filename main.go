package main

import "github.com/regismesquita/oaibatch/cmd"

func main() {
	cmd.Execute()
}
