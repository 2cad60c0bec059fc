package main

import "github.com/pommes-public/pommesevaluation/cmd"

func main() {
	cmd.Execute()
}
