package main

import "github.com/liamg/netdiag/cmd"

func main() {
	cmd.Execute()
}
