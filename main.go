package main

import "pandaledger/cmd"

func main() {
	cmd.Execute()
}
