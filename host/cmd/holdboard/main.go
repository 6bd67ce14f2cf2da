package main

import "holdboard/host/cli"

func main() {
	cli.Execute()
}
