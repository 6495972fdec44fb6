package main

import "loan-fee/cli"

func main() {
	cli.Execute()
}
