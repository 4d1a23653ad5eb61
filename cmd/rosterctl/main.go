package main

import "github.com/mcoot/rpgroster/internal/cli"

func main() {
	cli.Execute()
}
